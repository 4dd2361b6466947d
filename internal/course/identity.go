package course

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type idKind uint8

const (
	numericKind idKind = iota + 1
	documentKind
)

// ID identifies a stored course. Numeric ids come from the memory and
// postgres backends, document ids (24-char hex) from mongo. The zero value is
// not a valid id.
type ID struct {
	kind idKind
	num  int64
	doc  string
}

func NumericID(n int64) ID {
	return ID{kind: numericKind, num: n}
}

func DocumentID(hex string) ID {
	return ID{kind: documentKind, doc: hex}
}

func (id ID) IsZero() bool {
	return id.kind == 0
}

// Int64 returns the numeric value and whether the id is numeric.
func (id ID) Int64() (int64, bool) {
	return id.num, id.kind == numericKind
}

func (id ID) String() string {
	switch id.kind {
	case numericKind:
		return strconv.FormatInt(id.num, 10)
	case documentKind:
		return id.doc
	default:
		return ""
	}
}

// MarshalJSON renders numeric ids as JSON numbers and document ids as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case numericKind:
		return []byte(strconv.FormatInt(id.num, 10)), nil
	case documentKind:
		return json.Marshal(id.doc)
	default:
		return []byte("null"), nil
	}
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = DocumentID(s)
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("course id %s: %w", data, err)
	}
	*id = NumericID(n)
	return nil
}

// ParseNumericID parses a raw path value for the numeric backends. Anything
// that is not a base-10 integer reports false and must be treated as not found.
func ParseNumericID(raw string) (int64, bool) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MatchesTitle reports whether title passes the list filter. An empty filter
// matches everything; matching is a case-sensitive substring test.
func MatchesTitle(title, filter string) bool {
	return filter == "" || strings.Contains(title, filter)
}
