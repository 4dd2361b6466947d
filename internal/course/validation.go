package course

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/atabekdeveloper/mini-course-api/internal/httputil"
	"github.com/atabekdeveloper/mini-course-api/internal/metrics"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

const (
	msgTitleNotString = "Title must be a string"
	msgTitleLength    = "Title must be between 3 and 15 characters"
	msgInvalidJSON    = "Request body must be valid JSON"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorsResponse struct {
	Errors []FieldError `json:"errors"`
}

type inputContextKey struct{}

// InputFromContext returns the body accepted by the validation middleware.
func InputFromContext(ctx context.Context) (Input, bool) {
	in, ok := ctx.Value(inputContextKey{}).(Input)
	return in, ok
}

type InputValidator struct {
	validate *validator.Validate
	metrics  *metrics.CourseMetrics
}

func NewInputValidator(m *metrics.CourseMetrics) *InputValidator {
	return &InputValidator{
		validate: validator.New(),
		metrics:  m,
	}
}

// Middleware rejects create/update bodies whose title is not a string of
// 3 to 15 characters after trimming. The title handed to the next handler is
// the untrimmed value from the body.
func (v *InputValidator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			v.reject(w, r, []FieldError{{Field: "body", Message: msgInvalidJSON}})
			return
		}

		in, errs := v.Validate(body)
		if len(errs) > 0 {
			v.reject(w, r, errs)
			return
		}

		ctx := context.WithValue(r.Context(), inputContextKey{}, in)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Validate checks a raw request body and collects every failure. An empty
// body counts as an empty object.
func (v *InputValidator) Validate(body []byte) (Input, []FieldError) {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		var list []json.RawMessage
		if json.Unmarshal(body, &list) != nil {
			return Input{}, []FieldError{{Field: "body", Message: msgInvalidJSON}}
		}
	}

	title, isString, text := readTitle(fields["title"])

	var errs []FieldError
	if !isString {
		errs = append(errs, FieldError{Field: "title", Message: msgTitleNotString})
	}
	if err := v.validate.Struct(Input{Title: strings.TrimSpace(text)}); err != nil {
		errs = append(errs, FieldError{Field: "title", Message: msgTitleLength})
	}
	if len(errs) > 0 {
		return Input{}, errs
	}

	return Input{Title: title}, nil
}

// readTitle decodes the raw title value. text is what the length rule sees:
// the string itself, the literal JSON text for other values, and "" when the
// title is missing or null.
func readTitle(raw json.RawMessage) (title string, isString bool, text string) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false, ""
	}
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &title); err == nil {
			return title, true, title
		}
	}
	return "", false, string(raw)
}

func (v *InputValidator) reject(w http.ResponseWriter, r *http.Request, errs []FieldError) {
	v.metrics.RecordValidationFailed(r.Context())
	httputil.RespondWithJSON(w, http.StatusBadRequest, ErrorsResponse{Errors: errs})
}
