package course_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atabekdeveloper/mini-course-api/internal/course"
	"github.com/atabekdeveloper/mini-course-api/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errNotString = course.FieldError{Field: "title", Message: "Title must be a string"}
	errLength    = course.FieldError{Field: "title", Message: "Title must be between 3 and 15 characters"}
	errBadJSON   = course.FieldError{Field: "body", Message: "Request body must be valid JSON"}
)

func TestInputValidator_Validate(t *testing.T) {
	v := course.NewInputValidator(metrics.NewMock().Courses)

	tests := []struct {
		name      string
		body      string
		wantTitle string
		wantErrs  []course.FieldError
	}{
		{name: "Valid", body: `{"title":"Go Basics"}`, wantTitle: "Go Basics"},
		{name: "MinLength", body: `{"title":"abc"}`, wantTitle: "abc"},
		{name: "MaxLength", body: `{"title":"abcdefghijklmno"}`, wantTitle: "abcdefghijklmno"},
		{name: "KeepsUntrimmedTitle", body: `{"title":"  abc  "}`, wantTitle: "  abc  "},
		{name: "CountsRunesNotBytes", body: `{"title":"Курс по Go"}`, wantTitle: "Курс по Go"},
		{name: "ExtraFieldsIgnored", body: `{"title":"Go Basics","studentsCount":5}`, wantTitle: "Go Basics"},
		{name: "TooShort", body: `{"title":"ab"}`, wantErrs: []course.FieldError{errLength}},
		{name: "TooShortAfterTrim", body: `{"title":"  ab   "}`, wantErrs: []course.FieldError{errLength}},
		{name: "TooLong", body: `{"title":"abcdefghijklmnop"}`, wantErrs: []course.FieldError{errLength}},
		{name: "Empty", body: `{"title":""}`, wantErrs: []course.FieldError{errLength}},
		{name: "Missing", body: `{}`, wantErrs: []course.FieldError{errNotString, errLength}},
		{name: "EmptyBody", body: ``, wantErrs: []course.FieldError{errNotString, errLength}},
		{name: "Null", body: `{"title":null}`, wantErrs: []course.FieldError{errNotString, errLength}},
		{name: "ShortNumber", body: `{"title":12}`, wantErrs: []course.FieldError{errNotString, errLength}},
		{name: "Number", body: `{"title":12345}`, wantErrs: []course.FieldError{errNotString}},
		{name: "Boolean", body: `{"title":true}`, wantErrs: []course.FieldError{errNotString}},
		{name: "Array", body: `[]`, wantErrs: []course.FieldError{errNotString, errLength}},
		{name: "InvalidJSON", body: `{"title":`, wantErrs: []course.FieldError{errBadJSON}},
		{name: "ScalarBody", body: `"Go Basics"`, wantErrs: []course.FieldError{errBadJSON}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, errs := v.Validate([]byte(tt.body))
			assert.Equal(t, tt.wantErrs, errs)
			if tt.wantErrs == nil {
				assert.Equal(t, tt.wantTitle, in.Title)
			}
		})
	}
}

func TestInputValidator_Middleware(t *testing.T) {
	v := course.NewInputValidator(metrics.NewMock().Courses)

	var called bool
	var got course.Input
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		var ok bool
		got, ok = course.InputFromContext(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusTeapot)
	})
	handler := v.Middleware(next)

	t.Run("PassesInputToNext", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(`{"title":" Go Basics "}`))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, " Go Basics ", got.Title)
	})

	t.Run("RejectsWithErrorList", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/courses", bytes.NewReader(nil))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var resp course.ErrorsResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, []course.FieldError{errNotString, errLength}, resp.Errors)
	})
}
