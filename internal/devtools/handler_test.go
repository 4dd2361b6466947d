package devtools_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atabekdeveloper/mini-course-api/internal/devtools"
	"github.com/atabekdeveloper/mini-course-api/internal/logger"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

type stubResetter struct {
	calls int
	err   error
}

func (s *stubResetter) DeleteAllCourses(context.Context) error {
	s.calls++
	return s.err
}

func TestResetData(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		resetter := &stubResetter{}
		router := mux.NewRouter()
		devtools.NewHandler(resetter, logger.NewNop()).RegisterRoutes(router)

		req := httptest.NewRequest(http.MethodDelete, "/__tests__/data", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, 1, resetter.calls)
	})

	t.Run("StorageFailure", func(t *testing.T) {
		resetter := &stubResetter{err: errors.New("connection refused")}
		router := mux.NewRouter()
		devtools.NewHandler(resetter, logger.NewNop()).RegisterRoutes(router)

		req := httptest.NewRequest(http.MethodDelete, "/__tests__/data", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	})

	t.Run("OnlyDelete", func(t *testing.T) {
		resetter := &stubResetter{}
		router := mux.NewRouter()
		devtools.NewHandler(resetter, logger.NewNop()).RegisterRoutes(router)

		req := httptest.NewRequest(http.MethodGet, "/__tests__/data", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Zero(t, resetter.calls)
	})
}
