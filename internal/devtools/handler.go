// Package devtools exposes routes used by end-to-end test suites. They are
// mounted only outside the production profile.
package devtools

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/atabekdeveloper/mini-course-api/internal/httputil"

	"github.com/gorilla/mux"
)

type Resetter interface {
	DeleteAllCourses(ctx context.Context) error
}

type Handler struct {
	resetter Resetter
	logger   *slog.Logger
}

func NewHandler(resetter Resetter, logger *slog.Logger) *Handler {
	return &Handler{
		resetter: resetter,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/__tests__/data", h.ResetData).Methods(http.MethodDelete)
}

func (h *Handler) ResetData(w http.ResponseWriter, r *http.Request) {
	h.logger.WarnContext(r.Context(), "clearing all course data")
	if err := h.resetter.DeleteAllCourses(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to clear course data", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httputil.RespondWithStatus(w, http.StatusNoContent)
}
