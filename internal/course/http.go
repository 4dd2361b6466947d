package course

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/atabekdeveloper/mini-course-api/internal/httputil"

	"github.com/gorilla/mux"
)

type Handler struct {
	service   Service
	validator *InputValidator
	logger    *slog.Logger
}

func NewHandler(service Service, validator *InputValidator, logger *slog.Logger) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/courses", h.GetCourses).Methods(http.MethodGet)
	router.HandleFunc("/courses/{id}", h.GetCourse).Methods(http.MethodGet)
	router.Handle("/courses", h.validator.Middleware(http.HandlerFunc(h.CreateCourse))).Methods(http.MethodPost)
	router.Handle("/courses/{id}", h.validator.Middleware(http.HandlerFunc(h.UpdateCourse))).Methods(http.MethodPut)
	router.HandleFunc("/courses/{id}", h.DeleteCourse).Methods(http.MethodDelete)
}

func (h *Handler) GetCourses(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")

	h.logger.InfoContext(r.Context(), "fetching courses", "title_filter", title)
	courses, err := h.service.ListCourses(r.Context(), title)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, ToViews(courses))
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	h.logger.InfoContext(r.Context(), "fetching course by ID", "id", id)
	c, err := h.service.GetCourse(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, ToView(*c))
}

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	in, ok := InputFromContext(r.Context())
	if !ok {
		httputil.RespondWithJSON(w, http.StatusBadRequest, ErrorsResponse{
			Errors: []FieldError{{Field: "body", Message: msgInvalidJSON}},
		})
		return
	}

	h.logger.InfoContext(r.Context(), "creating course", "title", in.Title)
	c, err := h.service.CreateCourse(r.Context(), in.Title)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusCreated, ToView(*c))
}

func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	in, ok := InputFromContext(r.Context())
	if !ok {
		httputil.RespondWithJSON(w, http.StatusBadRequest, ErrorsResponse{
			Errors: []FieldError{{Field: "body", Message: msgInvalidJSON}},
		})
		return
	}

	h.logger.InfoContext(r.Context(), "updating course", "id", id, "title", in.Title)
	if err := h.service.UpdateCourse(r.Context(), id, in.Title); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithStatus(w, http.StatusNoContent)
}

func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	h.logger.InfoContext(r.Context(), "deleting course", "id", id)
	if err := h.service.DeleteCourse(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithStatus(w, http.StatusNoContent)
}

// handleServiceError maps not-found to a bare 404. Anything else is a storage
// failure and is not echoed to the client.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrCourseNotFound) {
		h.logger.InfoContext(r.Context(), "course not found")
		httputil.RespondWithStatus(w, http.StatusNotFound)
		return
	}
	h.logger.ErrorContext(r.Context(), "course storage failure", "error", err)
	httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
}
