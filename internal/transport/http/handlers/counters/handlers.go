package countershandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/counters"
	"staffhub/internal/domain/directory"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service   *counters.Service
	Directory *directory.Service
}

func NewHandler(service *counters.Service, dir *directory.Service) *Handler {
	return &Handler{Service: service, Directory: dir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/counters", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/me", h.handleEmployee)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleAdmin))
			r.Get("/admin", h.handleAdmin)
		})
	})
}

func (h *Handler) handleAdmin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	result, err := h.Service.Admin(r.Context(), time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "counters_failed", "failed to compute counters", reqID)
		return
	}
	api.Success(w, result, reqID)
}

func (h *Handler) handleEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, ok := shared.ResolveEmployee(w, r, h.Directory)
	if !ok {
		return
	}

	result, err := h.Service.Employee(r.Context(), employee, time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "counters_failed", "failed to compute counters", reqID)
		return
	}
	api.Success(w, result, reqID)
}
