package directoryhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/directory"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service *directory.Service
}

func NewHandler(service *directory.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/", h.handleList)
		r.Get("/departments", h.handleDepartments)
		r.Get("/me", h.handleMyProfile)
		r.Get("/{employeeID}", h.handleGet)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleAdmin))
			r.Post("/", h.handleCreate)
			r.Put("/{employeeID}", h.handleUpdate)
			r.Post("/{employeeID}/activate", h.handleSetActive(true))
			r.Post("/{employeeID}/deactivate", h.handleSetActive(false))
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	employees, total, err := h.Service.List(r.Context(), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_failed", "failed to list employees", reqID)
		return
	}
	api.Success(w, map[string]any{"items": employees, "total": total}, reqID)
}

func (h *Handler) handleDepartments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	departments, err := h.Service.Departments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "departments_failed", "failed to list departments", reqID)
		return
	}
	api.Success(w, departments, reqID)
}

// handleMyProfile resolves the caller's employee record. Admins without a
// record get a synthetic profile instead of a 404.
func (h *Handler) handleMyProfile(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	claims, _ := middleware.GetClaims(r.Context())

	employee, err := h.Service.ResolveProfile(r.Context(), claims.Account())
	if errors.Is(err, directory.ErrNoProfile) {
		api.Fail(w, http.StatusNotFound, "no_profile", "no employee record is linked to this account", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "profile_failed", "failed to resolve profile", reqID)
		return
	}
	api.Success(w, employee, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_failed", "failed to load employee", reqID)
		return
	}
	api.Success(w, employee, reqID)
}

func (h *Handler) decodeEmployee(w http.ResponseWriter, r *http.Request, reqID string) (directory.Employee, bool) {
	var payload directory.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return directory.Employee{}, false
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("email", payload.Email, "email is required")
	if v.Reject(w, reqID) {
		return directory.Employee{}, false
	}
	return payload, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	payload, ok := h.decodeEmployee(w, r, reqID)
	if !ok {
		return
	}

	id, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	payload, ok := h.decodeEmployee(w, r, reqID)
	if !ok {
		return
	}

	err := h.Service.Update(r.Context(), chi.URLParam(r, "employeeID"), payload)
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", reqID)
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "employeeID")}, reqID)
}

func (h *Handler) handleSetActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())
		err := h.Service.SetActive(r.Context(), chi.URLParam(r, "employeeID"), active)
		if errors.Is(err, directory.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", reqID)
			return
		}
		api.Success(w, map[string]bool{"isActive": active}, reqID)
	}
}
