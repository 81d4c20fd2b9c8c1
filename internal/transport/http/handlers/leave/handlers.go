package leavehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/directory"
	"staffhub/internal/domain/leave"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service   *leave.Service
	Directory *directory.Service
}

func NewHandler(service *leave.Service, dir *directory.Service) *Handler {
	return &Handler{Service: service, Directory: dir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/mine", h.handleMine)
		r.Post("/", h.handleSubmit)
		r.Post("/{requestID}/cancel", h.handleCancel)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleAdmin))
			r.Get("/", h.handleListAll)
			r.Post("/{requestID}/approve", h.handleReview(leave.StatusApproved))
			r.Post("/{requestID}/deny", h.handleReview(leave.StatusDenied))
		})
	})
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, ok := shared.ResolveEmployee(w, r, h.Directory)
	if !ok {
		return
	}

	requests, err := h.Service.ListForEmployee(r.Context(), employee.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_failed", "failed to list leave requests", reqID)
		return
	}
	api.Success(w, requests, reqID)
}

type submitPayload struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, ok := shared.ResolveEmployee(w, r, h.Directory)
	if !ok {
		return
	}

	var payload submitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	v.Required("reason", payload.Reason, "reason is required")
	if v.Reject(w, reqID) {
		return
	}

	request, err := h.Service.Submit(r.Context(), employee.ID, payload.Reason, start, end)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_submit_failed", "failed to submit leave request", reqID)
		return
	}
	api.Created(w, request, reqID)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, ok := shared.ResolveEmployee(w, r, h.Directory)
	if !ok {
		return
	}

	err := h.Service.Cancel(r.Context(), chi.URLParam(r, "requestID"), employee.ID)
	switch {
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", reqID)
	case errors.Is(err, leave.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", "only pending requests can be cancelled", reqID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "leave_cancel_failed", "failed to cancel leave request", reqID)
	default:
		api.Success(w, map[string]string{"status": leave.StatusCancelled}, reqID)
	}
}

func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	requests, err := h.Service.ListAll(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_failed", "failed to list leave requests", reqID)
		return
	}
	api.Success(w, requests, reqID)
}

func (h *Handler) handleReview(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())
		claims, _ := middleware.GetClaims(r.Context())

		request, err := h.Service.Review(r.Context(), chi.URLParam(r, "requestID"), claims.UserID, status)
		switch {
		case errors.Is(err, leave.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", reqID)
		case errors.Is(err, leave.ErrInvalidState):
			api.Fail(w, http.StatusConflict, "invalid_state", "only pending requests can be reviewed", reqID)
		case err != nil:
			api.Fail(w, http.StatusInternalServerError, "leave_review_failed", "failed to review leave request", reqID)
		default:
			api.Success(w, request, reqID)
		}
	}
}
