package timetrackinghandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/directory"
	"staffhub/internal/domain/timetracking"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service   *timetracking.Service
	Directory *directory.Service
}

func NewHandler(service *timetracking.Service, dir *directory.Service) *Handler {
	return &Handler{Service: service, Directory: dir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/time", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/check-in", h.handleCheckIn)
		r.Post("/check-out", h.handleCheckOut)
		r.Get("/week", h.handleWeek)
		r.Get("/stats", h.handleStats)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleAdmin))
			r.Get("/incomplete", h.handleIncomplete)
		})
	})
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, ok := shared.ResolveEmployee(w, r, h.Directory)
	if !ok {
		return
	}

	entry, err := h.Service.CheckIn(r.Context(), employee.ID, time.Now())
	if errors.Is(err, timetracking.ErrAlreadyOpen) {
		api.Fail(w, http.StatusConflict, "already_checked_in", "an open entry already exists for today", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "check_in_failed", "failed to check in", reqID)
		return
	}
	api.Created(w, entry, reqID)
}

type checkOutPayload struct {
	BreakMinutes int `json:"breakMinutes"`
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, ok := shared.ResolveEmployee(w, r, h.Directory)
	if !ok {
		return
	}

	var payload checkOutPayload
	if r.Body != nil {
		// body is optional; zero break minutes without one
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}
	if payload.BreakMinutes < 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "break minutes cannot be negative", reqID)
		return
	}

	entry, err := h.Service.CheckOut(r.Context(), employee.ID, payload.BreakMinutes, time.Now())
	if errors.Is(err, timetracking.ErrNotCheckedIn) {
		api.Fail(w, http.StatusConflict, "not_checked_in", "no open entry to check out of", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "check_out_failed", "failed to check out", reqID)
		return
	}
	api.Success(w, entry, reqID)
}

func (h *Handler) handleWeek(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, ok := shared.ResolveEmployee(w, r, h.Directory)
	if !ok {
		return
	}

	entries, err := h.Service.WeekEntries(r.Context(), employee.ID, timetracking.WeekStart(time.Now()))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "week_failed", "failed to load week entries", reqID)
		return
	}
	api.Success(w, entries, reqID)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, ok := shared.ResolveEmployee(w, r, h.Directory)
	if !ok {
		return
	}

	stats, err := h.Service.WeekStatsFor(r.Context(), employee.ID, time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "stats_failed", "failed to compute week stats", reqID)
		return
	}
	api.Success(w, stats, reqID)
}

func (h *Handler) handleIncomplete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	entries, err := h.Service.ListIncomplete(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "incomplete_failed", "failed to list incomplete entries", reqID)
		return
	}
	api.Success(w, entries, reqID)
}
