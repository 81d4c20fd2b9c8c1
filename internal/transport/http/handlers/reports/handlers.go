package reportshandler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/reports"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))

		r.Get("/weekly-summary", h.handleWeeklySummary)
		r.Get("/timesheet/{employeeID}", h.handleTimesheetPDF)
		r.Get("/job-runs", h.handleJobRuns)
	})
}

func (h *Handler) weekOf(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("week")
	if raw == "" {
		return time.Now(), nil
	}
	return shared.ParseDate(raw)
}

func (h *Handler) handleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	at, err := h.weekOf(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_week", "week must be a valid date", reqID)
		return
	}

	summary, err := h.Service.WeeklySummary(r.Context(), at)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build weekly summary", reqID)
		return
	}
	api.Success(w, summary, reqID)
}

func (h *Handler) handleTimesheetPDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	at, err := h.weekOf(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_week", "week must be a valid date", reqID)
		return
	}

	employeeID := chi.URLParam(r, "employeeID")

	// render fully before writing headers so a failure can still return the
	// JSON error envelope
	var buf bytes.Buffer
	if err := h.Service.TimesheetPDF(r.Context(), employeeID, at, &buf); err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render timesheet", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=timesheet-%s.pdf", employeeID))
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("timesheet pdf write failed", "err", err)
	}
}

func (h *Handler) handleJobRuns(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	runs, err := h.Service.JobRuns(r.Context(), r.URL.Query().Get("jobType"), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "job_runs_failed", "failed to list job runs", reqID)
		return
	}
	api.Success(w, runs, reqID)
}
