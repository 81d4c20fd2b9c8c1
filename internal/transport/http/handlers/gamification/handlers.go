package gamificationhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/directory"
	"staffhub/internal/domain/gamification"
	"staffhub/internal/platform/jobs"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service   *gamification.Service
	Directory *directory.Service
	Jobs      *jobs.Service
}

func NewHandler(service *gamification.Service, dir *directory.Service, jobsSvc *jobs.Service) *Handler {
	return &Handler{Service: service, Directory: dir, Jobs: jobsSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/gamification", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/leaderboard", h.handleLeaderboard)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleAdmin))
			r.Post("/points", h.handleAwardPoints)
			r.Post("/badges", h.handleAwardBadge)
			r.Post("/reset-week", h.handleResetWeek)
		})
	})
}

// handleLeaderboard works without an employee record: admins with no
// profile just get MyRank 0.
func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	claims, _ := middleware.GetClaims(r.Context())

	selfID := ""
	if employee, err := h.Directory.ResolveProfile(r.Context(), claims.Account()); err == nil {
		selfID = employee.ID
	}

	board, err := h.Service.Leaderboard(r.Context(), selfID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leaderboard_failed", "failed to build leaderboard", reqID)
		return
	}
	api.Success(w, board, reqID)
}

type awardPointsPayload struct {
	EmployeeID string `json:"employeeId"`
	Points     int    `json:"points"`
}

func (h *Handler) handleAwardPoints(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload awardPointsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	if payload.Points <= 0 {
		v.Add("points", "must be positive")
	}
	if v.Reject(w, reqID) {
		return
	}

	record, err := h.Service.AwardPoints(r.Context(), payload.EmployeeID, payload.Points)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "award_failed", "failed to award points", reqID)
		return
	}
	api.Success(w, record, reqID)
}

type awardBadgePayload struct {
	EmployeeID  string `json:"employeeId"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	PointsValue int    `json:"pointsValue"`
}

func (h *Handler) handleAwardBadge(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload awardBadgePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Required("name", payload.Name, "badge name is required")
	if payload.PointsValue < 0 {
		v.Add("pointsValue", "cannot be negative")
	}
	if v.Reject(w, reqID) {
		return
	}

	badge, err := h.Service.AwardBadge(r.Context(), payload.EmployeeID, payload.Name, payload.Icon, payload.Category, payload.PointsValue)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "award_failed", "failed to award badge", reqID)
		return
	}
	api.Created(w, badge, reqID)
}

func (h *Handler) handleResetWeek(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, err := h.Jobs.ResetPoints(r.Context()); err != nil {
		api.Fail(w, http.StatusInternalServerError, "reset_failed", "failed to reset weekly points", reqID)
		return
	}
	api.Success(w, map[string]bool{"reset": true}, reqID)
}
