package notifyhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/directory"
	"staffhub/internal/domain/notify"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service   *notify.Service
	Directory *directory.Service
}

func NewHandler(service *notify.Service, dir *directory.Service) *Handler {
	return &Handler{Service: service, Directory: dir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/settings", h.handleGetSettings)
		r.Put("/settings", h.handleSaveSettings)
		r.Post("/test/slack", h.handleTestSlack)
		r.Post("/test/telegram", h.handleTestTelegram)
		r.Post("/test/email", h.handleTestEmail)
	})
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, ok := shared.ResolveEmployee(w, r, h.Directory)
	if !ok {
		return
	}

	settings, err := h.Service.SettingsFor(r.Context(), employee.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "settings_failed", "failed to load settings", reqID)
		return
	}
	api.Success(w, settings, reqID)
}

func (h *Handler) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, ok := shared.ResolveEmployee(w, r, h.Directory)
	if !ok {
		return
	}

	var payload notify.Settings
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	payload.EmployeeID = employee.ID

	if err := h.Service.SaveSettings(r.Context(), payload); err != nil {
		api.Fail(w, http.StatusInternalServerError, "settings_failed", "failed to save settings", reqID)
		return
	}
	api.Success(w, payload, reqID)
}

type testSlackPayload struct {
	WebhookURL string `json:"webhookUrl"`
}

func (h *Handler) handleTestSlack(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload testSlackPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	api.Success(w, h.Service.TestSlack(r.Context(), payload.WebhookURL), reqID)
}

type testTelegramPayload struct {
	ChatID int64 `json:"chatId"`
}

func (h *Handler) handleTestTelegram(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload testTelegramPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	api.Success(w, h.Service.TestTelegram(r.Context(), payload.ChatID), reqID)
}

func (h *Handler) handleTestEmail(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, ok := shared.ResolveEmployee(w, r, h.Directory)
	if !ok {
		return
	}
	api.Success(w, h.Service.TestEmail(r.Context(), employee.Email), reqID)
}
