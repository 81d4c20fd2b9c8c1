package surveyshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/directory"
	"staffhub/internal/domain/surveys"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service   *surveys.Service
	Directory *directory.Service
}

func NewHandler(service *surveys.Service, dir *directory.Service) *Handler {
	return &Handler{Service: service, Directory: dir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/surveys", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/feed", h.handleFeed)
		r.Post("/{surveyID}/responses", h.handleSubmitResponse)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleAdmin))
			r.Get("/", h.handleList)
			r.Post("/", h.handleCreate)
			r.Get("/{surveyID}", h.handleGet)
			r.Delete("/{surveyID}", h.handleDelete)
			r.Post("/{surveyID}/close", h.handleSetStatus(surveys.StatusClosed))
			r.Post("/{surveyID}/activate", h.handleSetStatus(surveys.StatusActive))
			r.Get("/{surveyID}/responses", h.handleResponses)
		})
	})
}

func (h *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, ok := shared.ResolveEmployee(w, r, h.Directory)
	if !ok {
		return
	}

	feed, err := h.Service.FeedFor(r.Context(), employee, time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "surveys_failed", "failed to load surveys", reqID)
		return
	}
	api.Success(w, feed, reqID)
}

type responsePayload struct {
	Answers json.RawMessage `json:"answers"`
}

func (h *Handler) handleSubmitResponse(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, ok := shared.ResolveEmployee(w, r, h.Directory)
	if !ok {
		return
	}

	var payload responsePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if len(payload.Answers) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "answers are required", reqID)
		return
	}

	id, err := h.Service.SubmitResponse(r.Context(), chi.URLParam(r, "surveyID"), employee, payload.Answers, time.Now())
	switch {
	case errors.Is(err, surveys.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "survey not found", reqID)
	case errors.Is(err, surveys.ErrNotOpen):
		api.Fail(w, http.StatusForbidden, "not_open", "survey is not accepting responses from you", reqID)
	case errors.Is(err, surveys.ErrAlreadyResponded):
		api.Fail(w, http.StatusConflict, "already_responded", "you have already responded to this survey", reqID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "response_failed", "failed to submit response", reqID)
	default:
		api.Created(w, map[string]string{"id": id}, reqID)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "surveys_failed", "failed to list surveys", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	survey, err := h.Service.Get(r.Context(), chi.URLParam(r, "surveyID"))
	if errors.Is(err, surveys.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "survey not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "survey_failed", "failed to load survey", reqID)
		return
	}
	api.Success(w, survey, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload surveys.Survey
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("title", payload.Title, "title is required")
	v.Enum("type", payload.Type, surveys.Types, "unknown survey type")
	v.Enum("status", payload.Status, surveys.Statuses, "unknown survey status")
	if v.Reject(w, reqID) {
		return
	}
	if payload.Status == "" {
		payload.Status = surveys.StatusDraft
	}

	claims, _ := middleware.GetClaims(r.Context())
	payload.CreatedBy = claims.UserID

	id, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "survey_create_failed", "failed to create survey", reqID)
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	err := h.Service.Delete(r.Context(), chi.URLParam(r, "surveyID"))
	if errors.Is(err, surveys.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "survey not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "survey_delete_failed", "failed to delete survey", reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func (h *Handler) handleSetStatus(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())
		err := h.Service.SetStatus(r.Context(), chi.URLParam(r, "surveyID"), status)
		if errors.Is(err, surveys.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "survey not found", reqID)
			return
		}
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "survey_update_failed", "failed to update survey", reqID)
			return
		}
		api.Success(w, map[string]string{"status": status}, reqID)
	}
}

func (h *Handler) handleResponses(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	responses, err := h.Service.Responses(r.Context(), chi.URLParam(r, "surveyID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "responses_failed", "failed to list responses", reqID)
		return
	}
	api.Success(w, responses, reqID)
}
