package announcementshandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/announcements"
	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/directory"
	"staffhub/internal/domain/notify"
	"staffhub/internal/platform/jobs"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Service   *announcements.Service
	Directory *directory.Service
	Notify    *notify.Service
	Jobs      *jobs.Service
}

func NewHandler(service *announcements.Service, dir *directory.Service, notifySvc *notify.Service, jobsSvc *jobs.Service) *Handler {
	return &Handler{Service: service, Directory: dir, Notify: notifySvc, Jobs: jobsSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/announcements", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/feed", h.handleFeed)
		r.Post("/{announcementID}/read", h.handleMarkRead)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleAdmin))
			r.Get("/", h.handleList)
			r.Post("/", h.handleCreate)
			r.Get("/{announcementID}", h.handleGet)
			r.Put("/{announcementID}", h.handleUpdate)
			r.Delete("/{announcementID}", h.handleDelete)
			r.Post("/{announcementID}/publish", h.handleSetPublished(true))
			r.Post("/{announcementID}/unpublish", h.handleSetPublished(false))
			r.Get("/{announcementID}/readers", h.handleReaders)
		})
	})
}

// handleFeed returns the caller's visible announcements plus their read IDs
// so the client can mark unread items.
func (h *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, ok := shared.ResolveEmployee(w, r, h.Directory)
	if !ok {
		return
	}

	feed, err := h.Service.FeedFor(r.Context(), employee, time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "feed_failed", "failed to load announcements", reqID)
		return
	}
	readIDs, err := h.Service.ReadIDs(r.Context(), employee.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "feed_failed", "failed to load read status", reqID)
		return
	}

	read := make([]string, 0, len(readIDs))
	for id := range readIDs {
		read = append(read, id)
	}
	api.Success(w, map[string]any{"items": feed, "readIds": read}, reqID)
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, ok := shared.ResolveEmployee(w, r, h.Directory)
	if !ok {
		return
	}

	if err := h.Service.MarkRead(r.Context(), chi.URLParam(r, "announcementID"), employee.ID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "mark_read_failed", "failed to mark announcement read", reqID)
		return
	}
	api.Success(w, map[string]bool{"read": true}, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "announcements_failed", "failed to list announcements", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	a, err := h.Service.Get(r.Context(), chi.URLParam(r, "announcementID"))
	if errors.Is(err, announcements.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "announcement not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "announcement_failed", "failed to load announcement", reqID)
		return
	}
	api.Success(w, a, reqID)
}

func (h *Handler) decodeAnnouncement(w http.ResponseWriter, r *http.Request, reqID string) (announcements.Announcement, bool) {
	var payload announcements.Announcement
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return announcements.Announcement{}, false
	}

	v := shared.NewValidator()
	v.Required("title", payload.Title, "title is required")
	v.Required("content", payload.Content, "content is required")
	v.Enum("priority", payload.Priority, announcements.Priorities, "unknown priority")
	v.Enum("targetAudience", payload.TargetAudience, announcements.Audiences, "unknown audience")
	if payload.TargetAudience == announcements.AudienceDepartment {
		v.Required("departmentFilter", payload.DepartmentFilter, "department filter is required for department audience")
	}
	if v.Reject(w, reqID) {
		return announcements.Announcement{}, false
	}
	return payload, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	payload, ok := h.decodeAnnouncement(w, r, reqID)
	if !ok {
		return
	}

	claims, _ := middleware.GetClaims(r.Context())
	payload.CreatedBy = claims.UserID

	id, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "announcement_create_failed", "failed to create announcement", reqID)
		return
	}
	if payload.IsPublished {
		h.enqueueBroadcast(id)
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	payload, ok := h.decodeAnnouncement(w, r, reqID)
	if !ok {
		return
	}

	err := h.Service.Update(r.Context(), chi.URLParam(r, "announcementID"), payload)
	if errors.Is(err, announcements.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "announcement not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "announcement_update_failed", "failed to update announcement", reqID)
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "announcementID")}, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	err := h.Service.Delete(r.Context(), chi.URLParam(r, "announcementID"))
	if errors.Is(err, announcements.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "announcement not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "announcement_delete_failed", "failed to delete announcement", reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func (h *Handler) handleSetPublished(published bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())
		err := h.Service.SetPublished(r.Context(), chi.URLParam(r, "announcementID"), published)
		if errors.Is(err, announcements.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "announcement not found", reqID)
			return
		}
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "announcement_update_failed", "failed to update announcement", reqID)
			return
		}
		if published {
			h.enqueueBroadcast(chi.URLParam(r, "announcementID"))
		}
		api.Success(w, map[string]bool{"isPublished": published}, reqID)
	}
}

func (h *Handler) handleReaders(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	readers, err := h.Service.Readers(r.Context(), chi.URLParam(r, "announcementID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "readers_failed", "failed to list readers", reqID)
		return
	}
	api.Success(w, readers, reqID)
}

// enqueueBroadcast pushes per-employee notification delivery to the job
// queue so publishing returns immediately.
func (h *Handler) enqueueBroadcast(announcementID string) {
	h.Jobs.Enqueue(jobs.JobAnnouncementBroadcast, func(ctx context.Context) (any, error) {
		a, err := h.Service.Get(ctx, announcementID)
		if err != nil {
			return nil, err
		}
		if !a.IsPublished {
			return map[string]any{"skipped": "unpublished"}, nil
		}

		employees, err := h.Directory.ListActive(ctx)
		if err != nil {
			return nil, err
		}

		now := time.Now()
		delivered := 0
		for _, employee := range employees {
			if !announcements.Visible(a, employee, now) {
				continue
			}
			results, err := h.Notify.SendPersonal(ctx, employee, notify.Message{
				Subject:  a.Title,
				Body:     a.Content,
				Priority: a.Priority,
			})
			if err != nil && !errors.Is(err, notify.ErrNoChannels) {
				slog.Warn("announcement notification failed", "announcementId", a.ID, "employeeId", employee.ID, "err", err)
				continue
			}
			for _, result := range results {
				if result.Success {
					delivered++
					break
				}
			}
		}
		return map[string]any{"delivered": delivered}, nil
	})
}
