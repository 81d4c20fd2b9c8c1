package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/auth"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
	"staffhub/internal/transport/http/shared"
)

type Handler struct {
	Store    *auth.Store
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(store *auth.Store, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{Store: store, Secret: secret, TokenTTL: tokenTTL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.Post("/register", h.handleRegister)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/logout", h.handleLogout)
			r.Get("/me", h.handleMe)
			r.Patch("/me", h.handleUpdateMe)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleAdmin))
			r.Get("/users", h.handleListUsers)
			r.Post("/users/{userID}/activate", h.handleSetActive(true))
			r.Post("/users/{userID}/deactivate", h.handleSetActive(false))
			r.Post("/users/{userID}/link-employee", h.handleLinkEmployee)
		})
	})
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	if v.Reject(w, reqID) {
		return
	}

	account, hash, err := h.Store.FindByEmail(r.Context(), strings.TrimSpace(payload.Email))
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
		return
	}
	if err := auth.CheckPassword(hash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
		return
	}
	if !account.IsActive {
		api.Fail(w, http.StatusForbidden, "account_pending", "account awaiting approval", reqID)
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID:     account.ID,
		Email:      account.Email,
		Role:       account.Role,
		EmployeeID: account.EmployeeID,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_failed", "failed to issue token", reqID)
		return
	}

	// last-login is best effort; login still succeeds if it fails
	if err := h.Store.UpdateLastLogin(r.Context(), account.ID); err != nil {
		slog.Warn("last login update failed", "userId", account.ID, "err", err)
	}

	api.Success(w, map[string]any{"token": token, "user": account}, reqID)
}

type registerPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister creates an inactive employee account. An admin approves it
// before first login.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload registerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	if len(payload.Password) < 8 {
		v.Add("password", "must be at least 8 characters")
	}
	if v.Reject(w, reqID) {
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to create account", reqID)
		return
	}

	id, err := h.Store.Create(r.Context(), strings.ToLower(strings.TrimSpace(payload.Email)), hash, auth.RoleEmployee, "")
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateEmail) {
			api.Fail(w, http.StatusConflict, "email_taken", "an account with this email already exists", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to create account", reqID)
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	claims, _ := middleware.GetClaims(r.Context())

	account, err := h.Store.GetByID(r.Context(), claims.UserID)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "account no longer exists", reqID)
		return
	}
	api.Success(w, account, reqID)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	accounts, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "users_failed", "failed to list accounts", reqID)
		return
	}
	api.Success(w, accounts, reqID)
}

func (h *Handler) handleSetActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())
		if err := h.Store.SetActive(r.Context(), chi.URLParam(r, "userID"), active); err != nil {
			if errors.Is(err, auth.ErrNotFound) {
				api.Fail(w, http.StatusNotFound, "not_found", "account not found", reqID)
				return
			}
			api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update account", reqID)
			return
		}
		api.Success(w, map[string]bool{"isActive": active}, reqID)
	}
}

type linkPayload struct {
	EmployeeID string `json:"employeeId"`
}

func (h *Handler) handleLinkEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload linkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	if err := h.Store.LinkEmployee(r.Context(), chi.URLParam(r, "userID"), payload.EmployeeID); err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "account not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to link employee", reqID)
		return
	}
	api.Success(w, map[string]string{"employeeId": payload.EmployeeID}, reqID)
}

// handleLogout exists for client symmetry; tokens are stateless, so the
// server just acknowledges and the client discards its copy.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]bool{"loggedOut": true}, middleware.GetRequestID(r.Context()))
}

type updateMePayload struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	claims, _ := middleware.GetClaims(r.Context())

	var payload updateMePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if len(payload.NewPassword) < 8 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "new password must be at least 8 characters", reqID)
		return
	}

	account, hash, err := h.Store.FindByEmail(r.Context(), claims.Email)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "account no longer exists", reqID)
		return
	}
	if err := auth.CheckPassword(hash, payload.CurrentPassword); err != nil {
		api.Fail(w, http.StatusForbidden, "invalid_credentials", "current password does not match", reqID)
		return
	}

	newHash, err := auth.HashPassword(payload.NewPassword)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update password", reqID)
		return
	}
	if err := h.Store.SetPassword(r.Context(), account.ID, newHash); err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update password", reqID)
		return
	}
	api.Success(w, map[string]bool{"updated": true}, reqID)
}
