// Package http provides HTTP handlers for identity operations:
// registration, login, logout, and current-session lookup.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avolkov/StaffKeeper/internal/apperr"
	"github.com/avolkov/StaffKeeper/internal/middleware"
	"github.com/avolkov/StaffKeeper/internal/models"
)

// AuthService defines the interface for identity operations required by
// the HTTP handlers.
type AuthService interface {
	// Register creates an account and signs it in.
	Register(ctx context.Context, email, password string) (models.Identity, string, error)
	// Login verifies credentials and returns a fresh session token.
	Login(ctx context.Context, email, password string) (models.Identity, string, error)
	// Logout revokes the session the token belongs to.
	Logout(ctx context.Context, token string) error
	// CurrentUser resolves the identity behind an authenticated user id.
	CurrentUser(ctx context.Context, userID string) (models.Identity, error)
}

// AuthHandler handles HTTP requests for registration, login, logout, and
// session lookup.
type AuthHandler struct {
	// AuthService performs the underlying identity operations.
	AuthService AuthService
}

// credentialsRequest represents the JSON payload for registration and login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse is returned by register and login: the bearer token
// plus the signed-in identity.
type sessionResponse struct {
	Token string          `json:"token"`
	User  models.Identity `json:"user"`
}

// Register handles account creation. It expects a JSON body with
// non-empty "email" and "password", and returns the session token and
// identity on success. A duplicate email yields 409.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	identity, token, err := h.AuthService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			http.Error(w, "email already registered", http.StatusConflict)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: identity})
}

// Login handles credential-based login. Invalid credentials yield 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	identity, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthorized) {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: identity})
}

// Logout revokes the presented session token. Runs behind BearerAuth, so
// the token has already been verified.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromRequest(r)
	if err := h.AuthService.Logout(r.Context(), token); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session returns the identity of the authenticated caller.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	identity, err := h.AuthService.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthorized) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]models.Identity{"user": identity})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
