package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/grocerly/grocerly/internal/handler/dto"
	"github.com/grocerly/grocerly/internal/service"
)

// SessionCookie describes how the session cookie is issued.
type SessionCookie struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	accounts *service.AccountService
	cookie   SessionCookie
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts *service.AccountService, cookie SessionCookie, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		cookie:   cookie,
		logger:   logger,
	}
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.accounts.Register(r.Context(), service.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.handleAccountError(w, err)
		return
	}

	h.logger.Info("user_registered", "user_id", user.ID, "username", user.Username)

	writeJSON(w, http.StatusCreated, &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	identifier := req.ResolveIdentifier()
	if identifier == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "MISSING_CREDENTIALS", "Username/email and password are required")
		return
	}

	session, err := h.accounts.Login(r.Context(), identifier, req.Password)
	if err != nil {
		h.handleAccountError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("user_logged_in", "user_id", session.UserID, "username", session.Username)

	writeJSON(w, http.StatusOK, &dto.LoginResponse{
		Message: "Logged in successfully",
		User: &dto.UserResponse{
			ID:       session.UserID,
			Username: session.Username,
			Email:    session.Email,
		},
	})
}

// Logout handles POST /logout and GET /logout.
// Idempotent: logging out without a session still succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookie.Name); err == nil {
		if err := h.accounts.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Error("logout_failed", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Logout failed")
			return
		}
	}

	// Expire the cookie client-side regardless
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// handleAccountError maps account service errors to HTTP responses.
func (h *AuthHandler) handleAccountError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	var conflictErr *service.ConflictError

	switch {
	case errors.As(err, &validationErr):
		writeValidationError(w, validationErr.Fields)
	case errors.As(err, &conflictErr):
		writeError(w, http.StatusConflict, "CONFLICT", "Username or email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		// 400, same body for unknown user and wrong password
		writeError(w, http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid username/email or password")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
