package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/grocerly/grocerly/internal/auth"
	"github.com/grocerly/grocerly/internal/service"
)

// SessionAuthConfig holds configuration for the session guard.
type SessionAuthConfig struct {
	Logger     *slog.Logger
	Accounts   *service.AccountService
	CookieName string
}

// SessionAuth returns a middleware that authenticates requests via the
// session cookie. It resolves the opaque token against the session
// store and injects the session's user snapshot into the request
// context. Absent, malformed, or expired sessions short-circuit with
// 401 before any downstream handler runs.
func SessionAuth(cfg SessionAuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_session_cookie"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeSessionError(w)
				return
			}

			session, err := cfg.Accounts.Resolve(r.Context(), cookie.Value)
			if errors.Is(err, service.ErrSessionNotFound) {
				// Expired and unknown tokens get the identical response
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_session"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeSessionError(w)
				return
			}
			if err != nil {
				// Session store failure, not a bad credential
				cfg.Logger.Error("session lookup failed",
					slog.String("error", err.Error()),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeStoreError(w)
				return
			}

			ctx := auth.ContextWithUser(r.Context(), session.User())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeSessionError writes a 401 Unauthorized response.
// Uses the same message for all session failures.
func writeSessionError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized. Please log in first.","code":"UNAUTHORIZED"}`))
}

// writeStoreError writes a 500 response without leaking store details.
func writeStoreError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"error":"An internal error occurred","code":"INTERNAL_ERROR"}`))
}
