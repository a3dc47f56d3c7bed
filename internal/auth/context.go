package auth

import (
	"context"

	"github.com/grocerly/grocerly/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const sessionUserKey contextKey = "session_user"

// ContextWithUser adds the resolved session user to the context.
func ContextWithUser(ctx context.Context, user *model.SessionUser) context.Context {
	return context.WithValue(ctx, sessionUserKey, user)
}

// UserFromContext retrieves the session user from the context.
// Returns nil if the request did not pass the session guard.
func UserFromContext(ctx context.Context) *model.SessionUser {
	user, ok := ctx.Value(sessionUserKey).(*model.SessionUser)
	if !ok {
		return nil
	}
	return user
}

// MustUserFromContext retrieves the session user from the context.
// Panics if not present (use only behind the session guard).
func MustUserFromContext(ctx context.Context) *model.SessionUser {
	user := UserFromContext(ctx)
	if user == nil {
		panic("session user not found - ensure session middleware is applied")
	}
	return user
}
