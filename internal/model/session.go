// Package model defines domain entities for the application.
package model

import "time"

// Session is the server-side record an opaque token resolves to.
// The user fields are a snapshot taken at login time, not a live join
// against the users table.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session's stored expiry has passed.
// Checked at resolve time so a session that physically outlives its
// TTL still cannot authenticate.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.After(time.Now())
}

// SessionUser is the identity attached to a request context after the
// session guard has resolved the token.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// User returns the identity snapshot embedded in the session.
func (s *Session) User() *SessionUser {
	return &SessionUser{
		ID:       s.UserID,
		Username: s.Username,
		Email:    s.Email,
	}
}
