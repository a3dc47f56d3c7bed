package dto

import (
	"strings"
	"time"
)

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest represents the request body for login. Clients may send
// a single identifier, or separate username/email fields as the legacy
// form did.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// ResolveIdentifier picks the identity value to look up: an explicit
// identifier wins, then username, then email.
func (r *LoginRequest) ResolveIdentifier() string {
	for _, candidate := range []string{r.Identifier, r.Username, r.Email} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// UserResponse represents an account in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse confirms a successful login. The session token itself
// travels only in the cookie.
type LoginResponse struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user"`
}
