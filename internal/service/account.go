package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/grocerly/grocerly/internal/auth"
	"github.com/grocerly/grocerly/internal/metrics"
	"github.com/grocerly/grocerly/internal/model"
	"github.com/grocerly/grocerly/internal/repository"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// Matches the same loose address shape the registration form enforces.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserStore is the persistence surface the account service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// SessionStore is the durable token-keyed session surface.
type SessionStore interface {
	SetSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// AccountService handles registration, login, and session lifecycle.
type AccountService struct {
	users      UserStore
	sessions   SessionStore
	sessionTTL time.Duration
	metrics    metrics.Recorder
}

// NewAccountService creates a new AccountService.
func NewAccountService(users UserStore, sessions SessionStore, sessionTTL time.Duration, recorder metrics.Recorder) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AccountService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		metrics:    recorder,
	}
}

// RegisterInput defines input for creating an account.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register validates the input, hashes the password, and stores the new
// user. Every failing field is reported together in one ValidationError.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	fields := make(map[string]string)
	if len(username) < minUsernameLen {
		fields["username"] = fmt.Sprintf("username must be at least %d characters", minUsernameLen)
	}
	if !emailRegex.MatchString(email) {
		fields["email"] = "email must be a valid address"
	}
	if len(input.Password) < minPasswordLen {
		fields["password"] = fmt.Sprintf("password must be at least %d characters", minPasswordLen)
	}
	if input.ConfirmPassword != input.Password {
		fields["confirmPassword"] = "passwords do not match"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return nil, &ConflictError{Field: "username"}
		case errors.Is(err, repository.ErrEmailExists):
			return nil, &ConflictError{Field: "email"}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// findByIdentifier resolves a user by email when the identifier looks
// like an address, otherwise by username.
func (s *AccountService) findByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	if strings.Contains(identifier, "@") {
		return s.users.GetUserByEmail(ctx, identifier)
	}
	return s.users.GetUserByUsername(ctx, identifier)
}

// Login verifies the credentials and issues a new session.
// Unknown identity and wrong password both return ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, identifier, password string) (*model.Session, error) {
	user, err := s.findByIdentifier(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailure()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		s.metrics.IncLoginFailure()
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	session := &model.Session{
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}

	if err := s.sessions.SetSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.metrics.IncLoginSuccess()

	return session, nil
}

// Logout destroys the session. Destroying an absent session is not an
// error.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// Resolve returns the session for a token, or ErrSessionNotFound if the
// token is absent, malformed, or expired.
func (s *AccountService) Resolve(ctx context.Context, token string) (*model.Session, error) {
	if !auth.ValidTokenFormat(token) {
		return nil, ErrSessionNotFound
	}

	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// SessionTTL returns the configured session lifetime.
func (s *AccountService) SessionTTL() time.Duration {
	return s.sessionTTL
}
