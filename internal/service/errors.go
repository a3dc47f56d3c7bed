// Package service provides business logic for the application.
package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Service errors.
var (
	// ErrInvalidCredentials is returned for both an unknown identity and
	// a wrong password. The single message prevents user enumeration.
	ErrInvalidCredentials = errors.New("invalid username/email or password")

	// ErrSessionNotFound is returned when a token is absent or expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrItemNotFound is returned when an item does not exist for the
	// caller's owner id.
	ErrItemNotFound = errors.New("grocery item not found")
)

// ValidationError reports every failing field together, not just the
// first one.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// ConflictError reports a duplicate registration identity.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}
