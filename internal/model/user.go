// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account. Records are immutable after
// registration; profile editing is out of scope.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
