package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/grocerly/grocerly/internal/model"
)

// sessionPrefix is the Redis key prefix for session records.
const sessionPrefix = "session:"

// storedSession is the wire form of a session record.
type storedSession struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SetSession stores a session record keyed by its opaque token.
// The Redis TTL matches the stored expiry so abandoned sessions are
// reclaimed, but expiry is still enforced at read time.
func (c *Cache) SetSession(ctx context.Context, session *model.Session) error {
	stored := storedSession{
		UserID:    session.UserID,
		Username:  session.Username,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt,
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session expiry is not in the future")
	}

	key := sessionPrefix + session.Token
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by token.
// Returns nil for an absent token, a corrupted record, or a record
// whose stored expiry has passed even though the key still exists.
// Store failures are returned as errors so callers can tell an outage
// apart from a missing session.
func (c *Cache) GetSession(ctx context.Context, token string) (*model.Session, error) {
	key := sessionPrefix + token

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		// Absent token is not an error
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		// Corrupted record - treat as absent
		return nil, nil //nolint:nilerr
	}

	session := &model.Session{
		Token:     token,
		UserID:    stored.UserID,
		Username:  stored.Username,
		Email:     stored.Email,
		ExpiresAt: stored.ExpiresAt,
	}

	if session.Expired() {
		return nil, nil
	}

	return session, nil
}

// DeleteSession removes a session record.
// Idempotent: deleting an absent token is not an error.
func (c *Cache) DeleteSession(ctx context.Context, token string) error {
	return c.client.Del(ctx, sessionPrefix+token).Err()
}
