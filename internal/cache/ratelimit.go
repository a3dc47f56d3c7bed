package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// loginRateLimitPrefix is the Redis key prefix for login attempt counters.
const loginRateLimitPrefix = "ratelimit:login:"

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// CheckLoginRateLimit counts a login attempt from the given IP against a
// fixed window. The counter key expires with the window, so the limit
// resets without any sweeper. Redis errors are returned as-is; the
// caller decides whether to fail open.
func (c *Cache) CheckLoginRateLimit(ctx context.Context, ip string, max int, window time.Duration) (*RateLimitResult, error) {
	// Hash IP for privacy before it becomes a key
	key := loginRateLimitPrefix + hashIP(ip)

	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("count login attempt: %w", err)
	}

	if count == 1 {
		// First attempt in this window starts the clock
		_ = c.client.Expire(ctx, key, window).Err()
	}

	if count > int64(max) {
		retryAfter, err := c.client.TTL(ctx, key).Result()
		if err != nil || retryAfter < 0 {
			retryAfter = window
		}
		return &RateLimitResult{Allowed: false, RetryAfter: retryAfter}, nil
	}

	return &RateLimitResult{Allowed: true, Remaining: int64(max) - count}, nil
}

// hashIP creates a truncated SHA256 hash of an IP address.
// This provides privacy while maintaining uniqueness.
func hashIP(ip string) string {
	hash := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(hash[:8]) // 16 hex chars
}
