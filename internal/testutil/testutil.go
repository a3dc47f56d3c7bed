// Package testutil provides helpers shared by the test suites.
package testutil

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/grocerly/grocerly/internal/cache"
)

// NewMiniredisCache starts an in-process Redis and returns a Cache
// backed by it. Cleanup is registered on the test.
func NewMiniredisCache(t testing.TB) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return cache.NewWithClient(client), mr
}
