// Package cache implements the response cache in front of the analytics
// endpoints and the invalidation protocol that keeps it consistent with the
// session store. The cache is read-through with a uniform TTL; staleness is
// bounded by invalidation-on-write plus the TTL ceiling, and any store
// failure degrades to a miss rather than failing the request.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the uniform lifetime of cached responses; there is no
// per-route override.
const DefaultTTL = 5 * time.Minute

// Store is the TTL key-value store behind the response cache. It is injected
// rather than held as package state so tests can substitute an in-process
// implementation. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the payload for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// SetWithTTL stores a payload under key for the given lifetime.
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error

	// Invalidate deletes every key matching the glob pattern and returns how
	// many were removed.
	Invalidate(ctx context.Context, pattern string) (int, error)
}
