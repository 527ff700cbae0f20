package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

// invalidateTimeout bounds a single background purge.
const invalidateTimeout = 5 * time.Second

// Coordinator purges a user's cache entries after successful mutations. The
// purge runs in the background so responses are not delayed, but every purge
// is tracked and can be drained before process exit.
type Coordinator struct {
	store  Store
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewCoordinator creates a Coordinator over the given store.
func NewCoordinator(store Store, logger *slog.Logger) *Coordinator {
	return &Coordinator{store: store, logger: logger}
}

// Invalidating wraps a mutating handler. After the handler produced a
// successful envelope, the affected user is resolved from the path parameter,
// then the query, then the result payload, and that user's entries are purged
// asynchronously. When no user can be resolved nothing is purged and the
// stale entries age out via TTL; this matches the historical behavior and is
// logged so the gap stays visible.
func (c *Coordinator) Invalidating() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &bodyRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			if rec.Status() < 200 || rec.Status() >= 300 {
				return
			}

			userID := resolveUser(r, rec.body.Bytes())
			if userID == "" {
				c.logger.Warn("mutation without resolvable user, skipping cache invalidation",
					"method", r.Method, "path", r.URL.Path)
				return
			}
			c.Purge(userID)
		})
	}
}

// Purge schedules a background invalidation of every cache entry scoped to
// the user. Failures are logged only; the write has already succeeded and the
// TTL bounds the resulting staleness.
func (c *Coordinator) Purge(userID string) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), invalidateTimeout)
		defer cancel()

		deleted, err := c.store.Invalidate(ctx, UserPattern(userID))
		if err != nil {
			c.logger.Warn("cache invalidation failed, entries expire via TTL",
				"user_id", userID, "error", err)
			return
		}
		if deleted > 0 {
			c.logger.Debug("cache invalidated", "user_id", userID, "entries", deleted)
		}
	}()
}

// Wait blocks until all scheduled invalidations finished. Called on shutdown
// and by tests that assert on purge effects.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// resolveUser finds the affected user: path parameter first, then query
// parameter, then the user_id field of the mutation's result payload.
func resolveUser(r *http.Request, payload []byte) string {
	if userID := chi.URLParam(r, "userID"); userID != "" {
		return userID
	}
	if userID := r.URL.Query().Get("userId"); userID != "" {
		return userID
	}

	var env struct {
		Data struct {
			UserID string `json:"user_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &env); err != nil {
		return ""
	}
	return env.Data.UserID
}
