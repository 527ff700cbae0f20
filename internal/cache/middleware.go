package cache

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"worktrack/internal/shared/respond"
)

// Middleware is the read-through response cache wrapped around the read
// endpoints. Handlers stay pure: they produce an envelope, and this layer
// decides whether to serve or store it.
type Middleware struct {
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

// NewMiddleware creates the caching middleware. A zero ttl falls back to
// DefaultTTL.
func NewMiddleware(store Store, ttl time.Duration, logger *slog.Logger) *Middleware {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Middleware{store: store, ttl: ttl, logger: logger}
}

// Cached wraps a read handler with the cache keyed on the given route
// identity. Hits are served verbatim; on a miss the response is captured and
// stored when its success flag is set. Store failures are logged and treated
// as misses, so a cache outage never fails a read.
func (m *Middleware) Cached(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := requestKey(route, r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			payload, hit, err := m.store.Get(r.Context(), key)
			if err != nil {
				m.logger.Warn("cache get failed, serving live", "key", key, "error", err)
			}
			if hit {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(payload))
				return
			}

			rec := &bodyRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			// Only successful envelopes get cached; error responses are
			// recomputed every time.
			if rec.Status() == http.StatusOK && respond.IsSuccess(rec.body.Bytes()) {
				if err := m.store.SetWithTTL(r.Context(), key, rec.body.String(), m.ttl); err != nil {
					m.logger.Warn("cache set failed", "key", key, "error", err)
				}
			}
		})
	}
}

// bodyRecorder tees the response body so the middleware can inspect and store
// it after the handler ran.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (rec *bodyRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *bodyRecorder) Write(b []byte) (int, error) {
	rec.body.Write(b)
	return rec.ResponseWriter.Write(b)
}

// Status returns the written status code, defaulting to 200 when the handler
// never called WriteHeader.
func (rec *bodyRecorder) Status() int {
	if rec.status == 0 {
		return http.StatusOK
	}
	return rec.status
}
