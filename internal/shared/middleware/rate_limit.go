package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter implements a sliding window rate limiter keyed by client IP.
type RateLimiter struct {
	mu          sync.Mutex
	requests    map[string][]time.Time
	limit       int
	window      time.Duration
	cleanupStop chan struct{}
}

// NewRateLimiter creates a rate limiter allowing limit requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests:    make(map[string][]time.Time),
		limit:       limit,
		window:      window,
		cleanupStop: make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// cleanup periodically drops idle IP entries to bound memory.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for ip, times := range rl.requests {
				var valid []time.Time
				for _, t := range times {
					if now.Sub(t) < rl.window {
						valid = append(valid, t)
					}
				}
				if len(valid) == 0 {
					delete(rl.requests, ip)
				} else {
					rl.requests[ip] = valid
				}
			}
			rl.mu.Unlock()
		case <-rl.cleanupStop:
			return
		}
	}
}

// Allow checks whether a request from the given IP is allowed. When denied it
// also returns the number of seconds until the next request would be allowed.
func (rl *RateLimiter) Allow(ip string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-rl.window)

	var valid []time.Time
	for _, t := range rl.requests[ip] {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.limit {
		oldest := valid[0]
		retryAfter := int(rl.window.Seconds() - now.Sub(oldest).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		rl.requests[ip] = valid
		return false, retryAfter
	}

	rl.requests[ip] = append(valid, now)
	return true, 0
}

// Stop terminates the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.cleanupStop)
}

// clientIP extracts the client IP from the request, preferring proxy headers
// and falling back to RemoteAddr with the port stripped.
func clientIP(r *http.Request) string {
	if xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	addr := r.RemoteAddr
	// [2001:db8::1]:port
	if len(addr) > 0 && addr[0] == '[' {
		if end := strings.IndexByte(addr, ']'); end != -1 {
			return addr[1:end]
		}
	}
	if lastColon := strings.LastIndexByte(addr, ':'); lastColon != -1 {
		return addr[:lastColon]
	}
	return addr
}

// RateLimitMiddleware enforces the limiter, answering 429 with a Retry-After
// header and the standard error envelope when the limit is exceeded.
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, retryAfter := limiter.Allow(clientIP(r))
			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"success":false,"error":"Too many requests"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
