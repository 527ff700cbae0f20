package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"worktrack/internal/analytics"
	"worktrack/internal/cache"
	"worktrack/internal/shared/health"
	"worktrack/internal/shared/middleware"
	"worktrack/internal/trackers"
)

// NewRouter creates and configures the HTTP router with all routes. Read
// routes are wrapped by the response cache per route identity; mutating
// routes are wrapped by the invalidation coordinator.
func NewRouter(
	trackersHandler *trackers.Handler,
	analyticsHandler *analytics.Handler,
	healthHandler *health.HealthHandler,
	cacheMW *cache.Middleware,
	invalidator *cache.Coordinator,
	rateLimiter *middleware.RateLimiter,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.SecurityHeadersMiddleware)
	r.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Health endpoint bypasses caching entirely
	r.Method(http.MethodGet, "/healthz", healthHandler)

	invalidating := invalidator.Invalidating()

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users/{userID}", func(r chi.Router) {
			r.With(cacheMW.Cached("trackers")).Get("/trackers", trackersHandler.List)
			r.With(invalidating).Post("/trackers", trackersHandler.Create)

			r.With(cacheMW.Cached("daily-totals")).Get("/daily-totals", analyticsHandler.DailyTotals)
			r.With(cacheMW.Cached("daily-totals")).Get("/daily-totals/{period}", analyticsHandler.DailyTotals)

			r.With(cacheMW.Cached("total-hours")).Get("/total-hours", analyticsHandler.TotalHours)
			r.With(cacheMW.Cached("total-hours")).Get("/total-hours/{period}", analyticsHandler.TotalHours)

			r.With(cacheMW.Cached("productivity-trend")).Get("/productivity-trend", analyticsHandler.ProductivityTrend)
			r.With(cacheMW.Cached("productivity-trend")).Get("/productivity-trend/{period}", analyticsHandler.ProductivityTrend)

			r.With(cacheMW.Cached("today")).Get("/today", analyticsHandler.Today)
		})

		r.Route("/trackers/{trackerID}", func(r chi.Router) {
			r.With(invalidating).Post("/start", trackersHandler.Start)
			r.With(invalidating).Post("/stop", trackersHandler.Stop)
			r.With(invalidating).Post("/archive", trackersHandler.Archive)
			r.With(invalidating).Post("/unarchive", trackersHandler.Unarchive)
		})
	})

	return r
}
