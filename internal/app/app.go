package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/quartz"
	"github.com/redis/go-redis/v9"

	"worktrack/internal/analytics"
	"worktrack/internal/cache"
	"worktrack/internal/shared/database"
	"worktrack/internal/shared/health"
	"worktrack/internal/shared/middleware"
	"worktrack/internal/trackers"
)

// App holds the application dependencies and HTTP server.
type App struct {
	cfg         *Config
	logger      *slog.Logger
	db          *database.DB
	redisClient *redis.Client
	invalidator *cache.Coordinator
	rateLimiter *middleware.RateLimiter
	server      *http.Server
}

// New creates and wires all application dependencies.
func New(cfg *Config, logger *slog.Logger) (*App, error) {
	db, err := database.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// The cache store is the only shared mutable resource across requests;
	// errors talking to it degrade to misses, so no startup ping is needed.
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	store := cache.NewRedisStore(redisClient)

	clock := quartz.NewReal()

	repo := trackers.NewRepository(db)
	trackerService := trackers.NewService(repo, clock)
	analyticsService := analytics.NewService(trackers.NewAnalyticsSource(repo), clock)

	trackersHandler := trackers.NewHandler(trackerService)
	analyticsHandler := analytics.NewHandler(analyticsService)
	healthHandler := health.NewHealthHandler(db)

	cacheMW := cache.NewMiddleware(store, cfg.CacheTTL, logger)
	invalidator := cache.NewCoordinator(store, logger)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)

	router := NewRouter(trackersHandler, analyticsHandler, healthHandler, cacheMW, invalidator, rateLimiter)

	return &App{
		cfg:         cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
		invalidator: invalidator,
		rateLimiter: rateLimiter,
		server: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: router,
		},
	}, nil
}

// Handler returns the root HTTP handler, used by integration tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Invalidator exposes the invalidation coordinator so tests can drain it.
func (a *App) Invalidator() *cache.Coordinator {
	return a.invalidator
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	a.logger.Info("server listening", "addr", a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server, draining in-flight cache
// invalidations so every scheduled purge completes before exit.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down server")

	a.rateLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := a.server.Shutdown(ctx)

	a.invalidator.Wait()
	a.redisClient.Close()
	a.db.Close()

	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.logger.Info("server exited properly")
	return nil
}
