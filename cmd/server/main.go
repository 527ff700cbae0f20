// Package main provides the entry point for the worktrack analytics server.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"worktrack/internal/app"
)

// logStartup logs the effective configuration.
func logStartup(logger *slog.Logger, cfg *app.Config) {
	logger.Info("starting worktrack server",
		"port", cfg.Port,
		"db_path", cfg.DBPath,
		"redis_addr", cfg.RedisAddr,
		"cache_ttl", cfg.CacheTTL,
		"rate_limit", cfg.RateLimit,
	)
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := app.LoadConfig()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logStartup(logger, cfg)

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create app", "error", err)
		os.Exit(1)
	}

	go func() {
		if err := a.Run(); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	if err := a.Shutdown(); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
