package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"worktrack/internal/cache"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Port      string
	DBPath    string
	RedisAddr string
	CacheTTL  time.Duration
	RateLimit int
}

// LoadConfig loads configuration from environment variables.
// Returns an error if a value is present but invalid.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:      os.Getenv("WORKTRACK_PORT"),
		DBPath:    os.Getenv("WORKTRACK_DB_PATH"),
		RedisAddr: os.Getenv("WORKTRACK_REDIS_ADDR"),
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "7070"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./worktrack.db"
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "127.0.0.1:6379"
	}

	cfg.CacheTTL = cache.DefaultTTL
	if ttlStr := os.Getenv("WORKTRACK_CACHE_TTL_SEC"); ttlStr != "" {
		ttl, err := strconv.Atoi(ttlStr)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("WORKTRACK_CACHE_TTL_SEC must be a positive integer")
		}
		cfg.CacheTTL = time.Duration(ttl) * time.Second
	}

	cfg.RateLimit = 100
	if limitStr := os.Getenv("WORKTRACK_RATE_LIMIT"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("WORKTRACK_RATE_LIMIT must be a positive integer")
		}
		cfg.RateLimit = limit
	}

	return cfg, nil
}
