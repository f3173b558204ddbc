// Package config loads process settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/xtding233/pull-predictor/internal/logging"
)

// Config holds the settings shared by the server and the CLI.
type Config struct {
	Addr          string
	ConfigDir     string // preset root, see internal/game
	CacheSize     int
	CacheTTL      time.Duration
	WatchInterval time.Duration // 0 disables preset hot reload
	Logging       logging.Config
}

// Load reads a .env file when present, then the environment.
func Load() (*Config, error) {
	// a missing .env is fine, real env vars may be set
	_ = godotenv.Load()

	cfg := &Config{
		Addr:      getEnv("PREDICTOR_ADDR", ":8080"),
		ConfigDir: getEnv("PREDICTOR_CONFIG_DIR", "configs"),
		Logging: logging.Config{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
			Output: getEnv("LOG_OUTPUT", "stderr"),
		},
	}

	var err error
	if cfg.CacheSize, err = strconv.Atoi(getEnv("CACHE_SIZE", "1024")); err != nil {
		return nil, fmt.Errorf("invalid CACHE_SIZE value: %w", err)
	}
	if cfg.CacheSize <= 0 {
		return nil, fmt.Errorf("invalid CACHE_SIZE value: %d", cfg.CacheSize)
	}
	if cfg.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "10m")); err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL value: %w", err)
	}
	if cfg.WatchInterval, err = time.ParseDuration(getEnv("WATCH_INTERVAL", "5s")); err != nil {
		return nil, fmt.Errorf("invalid WATCH_INTERVAL value: %w", err)
	}
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
