package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Auth. Empty disables the bearer check.
	DocfmtAPIKey string

	// Upload limits
	MaxUploadBytes int64

	// Result store
	ResultTTL       time.Duration
	CleanupInterval time.Duration

	// Latency stats window
	StatsWindow time.Duration

	LogLevel string

	// Optional YAML file with proper nouns, style mappings and option defaults.
	RulesFile string
}

// DefaultMaxUploadBytes is the 5 MiB upload ceiling.
const DefaultMaxUploadBytes = 5 * 1024 * 1024

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		DocfmtAPIKey: os.Getenv("DOCFMT_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),

		ResultTTL:       envDuration("RESULT_TTL", 1*time.Hour),
		CleanupInterval: envDuration("CLEANUP_INTERVAL", 5*time.Minute),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		LogLevel: envOr("LOG_LEVEL", "info"),

		RulesFile: os.Getenv("RULES_FILE"),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 1 * time.Hour
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if n, err := strconv.Atoi(c.Port); err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("PORT must be a valid TCP port, got %q", c.Port)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.RulesFile != "" {
		if _, err := os.Stat(c.RulesFile); err != nil {
			return fmt.Errorf("RULES_FILE: %w", err)
		}
	}
	return nil
}

// ParseLevel maps a LOG_LEVEL value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
