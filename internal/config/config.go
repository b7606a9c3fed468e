// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers file and env on top.
// - External errors are wrapped via this package's error kinds.
package config

import (
	"github.com/gigpulse/gigpulse/internal/adapters/settings"
	"github.com/gigpulse/gigpulse/internal/domain/classify"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory ingestion queue.
	QueueSize int `koanf:"queue_size"`

	// MinMoveMeters filters fix deltas below the threshold. 0 keeps the
	// zero-threshold behavior where stationary jitter still accrues.
	MinMoveMeters float64 `koanf:"min_move_meters"`

	// BusyPhrases is the demand lexicon matched against notification text.
	BusyPhrases []string `koanf:"busy_phrases"`

	// PlatformRoutes maps app-identifier substrings to platform labels.
	PlatformRoutes map[string]string `koanf:"platform_routes"`

	// RedisAddr enables the redis settings store when non-empty; settings
	// stay in memory otherwise.
	RedisAddr string `koanf:"redis_addr"`

	// RedisSettingsKey is the hash key the settings store writes under.
	RedisSettingsKey string `koanf:"redis_settings_key"`

	// AllowedOrigins configures CORS for the HTTP API.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8090",
		QueueSize:        4096,
		MinMoveMeters:    0,
		BusyPhrases:      append([]string(nil), classify.DefaultBusyPhrases...),
		PlatformRoutes:   classify.DefaultPlatformRoutes,
		RedisAddr:        "",
		RedisSettingsKey: settings.DefaultRedisKey,
		AllowedOrigins:   []string{"*"},
	}
}
