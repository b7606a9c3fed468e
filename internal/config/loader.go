package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if GIGPULSE_CONFIG is set
//  3. env (prefix GIGPULSE_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("GIGPULSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: GIGPULSE_ADDR, GIGPULSE_QUEUE_SIZE, ...
	// Map env keys like GIGPULSE_QUEUE_SIZE -> queue_size, preserving
	// underscores to match koanf tags on the struct.
	envProvider := env.Provider("GIGPULSE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "gigpulse_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.QueueSize <= 0 {
		return nil, fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	}
	if cfg.MinMoveMeters < 0 {
		return nil, fmt.Errorf("%w: min_move_meters must not be negative", ErrInvalidConfig)
	}
	return &cfg, nil
}
