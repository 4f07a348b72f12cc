// Package config loads CLI settings from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/baton/internal/logging"
	"github.com/caarlos0/env/v11"
)

// Config holds process-wide settings. Flags override them.
type Config struct {
	LogLevel  string `env:"BATON_LOG_LEVEL" envDefault:"warn"`
	LogJSON   bool   `env:"BATON_LOG_JSON"`
	Debug     bool   `env:"BATON_DEBUG"`
	Manifests string `env:"BATON_MANIFESTS" envDefault:"."`
	Tools     string `env:"BATON_TOOLS" envDefault:"tools.yaml"`
}

// Level returns the configured slog level; Debug forces debug.
func (c Config) Level() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	return logging.ParseLevel(c.LogLevel)
}

// Load reads Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
