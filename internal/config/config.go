// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration.
type Config struct {
	// HTTP server
	Port int `env:"PORT" envDefault:"8080"`

	// Database
	DBPath string `env:"DB_PATH" envDefault:"./data/kittysplit.db"`

	// Auth
	JWTSecret     string        `env:"JWT_SECRET,required,notEmpty"`
	TokenDuration time.Duration `env:"TOKEN_DURATION" envDefault:"24h"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be between 1 and 65535", cfg.Port)
	}
	return cfg, nil
}
