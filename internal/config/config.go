// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting. Nothing reads global state after
// construction; the start date and store location travel with this struct.
type Config struct {
	// Addr is the listen address for the HTTP API.
	Addr string `env:"ADDR" envDefault:":8000"`
	// DatabaseURL selects the PostgreSQL store when set.
	DatabaseURL string `env:"DATABASE_URL"`
	// SQLitePath selects the embedded SQLite store when set.
	SQLitePath string `env:"SQLITE_PATH"`
	// DataFile is the legacy JSON document store, used when no database is
	// configured.
	DataFile string `env:"DATA_FILE" envDefault:"user_data.json"`
	// StartDate is the campaign start date (ISO day) progression is
	// measured from.
	StartDate string `env:"START_DATE" envDefault:"2026-01-01"`
}

// Load parses the environment into a Config and validates the start date.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.Start(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Start returns the parsed campaign start date.
func (c *Config) Start() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse START_DATE: %w", err)
	}
	return t, nil
}
