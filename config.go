// config.go
//
// Process configuration for the Skill Issue server.
// Values come from the environment (optionally seeded from a .env file in
// development) and are parsed into a struct via caarlos0/env tags.

package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything main needs to wire the server.
type Config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	DBPath   string `env:"DB_PATH" envDefault:"./data/skill-issue.db"`

	// LaunchDate is day 0 of the puzzle (puzzle #1).
	LaunchDate string `env:"LAUNCH_DATE" envDefault:"2026-02-22"`
	// Timezone fixes the shared day boundary for every player.
	Timezone string `env:"TIMEZONE" envDefault:"America/Toronto"`
	// CatalogFile overrides the embedded game catalog when set.
	CatalogFile string `env:"CATALOG_FILE"`
}

// loadConfig reads .env (best effort) and parses the environment.
func loadConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
