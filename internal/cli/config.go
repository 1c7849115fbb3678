package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds CLI configuration, loaded from DISCORDLINK_* environment
// variables with flags overriding
type Config struct {
	BaseURL     string `env:"DISCORDLINK_SERVER" envDefault:"http://localhost:8080"`
	Credential  string `env:"DISCORDLINK_AUTH"`
	StorageType string `env:"DISCORDLINK_STORAGE" envDefault:"memory"`
	RedisURL    string `env:"DISCORDLINK_REDIS_URL" envDefault:"redis://localhost:6379"`
	PlayersFile string `env:"DISCORDLINK_PLAYERS" envDefault:"players.json"`
	Output      string `env:"DISCORDLINK_OUTPUT" envDefault:"text"`
	Verbose     bool   `env:"DISCORDLINK_VERBOSE"`
}

// DefaultConfig returns a Config populated from the environment
func DefaultConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
