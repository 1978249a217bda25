package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerEnv holds the process settings read from the environment.
// Command-line flags take these as their defaults.
type ServerEnv struct {
	Port           int           `env:"PORT" envDefault:"8080"`
	Host           string        `env:"HOST" envDefault:"localhost"`
	ConfigDir      string        `env:"CONFIG_DIR" envDefault:"configs"`
	DefaultConfig  string        `env:"DEFAULT_CONFIG" envDefault:"classic"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	NgrokEnabled   bool          `env:"NGROK_ENABLED" envDefault:"false"`
	NgrokAuthToken string        `env:"NGROK_AUTHTOKEN"`
	NgrokDomain    string        `env:"NGROK_DOMAIN"`
}

// ParseServerEnv reads ServerEnv from the process environment
func ParseServerEnv() (ServerEnv, error) {
	var cfg ServerEnv
	if err := env.Parse(&cfg); err != nil {
		return ServerEnv{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
