// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration. SMTP credentials are injected
// here and nowhere else; the password is removed from the process
// environment once read.
type Config struct {
	PodHost string `env:"SMBOT_POD_HOST" envDefault:"localhost"`
	PodPort int    `env:"SMBOT_POD_PORT" envDefault:"443"`

	SMTPHost     string `env:"SMBOT_SMTP_HOST,required,notEmpty"`
	SMTPPort     int    `env:"SMBOT_SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMBOT_SMTP_USERNAME,required,notEmpty"`
	SMTPPassword string `env:"SMBOT_SMTP_PASSWORD,required,notEmpty,unset"`
	FromAddress  string `env:"SMBOT_FROM_ADDRESS"`

	// Members backs the static directory used when running without a chat
	// platform: "id=address,id=address".
	Members map[string]string `env:"SMBOT_MEMBERS" envSeparator:"," envKeyValSeparator:"="`

	LogLevel string `env:"SMBOT_LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
