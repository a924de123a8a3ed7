// Package config loads application configuration from environment variables,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Loads a .env file into the process environment before Load reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the application's environment variables, e.g.
// AGENTSTUDIO_ADDR or AGENTSTUDIO_DB.
const envPrefix = "AGENTSTUDIO_"

// Config holds application configuration.
type Config struct {
	Addr      string `koanf:"addr" validate:"required"`       // AGENTSTUDIO_ADDR, default ":8081"
	DBPath    string `koanf:"db" validate:"required"`         // AGENTSTUDIO_DB, default "agentstudio.db"
	AuthToken string `koanf:"auth_token"`                     // AGENTSTUDIO_AUTH_TOKEN, optional
	LogLevel  string `koanf:"log_level" validate:"required"`  // AGENTSTUDIO_LOG_LEVEL, default "info"
}

// Load reads configuration from the environment, applies defaults and
// validates the result.
func Load() (Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := Config{}
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8081"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "agentstudio.db"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
