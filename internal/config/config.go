// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration of the server.
type Config struct {
	Addr      string `env:"GOLEM_ADDR" envDefault:":8080"`
	JWTSecret string `env:"GOLEM_JWT_SECRET" envDefault:"dev-secret-change-me"`

	// DBDialect selects persistence: "memory", "sqlite" or "postgres".
	DBDialect   string `env:"GOLEM_DB_DIALECT" envDefault:"memory"`
	SQLitePath  string `env:"GOLEM_SQLITE_PATH" envDefault:"golem.db"`
	PostgresDSN string `env:"GOLEM_POSTGRES_DSN"`

	// RedisAddr enables the activity trail when non-empty.
	RedisAddr string `env:"GOLEM_REDIS_ADDR"`

	LogLevel string `env:"GOLEM_LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	if cfg.DBDialect == "postgres" && cfg.PostgresDSN == "" {
		return Config{}, fmt.Errorf("config: GOLEM_POSTGRES_DSN is required with the postgres dialect")
	}
	return cfg, nil
}
