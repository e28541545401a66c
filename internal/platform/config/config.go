// Package config loads application configuration from the environment.
package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `env:"APP_ENV" env-default:"local" env-description:"Environment" env-choices:"local,dev,prod"`
	HTTPPort string `env:"HTTP_PORT" env-default:"8080"`

	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" env-default:"720h"`

	QuoteCacheTTL time.Duration `env:"QUOTE_CACHE_TTL" env-default:"1m"`

	Postgres Postgres
}

type Postgres struct {
	Host string `env:"DB_HOST" env-default:"localhost"`
	Port string `env:"DB_PORT" env-default:"5432"`
	User string `env:"DB_USER" env-default:""`
	Pass string `env:"DB_PASSWORD" env-default:""`
	Db   string `env:"DB_NAME" env-default:""`
}

// MustLoad reads configuration from environment variables and panics on failure.
func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("failed to read config: " + err.Error())
	}
	return &cfg
}
