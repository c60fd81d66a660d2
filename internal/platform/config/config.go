// Package config loads the process configuration once at startup.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"blog_backend/internal/platform/db"
	"blog_backend/internal/platform/redis"
)

// Config is the explicit application context built in main and handed to constructors.
type Config struct {
	Env         string        `env:"APP_ENV" envDefault:"development"`
	Port        string        `env:"PORT" envDefault:"3000"`
	JWTSecret   string        `env:"JWT_SECRET,required,notEmpty"`
	JWTExpiry   time.Duration `env:"JWT_EXPIRES_IN" envDefault:"168h"`
	CORSOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	DB    db.Config
	Redis redis.Config
}

// IsProduction reports whether APP_ENV is "production".
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
