package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime configuration for the Quill API service.
type Config struct {
	Addr string `env:"ADDR,default=:8080"`

	// DatabaseURL is the pooled connection string all request handlers use.
	// DirectDatabaseURL bypasses the pooler for migrations; it falls back to
	// DatabaseURL when unset.
	DatabaseURL       string `env:"DATABASE_URL,required"`
	DirectDatabaseURL string `env:"DIRECT_DATABASE_URL"`

	OTLPEndpoint   string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:3000"`
	RateLimit      int           `env:"RATE_LIMIT,default=100"`
	RateWindow     time.Duration `env:"RATE_WINDOW,default=1m"`
	SessionTTL     time.Duration `env:"SESSION_TTL,default=720h"`
}

// MigrationURL returns the DSN migrations should run against.
func (c Config) MigrationURL() string {
	if c.DirectDatabaseURL != "" {
		return c.DirectDatabaseURL
	}
	return c.DatabaseURL
}

// Load returns a Config populated from environment variables.
func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
