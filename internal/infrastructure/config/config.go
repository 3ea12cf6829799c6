package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Storage
	DataDir       string `env:"DATA_DIR"       envDefault:"./data"`
	EncryptionKey string `env:"ENCRYPTION_KEY" envDefault:""`

	// Rate limiting backend: memory or redis
	RateLimitBackend string `env:"RATE_LIMIT_BACKEND" envDefault:"memory"`
	RedisURL         string `env:"REDIS_URL"          envDefault:"redis://localhost:6379"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Per-client HTTP rate limiting
	HTTPRateLimit float64 `env:"HTTP_RATE_LIMIT" envDefault:"50"`
	HTTPRateBurst int     `env:"HTTP_RATE_BURST" envDefault:"100"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
