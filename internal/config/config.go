// Package config loads service configuration from the environment.
package config

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sethvargo/go-envconfig"
)

// Config is the full service configuration.
type Config struct {
	Port     string        `env:"PORT,            default=8080"`
	Env      string        `env:"ENV,             default=development"`
	AppName  string        `env:"APP_NAME,        default=Hospital Admin"`
	LogLevel string        `env:"LOG_LEVEL,       default=info"`
	LogColor bool          `env:"LOG_PRETTY,      default=false"`
	JWTS     string        `env:"JWT_SECRET,      default=dev-only-secret"`
	TokenTTL time.Duration `env:"TOKEN_TTL,       default=24h"`
	IdleTTL  time.Duration `env:"SESSION_IDLE_TTL,default=12h"`

	CORS  CORSConfig
	Redis RedisConfig
}

// CORSConfig controls the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:5173"`
}

// RedisConfig selects the snapshot backend. Snapshots stay in process
// memory unless Enabled is set.
type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED,  default=false"`
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, errors.Wrap(err, "[config.Load] process environment")
	}
	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
