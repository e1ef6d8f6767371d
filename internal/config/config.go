package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process-wide configuration, loaded once at startup from the
// environment. JWT_SECRET has no default: startup fails when it is absent.
type Config struct {
	Port      string        `env:"PORT, default=8080"`
	Env       string        `env:"ENV, default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	DB      DBConfig
	Discord DiscordConfig
}

type DBConfig struct {
	Host     string `env:"DB_HOST, default=localhost"`
	Port     string `env:"DB_PORT, default=5432"`
	User     string `env:"DB_USER, default=pizza_this_user"`
	Password string `env:"DB_PASSWORD, default=pizza_this_password"`
	Name     string `env:"DB_NAME, default=pizza_this_db"`
	SSLMode  string `env:"DB_SSLMODE, default=disable"`

	// SchemaPath points at a SQL file applied on startup when set.
	SchemaPath string `env:"DB_SCHEMA_PATH"`
}

type DiscordConfig struct {
	// WebhookURL empty disables outbound notifications.
	WebhookURL string        `env:"DISCORD_WEBHOOK_URL"`
	Timeout    time.Duration `env:"DISCORD_WEBHOOK_TIMEOUT, default=10s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
