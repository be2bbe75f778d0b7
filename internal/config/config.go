package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds the application configuration, parsed from the environment.
type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Origins allowed to send credentialed requests.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	SessionCookie string        `env:"SESSION_COOKIE" envDefault:"session_id"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// Janitor cadences, in cron spec syntax.
	SessionPruneSchedule     string `env:"SESSION_PRUNE_SCHEDULE" envDefault:"@every 1h"`
	CommunityRecountSchedule string `env:"COMMUNITY_RECOUNT_SCHEDULE" envDefault:"@every 5m"`

	// Whether to load the community fixtures on startup.
	SeedData bool `env:"SEED_DATA" envDefault:"true"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the app runs with production hardening
// (Secure session cookies).
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
