package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the API server configuration.
type Config struct {
	Env  string `envconfig:"TRACKER_ENV" default:"development"`
	Port int    `envconfig:"PORT" default:"5000"`
	DB   DBConfig
	CORS CORSConfig
}

// database configuration
type DBConfig struct {
	Driver       string        `envconfig:"DATABASE_DRIVER" default:"sqlite"`
	DSN          string        `envconfig:"DATABASE_URL" default:"job_tracker.db"`
	MaxOpenConns int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	MaxIdleTime  time.Duration `envconfig:"DB_MAX_IDLE_TIME" default:"15m"`
}

// CORS configuration
type CORSConfig struct {
	TrustedOrigins []string `envconfig:"CORS_TRUSTED_ORIGINS" default:"*"`
}

// Load reads the server configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validateEnv(c.Env); err != nil {
		return err
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid DATABASE_DRIVER: %s (must be sqlite or postgres)", c.DB.Driver)
	}
	if strings.TrimSpace(c.DB.DSN) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if c.DB.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1")
	}
	if c.DB.MaxIdleConns < 1 {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be at least 1")
	}
	if c.DB.MaxIdleConns > c.DB.MaxOpenConns {
		return fmt.Errorf("DB_MAX_IDLE_CONNS (%d) cannot exceed DB_MAX_OPEN_CONNS (%d)",
			c.DB.MaxIdleConns, c.DB.MaxOpenConns)
	}
	if len(c.GetCORSOrigins()) == 0 {
		return fmt.Errorf("at least one trusted origin must be specified")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// GetCORSOrigins returns the list of trusted CORS origins
func (c *Config) GetCORSOrigins() []string {
	return trimAll(c.CORS.TrustedOrigins)
}

// AllowAllOrigins reports whether the wildcard origin was configured.
func (c *Config) AllowAllOrigins() bool {
	for _, origin := range c.GetCORSOrigins() {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Env=%s, Port=%d, DB.Driver=%s, DB.MaxOpenConns=%d, DB.MaxIdleConns=%d, CORS.Origins=%d}",
		c.Env, c.Port, c.DB.Driver, c.DB.MaxOpenConns, c.DB.MaxIdleConns, len(c.GetCORSOrigins()))
}

func validateEnv(env string) error {
	validEnvs := map[string]bool{
		"development": true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, production, test)", env)
	}
	return nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
