package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// ClientConfig holds the tracker client configuration.
type ClientConfig struct {
	Env       string `envconfig:"TRACKER_ENV" default:"development"`
	ServerURL string `envconfig:"TRACKER_SERVER_URL" default:"http://localhost:5000"`
	// Zero leaves timeouts to the network stack.
	HTTPTimeout time.Duration `envconfig:"TRACKER_HTTP_TIMEOUT" default:"0s"`
	LogFile     string        `envconfig:"TRACKER_LOG_FILE"`
	Autosave    AutosaveConfig
}

// AutosaveConfig selects where in-progress add-form values are kept.
type AutosaveConfig struct {
	Backend       string `envconfig:"AUTOSAVE_BACKEND" default:"file"`
	Path          string `envconfig:"AUTOSAVE_PATH"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// LoadClient reads the client configuration from environment variables and
// fills in per-user default paths.
func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Autosave.Path == "" || cfg.LogFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		dir = filepath.Join(dir, "job-tracker")
		if cfg.Autosave.Path == "" {
			cfg.Autosave.Path = filepath.Join(dir, "autosave.json")
		}
		if cfg.LogFile == "" {
			cfg.LogFile = filepath.Join(dir, "tracker.log")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *ClientConfig) Validate() error {
	if err := validateEnv(c.Env); err != nil {
		return err
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid TRACKER_SERVER_URL: %q", c.ServerURL)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("TRACKER_HTTP_TIMEOUT must be non-negative")
	}
	switch c.Autosave.Backend {
	case "file":
		if c.Autosave.Path == "" {
			return fmt.Errorf("AUTOSAVE_PATH must be set for the file backend")
		}
	case "redis":
		if c.Autosave.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR must be set for the redis backend")
		}
	case "memory":
	default:
		return fmt.Errorf("invalid AUTOSAVE_BACKEND: %s (must be file, redis or memory)", c.Autosave.Backend)
	}
	return nil
}
