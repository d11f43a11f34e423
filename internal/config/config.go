package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Refresh RefreshConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StoreConfig points at the remote sales API.
type StoreConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RefreshConfig controls the background reload of the sales list.
// An empty schedule disables it.
type RefreshConfig struct {
	Schedule string
}

// LogConfig holds logger options.
type LogConfig struct {
	Level string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine when everything comes from the environment.
		_ = godotenv.Load()
	}

	timeout, err := time.ParseDuration(getenvWithDefault("SALES_API_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("SALES_API_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Store: StoreConfig{
			BaseURL: getenvWithDefault("SALES_API_BASE_URL", "http://localhost:3000"),
			Timeout: timeout,
		},
		Refresh: RefreshConfig{
			Schedule: os.Getenv("SALES_REFRESH_SCHEDULE"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Store.BaseURL == "" {
		return errors.New("SALES_API_BASE_URL must not be empty")
	}
	u, err := url.Parse(c.Store.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("SALES_API_BASE_URL must be an absolute URL, got %q", c.Store.BaseURL)
	}

	if c.Store.Timeout <= 0 {
		return errors.New("SALES_API_TIMEOUT must be positive")
	}

	if c.Refresh.Schedule != "" {
		if _, err := cron.ParseStandard(c.Refresh.Schedule); err != nil {
			return fmt.Errorf("SALES_REFRESH_SCHEDULE is not a valid cron expression: %w", err)
		}
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
