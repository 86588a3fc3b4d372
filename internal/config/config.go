package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	API     APIConfig
	Session SessionConfig
	Probe   ProbeConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// APIConfig points the dashboard at the EPD backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig controls the login entry point and cookies written by the dashboard.
type SessionConfig struct {
	LoginPath    string
	CookieSecure bool
}

// ProbeConfig holds the backend reachability probe schedule.
type ProbeConfig struct {
	CronSchedule string
}

// LogConfig selects the zap level.
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
		// missing .env files are fine when configuration comes from the environment
		_ = godotenv.Load()
	}

	timeout, err := getenvDuration("API_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		API: APIConfig{
			BaseURL: strings.TrimSuffix(getenvFirst("EPD_API_URL", "NEXT_PUBLIC_API_URL"), "/"),
			Timeout: timeout,
		},
		Session: SessionConfig{
			LoginPath:    getenvWithDefault("LOGIN_PATH", "/login"),
			CookieSecure: getenvBool("COOKIE_SECURE"),
		},
		Probe: ProbeConfig{
			CronSchedule: getenvWithDefault("PROBE_CRON_SCHEDULE", "@every 1m"),
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

	if c.API.BaseURL == "" {
		return errors.New("EPD_API_URL must be provided")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("EPD_API_URL must be an http(s) URL, got %q", c.API.BaseURL)
	}

	if c.API.Timeout <= 0 {
		return errors.New("API_TIMEOUT must be positive")
	}

	if !strings.HasPrefix(c.Session.LoginPath, "/") {
		return errors.New("LOGIN_PATH must start with /")
	}

	if c.Probe.CronSchedule == "" {
		return errors.New("PROBE_CRON_SCHEDULE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvFirst(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

func getenvBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
