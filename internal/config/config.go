// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Mode selects how the rendezvous endpoint behaves at startup.
type Mode string

const (
	ModeDisabled  Mode = "disabled"
	ModeNative    Mode = "native"
	ModeDelegated Mode = "delegated"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port     string
	Env      string // "development", "staging", "production"
	LogLevel string

	// Rendezvous mode
	Mode          Mode
	DelegationURL string // required if Mode == ModeDelegated
	LegacyURL     string // optional: unconditional 307 target for the legacy path
	URLPrefix     string // absolute URL prefix used by the URL Builder

	// Rendezvous store tuning
	TTL              time.Duration
	SoftCapacity     int
	HardCapacity     int
	MaxContentLength int64

	// HTTP server timeouts
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// Defaults, per spec.md §4.2 and §6.
const (
	DefaultPort     = "8080"
	DefaultEnv      = "development"
	DefaultLogLevel = "info"

	DefaultMode             = ModeDisabled
	DefaultURLPrefix        = "https://localhost:8080/session/"
	DefaultTTL              = 5 * time.Minute
	DefaultSoftCapacity     = 100
	DefaultHardCapacity     = 200
	DefaultMaxContentLength = 4 * 1024 // 4 KiB

	DefaultHTTPReadTimeout  = 10 * time.Second
	DefaultHTTPWriteTimeout = 30 * time.Second
	DefaultHTTPIdleTimeout  = 60 * time.Second
)

// Load reads configuration from environment variables.
// It loads a .env file if present (for local development).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not present)
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", DefaultPort),
		Env:      getEnv("ENV", DefaultEnv),
		LogLevel: getEnv("LOG_LEVEL", DefaultLogLevel),

		Mode:          Mode(getEnv("RENDEZVOUS_MODE", string(DefaultMode))),
		DelegationURL: os.Getenv("RENDEZVOUS_DELEGATION_URL"),
		LegacyURL:     os.Getenv("RENDEZVOUS_LEGACY_URL"),
		URLPrefix:     getEnv("RENDEZVOUS_URL_PREFIX", DefaultURLPrefix),

		TTL:              getEnvDuration("RENDEZVOUS_TTL_SECONDS_DURATION", 0),
		SoftCapacity:     int(getEnvInt64("RENDEZVOUS_SOFT_CAPACITY", DefaultSoftCapacity)),
		HardCapacity:     int(getEnvInt64("RENDEZVOUS_HARD_CAPACITY", DefaultHardCapacity)),
		MaxContentLength: getEnvInt64("RENDEZVOUS_MAX_CONTENT_LENGTH_BYTES", DefaultMaxContentLength),

		HTTPReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", DefaultHTTPReadTimeout),
		HTTPWriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", DefaultHTTPWriteTimeout),
		HTTPIdleTimeout:  getEnvDuration("HTTP_IDLE_TIMEOUT", DefaultHTTPIdleTimeout),
	}

	if cfg.TTL == 0 {
		ttlSeconds := getEnvInt64("RENDEZVOUS_TTL_SECONDS", int64(DefaultTTL/time.Second))
		cfg.TTL = time.Duration(ttlSeconds) * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and sane.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeDisabled, ModeNative, ModeDelegated:
	case "":
		c.Mode = ModeDisabled
	default:
		return fmt.Errorf("RENDEZVOUS_MODE must be one of disabled|native|delegated, got %q", c.Mode)
	}

	if c.Mode == ModeDelegated {
		if c.DelegationURL == "" {
			return fmt.Errorf("RENDEZVOUS_DELEGATION_URL is required when RENDEZVOUS_MODE=delegated")
		}
		u, err := url.Parse(c.DelegationURL)
		if err != nil || !u.IsAbs() {
			return fmt.Errorf("RENDEZVOUS_DELEGATION_URL must be an absolute URL, got %q", c.DelegationURL)
		}
	}

	// Port range
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port)
	}

	if c.Mode == ModeNative {
		if c.TTL <= 0 {
			return fmt.Errorf("RENDEZVOUS_TTL_SECONDS must be positive, got %v", c.TTL)
		}
		if c.SoftCapacity <= 0 || c.HardCapacity <= 0 {
			return fmt.Errorf("RENDEZVOUS_SOFT_CAPACITY and RENDEZVOUS_HARD_CAPACITY must be positive")
		}
		if c.SoftCapacity > c.HardCapacity {
			return fmt.Errorf("RENDEZVOUS_SOFT_CAPACITY (%d) must not exceed RENDEZVOUS_HARD_CAPACITY (%d)", c.SoftCapacity, c.HardCapacity)
		}
		if c.MaxContentLength <= 0 {
			return fmt.Errorf("RENDEZVOUS_MAX_CONTENT_LENGTH_BYTES must be positive, got %d", c.MaxContentLength)
		}
		if !strings.HasSuffix(c.URLPrefix, "/") {
			return fmt.Errorf("RENDEZVOUS_URL_PREFIX must end with '/', got %q", c.URLPrefix)
		}
		if u, err := url.Parse(c.URLPrefix); err != nil || !u.IsAbs() {
			return fmt.Errorf("RENDEZVOUS_URL_PREFIX must be an absolute URL, got %q", c.URLPrefix)
		}
	}

	// Write timeout must be at least the sweep reschedule cadence (1s) to avoid truncated responses
	if c.HTTPWriteTimeout > 0 && c.HTTPWriteTimeout < time.Second {
		return fmt.Errorf("HTTP_WRITE_TIMEOUT (%v) must be at least 1s", c.HTTPWriteTimeout)
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
