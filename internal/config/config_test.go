package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper to set env vars and clean up after
func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old := os.Getenv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if old == "" {
			os.Unsetenv(key)
		} else {
			os.Setenv(key, old)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, "RENDEZVOUS_MODE", "")
	setEnv(t, "PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, ModeDisabled, cfg.Mode)
	assert.Equal(t, DefaultTTL, cfg.TTL)
	assert.Equal(t, DefaultSoftCapacity, cfg.SoftCapacity)
	assert.Equal(t, DefaultHardCapacity, cfg.HardCapacity)
	assert.Equal(t, int64(DefaultMaxContentLength), cfg.MaxContentLength)
}

func TestLoad_DelegatedRequiresURL(t *testing.T) {
	setEnv(t, "RENDEZVOUS_MODE", "delegated")
	setEnv(t, "RENDEZVOUS_DELEGATION_URL", "")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RENDEZVOUS_DELEGATION_URL is required")
}

func TestLoad_DelegatedWithURL(t *testing.T) {
	setEnv(t, "RENDEZVOUS_MODE", "delegated")
	setEnv(t, "RENDEZVOUS_DELEGATION_URL", "https://asd")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ModeDelegated, cfg.Mode)
	assert.Equal(t, "https://asd", cfg.DelegationURL)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name: "valid native config",
			config: Config{
				Mode:             ModeNative,
				Port:             "8080",
				TTL:              5 * 60 * 1e9,
				SoftCapacity:     100,
				HardCapacity:     200,
				MaxContentLength: 4096,
				URLPrefix:        "https://example.com/session/",
			},
			wantErr: "",
		},
		{
			name: "soft exceeds hard",
			config: Config{
				Mode:             ModeNative,
				Port:             "8080",
				TTL:              5 * 60 * 1e9,
				SoftCapacity:     300,
				HardCapacity:     200,
				MaxContentLength: 4096,
				URLPrefix:        "https://example.com/session/",
			},
			wantErr: "must not exceed",
		},
		{
			name: "missing url prefix slash",
			config: Config{
				Mode:             ModeNative,
				Port:             "8080",
				TTL:              5 * 60 * 1e9,
				SoftCapacity:     100,
				HardCapacity:     200,
				MaxContentLength: 4096,
				URLPrefix:        "https://example.com/session",
			},
			wantErr: "must end with '/'",
		},
		{
			name: "bad mode",
			config: Config{
				Mode: "bogus",
				Port: "8080",
			},
			wantErr: "must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Env: "development"}
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.Env = "production"
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())
}

func TestGetEnv(t *testing.T) {
	setEnv(t, "TEST_VAR", "custom_value")

	assert.Equal(t, "custom_value", getEnv("TEST_VAR", "default"))
	assert.Equal(t, "default", getEnv("NONEXISTENT_VAR", "default"))
}

func TestGetEnvInt64(t *testing.T) {
	setEnv(t, "TEST_INT", "42")
	setEnv(t, "TEST_INVALID", "not_a_number")

	assert.Equal(t, int64(42), getEnvInt64("TEST_INT", 0))
	assert.Equal(t, int64(99), getEnvInt64("NONEXISTENT_VAR", 99))
	assert.Equal(t, int64(99), getEnvInt64("TEST_INVALID", 99)) // Falls back on parse error
}
