package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"APP_PORT", "SALES_API_BASE_URL", "SALES_API_TIMEOUT", "SALES_REFRESH_SCHEDULE", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Store.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Store.Timeout)
	assert.Empty(t, cfg.Refresh.Schedule)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "APP_PORT=9090\nSALES_API_BASE_URL=http://store.internal:4000\nSALES_API_TIMEOUT=3s\nSALES_REFRESH_SCHEDULE=*/5 * * * *\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	// godotenv never overrides variables that are already set, even to "".
	for _, key := range []string{"APP_PORT", "SALES_API_BASE_URL", "SALES_API_TIMEOUT", "SALES_REFRESH_SCHEDULE"} {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "http://store.internal:4000", cfg.Store.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Store.Timeout)
	assert.Equal(t, "*/5 * * * *", cfg.Refresh.Schedule)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("SALES_API_TIMEOUT", "soon")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "8080"},
			Store:  StoreConfig{BaseURL: "http://localhost:3000", Timeout: time.Second},
		}
	}

	require.NoError(t, valid().Validate())

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())

	cfg := valid()
	cfg.Server.Port = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Store.BaseURL = "localhost"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Store.Timeout = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Refresh.Schedule = "every monday"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Refresh.Schedule = "0 * * * *"
	assert.NoError(t, cfg.Validate())
}
