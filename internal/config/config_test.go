package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:3001/api", cfg.UpstreamBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 300*time.Millisecond, cfg.RetryInitial)
	assert.Equal(t, 3*time.Second, cfg.RetryMax)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 30*time.Second, cfg.RefreshTimeout)
	assert.Equal(t, 1000, cfg.SessionMaxCount)
	assert.Equal(t, 2*time.Hour, cfg.SessionMaxIdle)
	assert.Empty(t, cfg.CatalogPath)
	assert.Equal(t, "/images", cfg.AssetBaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("UPSTREAM_BASE_URL", "https://api.example.org/v2")
	t.Setenv("REFRESH_INTERVAL", "0s")
	t.Setenv("SESSION_MAX_COUNT", "5")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://api.example.org/v2", cfg.UpstreamBaseURL)
	assert.Equal(t, time.Duration(0), cfg.RefreshInterval)
	assert.Equal(t, 5, cfg.SessionMaxCount)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestInvalidValues(t *testing.T) {
	tests := map[string]string{
		"HTTP_TIMEOUT":         "soon",
		"UPSTREAM_MAX_RETRIES": "many",
		"LOG_LEVEL":            "verbose",
		"UPSTREAM_BASE_URL":    "not a url",
		"UPSTREAM_RETRY_MAX":   "1ms",
		"SESSION_MAX_IDLE":     "-1h",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := fromEnv()
			assert.Error(t, err)
		})
	}
}
