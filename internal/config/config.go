package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// Upstream endpoints serving weather, air quality and alerts.
	UpstreamBaseURL string        `validate:"required,url"`
	HTTPTimeout     time.Duration `validate:"gt=0"`
	MaxRetries      int           `validate:"gte=0,lte=10"`
	RetryInitial    time.Duration `validate:"gt=0"`
	RetryMax        time.Duration `validate:"gtefield=RetryInitial"`

	// RefreshInterval controls how often every live session is refreshed (0 = disabled).
	RefreshInterval time.Duration `validate:"gte=0"`
	RefreshTimeout  time.Duration `validate:"gt=0"`

	// Session registry retention.
	SessionMaxCount int           `validate:"gte=0"` // 0 = unlimited
	SessionMaxIdle  time.Duration `validate:"gte=0"` // 0 = never expire

	CatalogPath  string
	AssetBaseURL string

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "reason", err)
	}
	return fromEnv()
}

func fromEnv() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:            getenvDefault("PORT", "8080"),
		UpstreamBaseURL: getenvDefault("UPSTREAM_BASE_URL", "http://localhost:3001/api"),
		CatalogPath:     os.Getenv("CATALOG_PATH"),
		AssetBaseURL:    getenvDefault("ASSET_BASE_URL", "/images"),
		LogLevel:        getenvDefault("LOG_LEVEL", "info"),
		LogFormat:       getenvDefault("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.MaxRetries, err = getenvInt("UPSTREAM_MAX_RETRIES", 2); err != nil {
		return nil, err
	}
	if cfg.SessionMaxCount, err = getenvInt("SESSION_MAX_COUNT", 1000); err != nil {
		return nil, err
	}

	durations := []struct {
		key  string
		def  string
		dest *time.Duration
	}{
		{"HTTP_TIMEOUT", "10s", &cfg.HTTPTimeout},
		{"UPSTREAM_RETRY_INITIAL", "300ms", &cfg.RetryInitial},
		{"UPSTREAM_RETRY_MAX", "3s", &cfg.RetryMax},
		{"REFRESH_INTERVAL", "5m", &cfg.RefreshInterval},
		{"REFRESH_TIMEOUT", "30s", &cfg.RefreshTimeout},
		{"SESSION_MAX_IDLE", "2h", &cfg.SessionMaxIdle},
	}
	for _, d := range durations {
		if *d.dest, err = getenvDuration(d.key, d.def); err != nil {
			return nil, err
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
