package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "http://localhost:4000/api", cfg.API.BaseURL)
	assert.Equal(t, "http://localhost:4000", cfg.API.AssetBaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "shopadmin_sid", cfg.Session.CookieName)
	assert.Equal(t, "localhost:6379", cfg.Redis.URI)
	assert.Equal(t, "fa", cfg.Locale.Language)
	assert.Equal(t, MetricsBackendPrometheus, cfg.Observability.Metrics.Backend)
	assert.False(t, cfg.Observability.Metrics.IsEnabled())
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", " https://shop.example.com/api/ ")
	t.Setenv("API_ASSET_BASE_URL", "https://cdn.example.com/")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_COOKIE_NAME", "admin_sid")
	t.Setenv("REDIS_URI", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_MAX_AGE", "1m")
	t.Setenv("LOCALE_LANGUAGE", "en")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, "https://shop.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "https://cdn.example.com", cfg.API.AssetBaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "admin_sid", cfg.Session.CookieName)
	assert.Equal(t, "redis:6379", cfg.Redis.URI)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, time.Minute, cfg.Cache.MaxAge)
	assert.Equal(t, "en", cfg.Locale.Language)
}

func TestAPIConfig_Sanitize(t *testing.T) {
	cfg := APIConfig{BaseURL: "  ", Timeout: -1}
	cfg.Sanitize()

	assert.Equal(t, defaultAPIBaseURL, cfg.BaseURL)
	assert.Equal(t, defaultAssetBaseURL, cfg.AssetBaseURL)
	assert.Equal(t, defaultAPITimeout, cfg.Timeout)
}

func TestSessionConfig_Sanitize(t *testing.T) {
	cfg := SessionConfig{}
	cfg.Sanitize()

	assert.Equal(t, defaultSessionTTL, cfg.TTL)
	assert.Equal(t, defaultCookieName, cfg.CookieName)
}

func TestHTTPConfig_SanitizeClampsCompression(t *testing.T) {
	low := HTTPConfig{CompressionLevel: 0}
	low.Sanitize()
	assert.Equal(t, 1, low.CompressionLevel)

	high := HTTPConfig{CompressionLevel: 12}
	high.Sanitize()
	assert.Equal(t, 9, high.CompressionLevel)
}

func TestHTTPConfig_SanitizeRestoresTimeouts(t *testing.T) {
	cfg := HTTPConfig{ReadTimeout: -1, CompressionMinSize: -5, IdleTimeout: time.Minute}
	cfg.Sanitize()
	assert.Equal(t, defaultReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, defaultWriteTimeout, cfg.WriteTimeout)
	assert.Equal(t, time.Minute, cfg.IdleTimeout)
	assert.Equal(t, defaultMinGzipSize, cfg.CompressionMinSize)
}

func TestLoggingConfig_Sanitize(t *testing.T) {
	cfg := LoggingConfig{Level: " WARNING ", Format: "Text"}
	cfg.Sanitize()
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "text", cfg.Format)

	cfg = LoggingConfig{Level: "verbose", Format: "xml"}
	cfg.Sanitize()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name    string
		in      ObservabilityMetricsConfig
		backend MetricsBackend
		enabled bool
	}{
		{
			name:    "prometheus default",
			in:      ObservabilityMetricsConfig{Enabled: true},
			backend: MetricsBackendPrometheus,
			enabled: true,
		},
		{
			name:    "statsd without address disables",
			in:      ObservabilityMetricsConfig{Enabled: true, Backend: "STATSD", StatsdAddress: "  "},
			backend: MetricsBackendStatsd,
			enabled: false,
		},
		{
			name:    "statsd with address",
			in:      ObservabilityMetricsConfig{Enabled: true, Backend: "statsd", StatsdAddress: "127.0.0.1:8125"},
			backend: MetricsBackendStatsd,
			enabled: true,
		},
		{
			name:    "unknown backend falls back to prometheus",
			in:      ObservabilityMetricsConfig{Enabled: true, Backend: "graphite"},
			backend: MetricsBackendPrometheus,
			enabled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.in
			cfg.Sanitize()
			assert.Equal(t, tt.backend, cfg.Backend)
			assert.Equal(t, tt.enabled, cfg.IsEnabled())
			assert.Equal(t, defaultMetricsPrefix, cfg.Prefix)
		})
	}
}

func TestAppConfig_DetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}
