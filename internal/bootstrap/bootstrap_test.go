package bootstrap

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/shop-admin/config"
	authmocks "github.com/target/shop-admin/internal/mocks/auth"
	"github.com/target/shop-admin/internal/observability/metrics"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.AppConfig {
	cfg := &config.AppConfig{
		API: config.APIConfig{BaseURL: "http://api.test/api"},
	}
	cfg.Sanitize()
	return cfg
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://shop.example/api/")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("LOCALE_LANGUAGE", "en")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example/api", cfg.API.BaseURL)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "en", cfg.Locale.Language)
	assert.Equal(t, "shopadmin_sid", cfg.Session.CookieName)
}

func TestNewLoggerHonoursLevelAndFormat(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := NewLogger(&buf, config.LoggingConfig{Level: "warn", Format: "text"})
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown k=v")
	assert.Same(t, logger, slog.Default())

	buf.Reset()
	NewLogger(&buf, config.LoggingConfig{Level: "debug", Format: "json"}).Debug("trace")
	assert.Contains(t, buf.String(), `"msg":"trace"`)
}

func TestBuildMetrics(t *testing.T) {
	t.Run("disabled is a no-op", func(t *testing.T) {
		m, err := BuildMetrics(config.ObservabilityMetricsConfig{}, discardLogger())
		require.NoError(t, err)
		assert.Equal(t, metrics.Noop{}, m.Sink)
		assert.Nil(t, m.Handler)
		assert.NoError(t, m.Close())
	})

	t.Run("prometheus exposes a handler", func(t *testing.T) {
		cfg := config.ObservabilityMetricsConfig{Enabled: true, Backend: config.MetricsBackendPrometheus}
		cfg.Sanitize()
		m, err := BuildMetrics(cfg, discardLogger())
		require.NoError(t, err)
		require.NotNil(t, m.Handler)
		assert.IsType(t, &metrics.PrometheusSink{}, m.Sink)
	})

	t.Run("statsd has no handler", func(t *testing.T) {
		cfg := config.ObservabilityMetricsConfig{
			Enabled:       true,
			Backend:       config.MetricsBackendStatsd,
			StatsdAddress: "127.0.0.1:8125",
		}
		cfg.Sanitize()
		m, err := BuildMetrics(cfg, discardLogger())
		require.NoError(t, err)
		assert.Nil(t, m.Handler)
		assert.NoError(t, m.Close())
	})
}

func TestNewAppRequiresSessionStorage(t *testing.T) {
	_, err := NewApp(AppDeps{Config: testConfig(), Logger: discardLogger()})
	require.Error(t, err)

	_, err = NewApp(AppDeps{Logger: discardLogger()})
	require.Error(t, err)
}

func TestNewAppServesPages(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.CompressionEnabled = true

	m, err := BuildMetrics(config.ObservabilityMetricsConfig{Enabled: true}, discardLogger())
	require.NoError(t, err)

	app, err := NewApp(AppDeps{
		Config:  cfg,
		Store:   authmocks.NewMemorySessionStore(),
		Metrics: m,
		Logger:  discardLogger(),
	})
	require.NoError(t, err)
	require.NotNil(t, app.Workspaces)

	cases := []struct {
		path   string
		status int
	}{
		{"/healthz", http.StatusOK},
		{"/login", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/products", http.StatusSeeOther},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			app.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestRunStopsOnSignal(t *testing.T) {
	app, err := NewApp(AppDeps{
		Config: testConfig(),
		Store:  authmocks.NewMemorySessionStore(),
		Logger: discardLogger(),
	})
	require.NoError(t, err)

	sig := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), RunOptions{
			App:     app,
			HTTP:    config.HTTPConfig{Addr: "127.0.0.1:0"},
			Logger:  discardLogger(),
			Signals: sig,
		})
	}()

	sig <- syscall.SIGTERM
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after signal")
	}
}

func TestRunReportsListenError(t *testing.T) {
	app, err := NewApp(AppDeps{
		Config: testConfig(),
		Store:  authmocks.NewMemorySessionStore(),
		Logger: discardLogger(),
	})
	require.NoError(t, err)

	err = Run(context.Background(), RunOptions{
		App:     app,
		HTTP:    config.HTTPConfig{Addr: "256.0.0.1:bad"},
		Logger:  discardLogger(),
		Signals: make(chan os.Signal),
	})
	require.Error(t, err)
}

func TestRunRequiresApp(t *testing.T) {
	require.Error(t, Run(context.Background(), RunOptions{}))
}
