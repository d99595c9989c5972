package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/target/shop-admin/config"
	"github.com/target/shop-admin/internal/observability/metrics"
	"github.com/target/shop-admin/internal/observability/statsd"
)

// Metrics is the configured sink plus whatever the backend needs at runtime.
type Metrics struct {
	Sink metrics.Sink
	// Handler serves GET /metrics; nil unless the backend is prometheus.
	Handler http.Handler

	closer func() error
}

// Close flushes and releases the backend.
func (m *Metrics) Close() error {
	if m == nil || m.closer == nil {
		return nil
	}
	return m.closer()
}

// BuildMetrics selects the metrics backend. Disabled metrics yield a no-op sink.
func BuildMetrics(cfg config.ObservabilityMetricsConfig, logger *slog.Logger) (*Metrics, error) {
	if !cfg.IsEnabled() {
		return &Metrics{Sink: metrics.Noop{}}, nil
	}

	switch cfg.Backend {
	case config.MetricsBackendStatsd:
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.StatsdAddress,
			Prefix:  cfg.Prefix,
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("statsd client: %w", err)
		}
		logger.Info("metrics enabled", "backend", "statsd", "addr", cfg.StatsdAddress)
		return &Metrics{Sink: client, closer: client.Close}, nil
	default:
		sink := metrics.NewPrometheusSink(cfg.Prefix, logger)
		logger.Info("metrics enabled", "backend", "prometheus", "path", "/metrics")
		return &Metrics{Sink: sink, Handler: sink.Handler()}, nil
	}
}
