package config

import "strings"

const defaultMetricsPrefix = "shopadmin"

// ObservabilityConfig groups configuration that controls logging and metrics emission.
type ObservabilityConfig struct {
	Logging LoggingConfig `envPrefix:"LOG_"`
	Metrics ObservabilityMetricsConfig
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.Logging.Sanitize()
	c.Metrics.Sanitize()
}

// LoggingConfig selects the slog handler and its minimum level.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `env:"LEVEL" envDefault:"info"`
	// Format is json or text.
	Format string `env:"FORMAT" envDefault:"json"`
}

// Sanitize lowercases both fields and falls back to info/json on unknown values.
func (c *LoggingConfig) Sanitize() {
	c.Level = strings.ToLower(strings.TrimSpace(c.Level))
	switch c.Level {
	case "debug", "info", "warn", "error":
	case "warning":
		c.Level = "warn"
	default:
		c.Level = "info"
	}
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format != "text" {
		c.Format = "json"
	}
}

// MetricsBackend selects where cache and mutation metrics are emitted.
type MetricsBackend string

const (
	// MetricsBackendPrometheus exposes metrics on /metrics.
	MetricsBackendPrometheus MetricsBackend = "prometheus"
	// MetricsBackendStatsd pushes metrics to a StatsD sink over UDP.
	MetricsBackendStatsd MetricsBackend = "statsd"
)

// ObservabilityMetricsConfig controls emission of metrics to Prometheus or StatsD.
type ObservabilityMetricsConfig struct {
	Enabled       bool           `env:"OBSERVABILITY_METRICS_ENABLED"        envDefault:"false"`
	Backend       MetricsBackend `env:"OBSERVABILITY_METRICS_BACKEND"        envDefault:"prometheus"`
	Prefix        string         `env:"OBSERVABILITY_METRICS_PREFIX"         envDefault:"shopadmin"`
	StatsdAddress string         `env:"OBSERVABILITY_METRICS_STATSD_ADDRESS" envDefault:"127.0.0.1:8125"`
}

// Sanitize normalises derived fields and enforces safe defaults.
func (c *ObservabilityMetricsConfig) Sanitize() {
	c.StatsdAddress = strings.TrimSpace(c.StatsdAddress)
	c.Prefix = strings.TrimSpace(c.Prefix)
	if c.Prefix == "" {
		c.Prefix = defaultMetricsPrefix
	}
	switch MetricsBackend(strings.ToLower(string(c.Backend))) {
	case MetricsBackendStatsd:
		c.Backend = MetricsBackendStatsd
		if c.StatsdAddress == "" {
			c.Enabled = false
		}
	default:
		c.Backend = MetricsBackendPrometheus
	}
}

// IsEnabled returns true when metrics emission is active after sanitisation.
func (c *ObservabilityMetricsConfig) IsEnabled() bool {
	if !c.Enabled {
		return false
	}
	if c.Backend == MetricsBackendStatsd {
		return c.StatsdAddress != ""
	}
	return true
}
