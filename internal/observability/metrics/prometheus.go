package metrics

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusSink adapts Sink calls onto Prometheus collectors. Vectors are
// registered on first use with the tag keys of that call as label names;
// later calls with a different key set are dropped.
type PrometheusSink struct {
	registry *prometheus.Registry
	prefix   string
	logger   *slog.Logger

	mu         sync.Mutex
	counters   map[string]*labeled[*prometheus.CounterVec]
	gauges     map[string]*labeled[*prometheus.GaugeVec]
	histograms map[string]*labeled[*prometheus.HistogramVec]
}

type labeled[V any] struct {
	vec    V
	labels []string
}

var _ Sink = (*PrometheusSink)(nil)

// NewPrometheusSink builds a sink backed by its own registry, which also
// carries the Go runtime and process collectors.
func NewPrometheusSink(prefix string, logger *slog.Logger) *PrometheusSink {
	if logger == nil {
		logger = slog.Default()
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return &PrometheusSink{
		registry:   reg,
		prefix:     promName(prefix),
		logger:     logger,
		counters:   make(map[string]*labeled[*prometheus.CounterVec]),
		gauges:     make(map[string]*labeled[*prometheus.GaugeVec]),
		histograms: make(map[string]*labeled[*prometheus.HistogramVec]),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (p *PrometheusSink) Registry() *prometheus.Registry { return p.registry }

// Handler serves the registry in the Prometheus text format.
func (p *PrometheusSink) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Count adds value to the counter name_total.
func (p *PrometheusSink) Count(name string, value int64, tags map[string]string) {
	if p == nil || value < 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	full := p.metricName(name) + "_total"
	entry, ok := p.counters[full]
	if !ok {
		labels := labelNames(tags)
		vec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: full, Help: name}, labels)
		if !p.register(full, vec) {
			return
		}
		entry = &labeled[*prometheus.CounterVec]{vec: vec, labels: labels}
		p.counters[full] = entry
	}
	if c, err := entry.vec.GetMetricWith(labelValues(entry.labels, tags)); err == nil {
		c.Add(float64(value))
	}
}

// Gauge sets the gauge name to value.
func (p *PrometheusSink) Gauge(name string, value float64, tags map[string]string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	full := p.metricName(name)
	entry, ok := p.gauges[full]
	if !ok {
		labels := labelNames(tags)
		vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: full, Help: name}, labels)
		if !p.register(full, vec) {
			return
		}
		entry = &labeled[*prometheus.GaugeVec]{vec: vec, labels: labels}
		p.gauges[full] = entry
	}
	if g, err := entry.vec.GetMetricWith(labelValues(entry.labels, tags)); err == nil {
		g.Set(value)
	}
}

// Timing observes value in seconds on the histogram name_seconds.
func (p *PrometheusSink) Timing(name string, value time.Duration, tags map[string]string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	full := p.metricName(name) + "_seconds"
	entry, ok := p.histograms[full]
	if !ok {
		labels := labelNames(tags)
		vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    full,
			Help:    name,
			Buckets: prometheus.DefBuckets,
		}, labels)
		if !p.register(full, vec) {
			return
		}
		entry = &labeled[*prometheus.HistogramVec]{vec: vec, labels: labels}
		p.histograms[full] = entry
	}
	if h, err := entry.vec.GetMetricWith(labelValues(entry.labels, tags)); err == nil {
		h.Observe(value.Seconds())
	}
}

func (p *PrometheusSink) register(name string, c prometheus.Collector) bool {
	if err := p.registry.Register(c); err != nil {
		p.logger.Debug("prometheus register failed", "metric", name, "error", err)
		return false
	}
	return true
}

func (p *PrometheusSink) metricName(name string) string {
	n := promName(name)
	if p.prefix == "" {
		return n
	}
	return p.prefix + "_" + n
}

func promName(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}

func labelNames(tags map[string]string) []string {
	names := make([]string, 0, len(tags))
	for k := range tags {
		if n := promName(k); n != "" {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

func labelValues(names []string, tags map[string]string) prometheus.Labels {
	out := make(prometheus.Labels, len(names))
	for k, v := range tags {
		out[promName(k)] = v
	}
	return out
}
