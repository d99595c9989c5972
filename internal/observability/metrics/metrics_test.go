package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countCall struct {
	name  string
	value int64
	tags  map[string]string
}

type recordingSink struct {
	mu      sync.Mutex
	counts  []countCall
	timings []string
}

func (r *recordingSink) Count(name string, value int64, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = append(r.counts, countCall{name: name, value: value, tags: tags})
}

func (r *recordingSink) Gauge(string, float64, map[string]string) {}

func (r *recordingSink) Timing(name string, _ time.Duration, _ map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timings = append(r.timings, name)
}

func TestEmitFetch(t *testing.T) {
	sink := &recordingSink{}

	EmitFetch(sink, FetchMetric{Resource: "products", Duration: time.Millisecond})
	EmitFetch(sink, FetchMetric{Resource: "orders", Err: errors.New("boom")})

	require.Len(t, sink.counts, 2)
	assert.Equal(t, CacheFetch, sink.counts[0].name)
	assert.Equal(t, ResultSuccess, sink.counts[0].tags["result"])
	assert.Equal(t, ResultError, sink.counts[1].tags["result"])
	assert.Equal(t, []string{CacheFetchTime}, sink.timings, "zero duration emits no timing")
}

func TestEmitInvalidateSkipsZero(t *testing.T) {
	sink := &recordingSink{}
	EmitInvalidate(sink, "reviews", 0)
	EmitInvalidate(sink, "reviews", 3)

	require.Len(t, sink.counts, 1)
	assert.Equal(t, int64(3), sink.counts[0].value)
}

func TestEmitMutationAddsErrorClass(t *testing.T) {
	sink := &recordingSink{}
	EmitMutation(sink, "brands", errors.New("boom"))

	require.Len(t, sink.counts, 1)
	assert.Equal(t, ResultError, sink.counts[0].tags["result"])
	assert.NotEmpty(t, sink.counts[0].tags["error_class"])
}

func TestNilSinkIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		EmitFetch(nil, FetchMetric{Resource: "x"})
		EmitHit(nil, "x")
		EmitRequest(nil, "GET", "/", 200, time.Second)
		OrNoop(nil).Count("x", 1, nil)
	})
}

func findFamily(t *testing.T, p *PrometheusSink, name string) *dto.MetricFamily {
	t.Helper()
	families, err := p.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return nil
}

func TestPrometheusSinkCounter(t *testing.T) {
	p := NewPrometheusSink("shopadmin", nil)

	p.Count(CacheFetch, 2, map[string]string{"resource": "products", "result": "success"})
	p.Count(CacheFetch, 1, map[string]string{"resource": "products", "result": "success"})
	// Mismatched label set is dropped rather than panicking.
	p.Count(CacheFetch, 1, map[string]string{"resource": "products"})

	f := findFamily(t, p, "shopadmin_cache_fetch_total")
	require.Len(t, f.GetMetric(), 1)
	assert.InDelta(t, 3.0, f.GetMetric()[0].GetCounter().GetValue(), 0.0001)
}

func TestPrometheusSinkHistogramAndGauge(t *testing.T) {
	p := NewPrometheusSink("", nil)

	p.Timing(HTTPRequestDuration, 250*time.Millisecond, map[string]string{"method": "GET", "route": "/products"})
	p.Gauge(SessionsActive, 4, nil)

	h := findFamily(t, p, "http_request_duration_seconds")
	assert.Equal(t, uint64(1), h.GetMetric()[0].GetHistogram().GetSampleCount())

	g := findFamily(t, p, "sessions_active")
	assert.InDelta(t, 4.0, g.GetMetric()[0].GetGauge().GetValue(), 0.0001)
}

func TestPrometheusSinkHandler(t *testing.T) {
	p := NewPrometheusSink("shopadmin", nil)
	EmitHit(p, "categories")

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `shopadmin_cache_hit_total{resource="categories"} 1`))
}
