package metrics

import (
	"time"

	obserrors "github.com/target/shop-admin/internal/observability/errors"
)

// Metric names emitted by the collection cache and mutation helpers.
const (
	CacheFetch      = "cache.fetch"
	CacheFetchTime  = "cache.fetch_duration"
	CacheHit        = "cache.hit"
	CacheInvalidate = "cache.invalidate"
	Mutation        = "mutation"
)

// FetchMetric captures one collection fetch.
type FetchMetric struct {
	Resource string
	Duration time.Duration
	Err      error
}

// EmitFetch records a completed fetch with its result and duration.
func EmitFetch(sink Sink, in FetchMetric) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"resource": in.Resource,
		"result":   ResultSuccess,
	}
	if in.Err != nil {
		tags["result"] = ResultError
	}
	sink.Count(CacheFetch, 1, tags)
	if in.Duration > 0 {
		sink.Timing(CacheFetchTime, in.Duration, map[string]string{"resource": in.Resource})
	}
}

// EmitHit records a fresh cache read that needed no fetch.
func EmitHit(sink Sink, resource string) {
	if sink == nil {
		return
	}
	sink.Count(CacheHit, 1, map[string]string{"resource": resource})
}

// EmitInvalidate records n entries marked stale for resource.
func EmitInvalidate(sink Sink, resource string, n int) {
	if sink == nil || n <= 0 {
		return
	}
	sink.Count(CacheInvalidate, int64(n), map[string]string{"resource": resource})
}

// EmitMutation records a create, update or delete against resource.
func EmitMutation(sink Sink, resource string, err error) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"resource": resource,
		"result":   ResultSuccess,
	}
	if err != nil {
		tags["result"] = ResultError
		if class := obserrors.Classify(err); class != "" {
			tags["error_class"] = class
		}
	}
	sink.Count(Mutation, 1, tags)
}
