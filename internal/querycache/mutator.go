package querycache

import (
	"context"

	"github.com/target/shop-admin/internal/observability/metrics"
)

// Mutator runs create, update and delete calls and invalidates the affected
// collections once they succeed.
type Mutator struct {
	cache *Cache
	sink  metrics.Sink
}

// NewMutator binds a Mutator to cache. sink may be nil.
func NewMutator(cache *Cache, sink metrics.Sink) *Mutator {
	return &Mutator{cache: cache, sink: metrics.OrNoop(sink)}
}

// Run calls fn and, only when it succeeds, marks every collection named in
// invalidates stale. The first name is used as the metric resource.
func (m *Mutator) Run(ctx context.Context, fn func(ctx context.Context) error, invalidates ...string) error {
	err := fn(ctx)
	resource := ""
	if len(invalidates) > 0 {
		resource = invalidates[0]
	}
	metrics.EmitMutation(m.sink, resource, err)
	if err != nil {
		return err
	}
	if m.cache != nil {
		m.cache.InvalidatePrefix(invalidates...)
	}
	return nil
}
