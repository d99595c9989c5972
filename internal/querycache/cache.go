// Package querycache holds fetched resource collections per operator session.
//
// Entries are keyed by resource name plus a canonical filter set. A read
// returns the cached value while it is fresh; otherwise exactly one fetch per
// key runs and every concurrent caller shares its result. Mutations never
// patch cached data: they mark the affected keys stale so the next read
// refetches.
package querycache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/target/shop-admin/internal/observability/metrics"
	"github.com/target/shop-admin/internal/ports"
)

// Status is the lifecycle state of a cache entry.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Key identifies one cached collection.
type Key struct {
	Name    string
	Filters ports.Filters
}

// NewKey builds a key for resource name with optional filters.
func NewKey(name string, filters ports.Filters) Key {
	return Key{Name: name, Filters: filters}
}

// String returns name?k=v&k2=v2 with keys sorted and empty values dropped.
func (k Key) String() string {
	q := k.Filters.Canonical()
	if q == "" {
		return k.Name
	}
	return k.Name + "?" + q
}

// Entry is a snapshot of one cached collection.
type Entry struct {
	Key       Key
	Status    Status
	Data      any
	Err       error
	Stale     bool
	FetchedAt time.Time

	// gen counts invalidations; a fill started under an older gen lands stale.
	gen uint64
	// applied is the seq of the fill whose result Data holds.
	applied uint64
}

// Options configures a Cache.
type Options struct {
	// MaxAge marks successful entries stale once they are older than this. Zero disables ageing.
	MaxAge  time.Duration
	Metrics metrics.Sink
	Logger  *slog.Logger
	Now     func() time.Time
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	group   singleflight.Group
	seq     uint64

	maxAge time.Duration
	sink   metrics.Sink
	logger *slog.Logger
	now    func() time.Time
}

// New constructs an empty Cache.
func New(opts Options) *Cache {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	maxAge := opts.MaxAge
	if maxAge < 0 {
		maxAge = 0
	}
	return &Cache{
		entries: make(map[string]*Entry),
		maxAge:  maxAge,
		sink:    metrics.OrNoop(opts.Metrics),
		logger:  logger.With("component", "querycache"),
		now:     now,
	}
}

// Peek returns a copy of the entry for key and whether it can be served without
// a fetch. It never fetches; an unknown key reports StatusIdle.
func (c *Cache) Peek(key Key) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return Entry{Key: key, Status: StatusIdle}, false
	}
	return *e, c.freshLocked(e)
}

func (c *Cache) freshLocked(e *Entry) bool {
	if e.Status != StatusSuccess || e.Stale {
		return false
	}
	if c.maxAge > 0 && c.now().Sub(e.FetchedAt) > c.maxAge {
		return false
	}
	return true
}

// Fetcher loads one collection from the remote API.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Get returns the cached collection for key when fresh, otherwise fetches it.
// Concurrent callers for the same key share one fetch. A caller arriving after
// an invalidation never joins a fetch that started before it. The result
// replaces the entry wholesale; one that lands after a later invalidation is
// stored stale so the next read refetches.
func Get[T any](ctx context.Context, c *Cache, key Key, fetch Fetcher[T]) (T, error) {
	var zero T
	id := key.String()

	c.mu.RLock()
	e, ok := c.entries[id]
	fresh := ok && c.freshLocked(e)
	var cached any
	if fresh {
		cached = e.Data
	}
	c.mu.RUnlock()

	if fresh {
		v, ok := cached.(T)
		if !ok {
			return zero, fmt.Errorf("querycache: entry %s holds %T", id, cached)
		}
		metrics.EmitHit(c.sink, key.Name)
		return v, nil
	}

	ch := c.group.DoChan(id, func() (any, error) {
		return c.fill(ctx, key, func(ctx context.Context) (any, error) {
			return fetch(ctx)
		})
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, ok := res.Val.(T)
		if !ok {
			return zero, fmt.Errorf("querycache: entry %s holds %T", id, res.Val)
		}
		return v, nil
	}
}

// fill runs under singleflight. It detaches from the caller's cancellation so
// a late response still lands for the next reader.
func (c *Cache) fill(ctx context.Context, key Key, fetch func(context.Context) (any, error)) (any, error) {
	id := key.String()
	seq, gen := c.setLoading(key)

	start := c.now()
	data, err := fetch(context.WithoutCancel(ctx))
	metrics.EmitFetch(c.sink, metrics.FetchMetric{
		Resource: key.Name,
		Duration: c.now().Sub(start),
		Err:      err,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entryLocked(key)
	if err != nil {
		c.logger.WarnContext(ctx, "collection fetch failed", "key", id, "error", err)
		if seq > e.applied {
			e.applied = seq
			e.Status = StatusError
			e.Err = err
		}
		return nil, err
	}
	// A newer fill already landed; keep its data.
	if seq < e.applied {
		return data, nil
	}
	e.applied = seq
	e.Status = StatusSuccess
	e.Data = data
	e.Err = nil
	e.Stale = e.gen != gen
	e.FetchedAt = c.now()
	return data, nil
}

// setLoading marks key loading and returns the fill's sequence number together
// with the entry generation it observed.
func (c *Cache) setLoading(key Key) (seq, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	e := c.entryLocked(key)
	e.Status = StatusLoading
	return c.seq, e.gen
}

// invalidateLocked marks e stale, bumps its generation and detaches any
// in-flight fetch so later readers start a new one.
func (c *Cache) invalidateLocked(id string, e *Entry) {
	e.Stale = true
	e.gen++
	c.group.Forget(id)
}

func (c *Cache) entryLocked(key Key) *Entry {
	id := key.String()
	e, ok := c.entries[id]
	if !ok {
		e = &Entry{Key: key, Status: StatusIdle}
		c.entries[id] = e
	}
	return e
}

// Invalidate marks the exact keys stale. Data stays readable through Peek.
func (c *Cache) Invalidate(keys ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	counts := make(map[string]int)
	for _, k := range keys {
		id := k.String()
		if e, ok := c.entries[id]; ok {
			c.invalidateLocked(id, e)
			counts[k.Name]++
		}
	}
	for name, n := range counts {
		metrics.EmitInvalidate(c.sink, name, n)
	}
}

// InvalidatePrefix marks every key of resource name stale, whatever its filters.
func (c *Cache) InvalidatePrefix(names ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range names {
		n := 0
		for id, e := range c.entries {
			if id == name || strings.HasPrefix(id, name+"?") {
				c.invalidateLocked(id, e)
				n++
			}
		}
		metrics.EmitInvalidate(c.sink, name, n)
	}
}

// Len reports the number of tracked keys.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
