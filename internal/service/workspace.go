package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/target/shop-admin/internal/apiclient"
	"github.com/target/shop-admin/internal/observability/metrics"
	"github.com/target/shop-admin/internal/ports"
	"github.com/target/shop-admin/internal/querycache"
)

// DefaultIdleTimeout evicts in-memory workspaces that served no request for this long.
// Durable session entries are unaffected; the next request rehydrates them.
const DefaultIdleTimeout = 30 * time.Minute

// Workspace bundles everything one operator session owns: its holder, its
// collection cache, and resource clients that forward its bearer.
type Workspace struct {
	Session *SessionHolder
	Cache   *querycache.Cache
	Mutator *querycache.Mutator
	Shop    ports.ShopAPI

	editors  Editors
	lastUsed time.Time
}

// Editors returns the rich-text editors open in this session.
func (w *Workspace) Editors() *Editors { return &w.editors }

// WorkspacesOptions groups dependencies for Workspaces.
type WorkspacesOptions struct {
	Client      *apiclient.Client
	Auth        ports.AuthAPI
	Store       ports.SessionStore
	SessionTTL  time.Duration
	CacheMaxAge time.Duration
	IdleTimeout time.Duration
	Metrics     metrics.Sink
	Logger      *slog.Logger
	Now         func() time.Time
}

// Workspaces hands out one Workspace per browser session id. Caches are
// never shared between sessions.
type Workspaces struct {
	opts   WorkspacesOptions
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	items map[string]*Workspace
}

// NewWorkspaces constructs an empty registry.
func NewWorkspaces(opts WorkspacesOptions) (*Workspaces, error) {
	if opts.Client == nil {
		return nil, errors.New("api client is required")
	}
	if opts.Auth == nil {
		return nil, errors.New("auth api is required")
	}
	if opts.Store == nil {
		return nil, errors.New("session store is required")
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	opts.Metrics = metrics.OrNoop(opts.Metrics)
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Workspaces{
		opts:   opts,
		logger: logger,
		now:    now,
		items:  make(map[string]*Workspace),
	}, nil
}

// Get returns the workspace for sid, creating it on first use.
func (w *Workspaces) Get(sid string) *Workspace {
	w.mu.Lock()
	defer w.mu.Unlock()

	ws, ok := w.items[sid]
	if !ok {
		ws = w.build(sid)
		w.items[sid] = ws
		w.opts.Metrics.Gauge(metrics.SessionsActive, float64(len(w.items)), nil)
	}
	ws.lastUsed = w.now()
	return ws
}

func (w *Workspaces) build(sid string) *Workspace {
	holder := NewSessionHolder(SessionHolderOptions{
		SessionID: sid,
		Store:     w.opts.Store,
		Auth:      w.opts.Auth,
		TTL:       w.opts.SessionTTL,
		Logger:    w.logger,
		Now:       w.now,
	})
	cache := querycache.New(querycache.Options{
		MaxAge:  w.opts.CacheMaxAge,
		Metrics: w.opts.Metrics,
		Logger:  w.logger,
		Now:     w.now,
	})
	return &Workspace{
		Session: holder,
		Cache:   cache,
		Mutator: querycache.NewMutator(cache, w.opts.Metrics),
		Shop:    apiclient.NewShopAPI(w.opts.Client.WithTokenSource(holder)),
	}
}

// Forget drops the in-memory workspace for sid, typically after logout.
func (w *Workspaces) Forget(sid string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.items, sid)
	w.opts.Metrics.Gauge(metrics.SessionsActive, float64(len(w.items)), nil)
}

// Len reports the number of live workspaces.
func (w *Workspaces) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

// Sweep evicts workspaces idle since before now minus the idle timeout and
// returns how many were removed.
func (w *Workspaces) Sweep(now time.Time) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	cutoff := now.Add(-w.opts.IdleTimeout)
	removed := 0
	for sid, ws := range w.items {
		if ws.lastUsed.Before(cutoff) {
			delete(w.items, sid)
			removed++
		}
	}
	if removed > 0 {
		w.logger.Debug("evicted idle workspaces", "count", removed)
		w.opts.Metrics.Gauge(metrics.SessionsActive, float64(len(w.items)), nil)
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (w *Workspaces) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Sweep(w.now())
		}
	}
}
