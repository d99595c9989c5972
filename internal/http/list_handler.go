package httpx

import (
	"context"
	"net/http"

	"github.com/target/shop-admin/internal/ports"
	"github.com/target/shop-admin/internal/querycache"
	"github.com/target/shop-admin/internal/service"
	"github.com/target/shop-admin/internal/table"
)

// ListFetcher loads one collection from the shop API for the given filters.
type ListFetcher[T any] func(ctx context.Context, ws *service.Workspace, filters ports.Filters) ([]T, error)

// DataEnricher adds page-specific data after the table has been built.
type DataEnricher[T any] func(ctx context.Context, b *TemplateDataBuilder, view table.View[T])

// ListHandlerOpts contains all options needed for the generic list handler.
type ListHandlerOpts[T any] struct {
	// Handler is the UIHandlers instance for rendering (required)
	Handler *UIHandlers
	W       http.ResponseWriter
	R       *http.Request
	// Resource names the collection; it is the cache key prefix mutations invalidate.
	Resource string
	Fetch    ListFetcher[T]
	// Filters lists the query parameters forwarded to the API as filters.
	Filters []string
	Columns []table.Column[T]
	// BasePath is the list URL used for header, pager and filter links.
	BasePath string
	PageMeta PageMeta
	// ErrorMessage is the inline alert shown when the fetch fails.
	ErrorMessage string
	EmptyMessage string
	// ExtraColumns counts non-data columns such as the actions column.
	ExtraColumns int
	// PageSize applies when the URL names no size. Zero shows every row.
	PageSize   int
	EnrichData DataEnricher[T]
}

// HandleList fetches the collection through the workspace cache, sorts and
// paginates it in memory and renders the page. A refresh query parameter
// drops the cached copy first. A failed fetch renders the last data the cache
// holds, or an empty table, under an inline alert. A rejected token logs the
// operator out.
func HandleList[T any](opts ListHandlerOpts[T]) {
	if opts.Handler == nil || opts.W == nil || opts.R == nil || opts.Fetch == nil {
		if opts.W != nil {
			http.Error(opts.W, "Internal configuration error", http.StatusInternalServerError)
		}
		return
	}
	h, w, r := opts.Handler, opts.W, opts.R

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filters := ParseFilters(q, opts.Filters...)
	key := querycache.NewKey(opts.Resource, filters)
	if q.Get(paramRefresh) != "" {
		ws.Cache.Invalidate(key)
	}
	items, err := querycache.Get(r.Context(), ws.Cache, key, func(ctx context.Context) ([]T, error) {
		return opts.Fetch(ctx, ws, filters)
	})
	if err != nil && isAuthFailure(err) {
		h.handleAuthFailure(w, r, ws)
		return
	}
	stale := false
	if err != nil {
		items, stale = lastKnown[T](ws.Cache, key)
	}

	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = table.All
	}
	sortState := table.SortFromQuery(q, opts.Columns)
	view := table.Build(items, opts.Columns, sortState, table.PageFromQueryOr(q, pageSize), table.Options{
		Sorter:       h.Sorter,
		EmptyMessage: opts.EmptyMessage,
		ExtraColumns: opts.ExtraColumns,
	})

	b := NewTemplateData(r, opts.PageMeta).WithFilters(filters)
	b = WithTable(b, opts.BasePath, view)
	b.With("ReturnURL", listURL(opts.BasePath, q))
	if err != nil {
		h.logger().WarnContext(r.Context(), "list fetch failed",
			"resource", opts.Resource,
			"error", err,
		)
		msg := opts.ErrorMessage
		if msg == "" {
			msg = msgLoadFailed
		}
		if stale {
			msg += "؛ " + msgShowingCached
		}
		b.WithError(msg)
	}
	if opts.EnrichData != nil {
		opts.EnrichData(r.Context(), b, view)
	}

	h.renderPage(w, r, b.Build())
}

// lastKnown returns the collection a failed refetch left in the cache.
func lastKnown[T any](c *querycache.Cache, key querycache.Key) ([]T, bool) {
	e, _ := c.Peek(key)
	items, ok := e.Data.([]T)
	return items, ok
}

// cachedAll returns the whole, unfiltered collection from the workspace cache,
// fetching it when nothing fresh is cached. Select options and record lookups
// share this entry with the unfiltered list page.
func cachedAll[T any](ctx context.Context, ws *service.Workspace, resource string, fetch ListFetcher[T]) ([]T, error) {
	return querycache.Get(ctx, ws.Cache, querycache.NewKey(resource, nil), func(ctx context.Context) ([]T, error) {
		return fetch(ctx, ws, nil)
	})
}

// findRecord locates key in the cached, unfiltered collection. The API has no
// single-record endpoints.
func findRecord[T interface{ Key() string }](
	ctx context.Context,
	ws *service.Workspace,
	resource string,
	fetch ListFetcher[T],
	key string,
) (T, bool, error) {
	var zero T
	items, err := cachedAll(ctx, ws, resource, fetch)
	if err != nil {
		return zero, false, err
	}
	for _, it := range items {
		if it.Key() == key {
			return it, true, nil
		}
	}
	return zero, false, nil
}
