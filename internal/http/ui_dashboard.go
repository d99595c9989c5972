package httpx

import (
	"cmp"
	"context"
	"net/http"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/target/shop-admin/internal/domain/model"
	"github.com/target/shop-admin/internal/querycache"
	"github.com/target/shop-admin/internal/service"
)

const (
	msgDashboardFailed = "بارگذاری آمار داشبورد ناموفق بود"
	recentOrdersLimit  = 5
)

// DashboardData is the dashboard view: headline counts plus the latest orders.
type DashboardData struct {
	Stats        model.DashboardStats
	RecentOrders []model.Order
}

// LoadDashboard fetches products, orders, users and blogs in parallel through
// the workspace cache, so the list pages reuse the same entries. Counts that
// loaded are kept when another fetch fails; the first error is returned.
func LoadDashboard(ctx context.Context, ws *service.Workspace) (DashboardData, error) {
	var (
		products []model.Product
		orders   []model.Order
		users    []model.User
		blogs    []model.Blog
	)
	var g errgroup.Group
	g.Go(func() (err error) {
		products, err = querycache.Get(ctx, ws.Cache, querycache.NewKey(resProducts, nil), func(ctx context.Context) ([]model.Product, error) {
			return ws.Shop.Products.List(ctx, nil)
		})
		return err
	})
	g.Go(func() (err error) {
		orders, err = querycache.Get(ctx, ws.Cache, querycache.NewKey(resOrders, nil), func(ctx context.Context) ([]model.Order, error) {
			return ws.Shop.Orders.List(ctx, nil)
		})
		return err
	})
	g.Go(func() (err error) {
		users, err = querycache.Get(ctx, ws.Cache, querycache.NewKey(resUsers, nil), func(ctx context.Context) ([]model.User, error) {
			return ws.Shop.Users.List(ctx, nil)
		})
		return err
	})
	g.Go(func() (err error) {
		blogs, err = querycache.Get(ctx, ws.Cache, querycache.NewKey(resBlogs, nil), func(ctx context.Context) ([]model.Blog, error) {
			return ws.Shop.Blogs.List(ctx, nil)
		})
		return err
	})
	err := g.Wait()

	recent := slices.Clone(orders)
	slices.SortStableFunc(recent, func(a, b model.Order) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	if len(recent) > recentOrdersLimit {
		recent = recent[:recentOrdersLimit]
	}

	return DashboardData{
		Stats: model.DashboardStats{
			Products:     len(products),
			Orders:       len(orders),
			Users:        len(users),
			Blogs:        len(blogs),
			TotalRevenue: model.Revenue(orders),
		},
		RecentOrders: recent,
	}, err
}

// Index serves the dashboard.
// GET /.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	dash, err := LoadDashboard(r.Context(), ws)
	if err != nil && isAuthFailure(err) {
		h.handleAuthFailure(w, r, ws)
		return
	}

	b := NewTemplateData(r, PageMeta{Title: "داشبورد", CurrentPage: PageDashboard}).
		With("Stats", dash.Stats).
		With("RecentOrders", dash.RecentOrders)
	if err != nil {
		h.logger().WarnContext(r.Context(), "dashboard fetch failed", "error", err)
		b.WithError(msgDashboardFailed)
	}
	h.renderPage(w, r, b.Build())
}
