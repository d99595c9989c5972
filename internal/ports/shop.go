package ports

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/target/shop-admin/internal/domain/model"
)

// Filters are optional list query parameters (status, productId, search...).
// Empty values are dropped before they reach the wire or a cache key.
type Filters map[string]string

// Values encodes non-empty filters as URL query values.
func (f Filters) Values() url.Values {
	v := url.Values{}
	for k, val := range f {
		if val = strings.TrimSpace(val); val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// Canonical returns the non-empty filters as a stable "k=v&k2=v2" string.
func (f Filters) Canonical() string {
	keys := make([]string, 0, len(f))
	for k, val := range f {
		if strings.TrimSpace(val) != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(strings.TrimSpace(f[k])))
	}
	return strings.Join(parts, "&")
}

// Upload is a file chosen in a dialog, staged on local disk until submit.
type Upload struct {
	Field       string
	Filename    string
	ContentType string
	Path        string
}

// Collection is the list/create/update/remove surface every resource exposes.
type Collection[T any] interface {
	List(ctx context.Context, filters Filters) ([]T, error)
	Create(ctx context.Context, payload any, files ...Upload) (T, error)
	Update(ctx context.Context, id string, payload any, files ...Upload) (T, error)
	Remove(ctx context.Context, id string) error
}

// OrderAPI adds status transitions and restocking deletes to orders.
type OrderAPI interface {
	Collection[model.Order]
	UpdateStatus(ctx context.Context, id, status string) error
	Statuses(ctx context.Context) ([]model.OrderStatus, error)
	RemoveWithRestock(ctx context.Context, id string, restock bool) error
}

// InventoryAPI lists stock levels and applies adjustments.
type InventoryAPI interface {
	List(ctx context.Context, filters Filters) ([]model.InventoryItem, error)
	Adjust(ctx context.Context, adj model.InventoryAdjustment) error
}

// UserAPI adds inbox notifications to user accounts.
type UserAPI interface {
	Collection[model.User]
	SendNotification(ctx context.Context, id string, n model.Notification) error
}

// ContactAPI lists, triages and removes contact-form messages.
type ContactAPI interface {
	List(ctx context.Context, filters Filters) ([]model.ContactMessage, error)
	UpdateStatus(ctx context.Context, id string, upd model.ContactStatusUpdate) error
	Remove(ctx context.Context, id string) error
}

// ShopAPI groups every resource client the admin pages talk to.
type ShopAPI struct {
	Products   Collection[model.Product]
	Categories Collection[model.Category]
	Brands     Collection[model.Brand]
	Deals      Collection[model.Deal]
	Blogs      Collection[model.Blog]
	Ads        Collection[model.Ad]
	Banners    Collection[model.Banner]
	Reviews    Collection[model.Review]
	Orders     OrderAPI
	Inventory  InventoryAPI
	Users      UserAPI
	Contact    ContactAPI
}
