package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/target/shop-admin/internal/domain/auth"
	"github.com/target/shop-admin/internal/domain/model"
	"github.com/target/shop-admin/internal/ports"
)

// Resource names double as cache keys and list envelope keys.
const (
	ResourceProducts   = "products"
	ResourceCategories = "categories"
	ResourceBrands     = "brands"
	ResourceDeals      = "deals"
	ResourceOrders     = "orders"
	ResourceInventory  = "inventory"
	ResourceUsers      = "users"
	ResourceBlogs      = "blogs"
	ResourceAds        = "ads"
	ResourceBanners    = "banners"
	ResourceReviews    = "reviews"
	ResourceContact    = "contactMessages"
	ResourceOrderState = "order-statuses"
)

// NewShopAPI wires every resource client on top of c.
func NewShopAPI(c *Client) ports.ShopAPI {
	return ports.ShopAPI{
		Products:   NewResource[model.Product](c, ResourceProducts, "/products"),
		Categories: NewResource[model.Category](c, ResourceCategories, "/categories"),
		Brands:     NewResource[model.Brand](c, ResourceBrands, "/brands"),
		Deals:      NewResource[model.Deal](c, ResourceDeals, "/deals"),
		Blogs:      NewResource[model.Blog](c, ResourceBlogs, "/blogs"),
		Ads:        NewResource[model.Ad](c, ResourceAds, "/ads"),
		Banners:    NewResource[model.Banner](c, ResourceBanners, "/banners"),
		Reviews:    NewResource[model.Review](c, ResourceReviews, "/reviews"),
		Orders:     &Orders{Resource: NewResource[model.Order](c, ResourceOrders, "/orders")},
		Inventory:  &Inventory{client: c},
		Users:      &Users{Resource: NewResource[model.User](c, ResourceUsers, "/users")},
		Contact:    &Contact{res: NewResource[model.ContactMessage](c, ResourceContact, "/contact-messages")},
	}
}

// Orders adds status transitions and restocking deletes.
type Orders struct {
	*Resource[model.Order]
}

var _ ports.OrderAPI = (*Orders)(nil)

// UpdateStatus moves an order to status.
func (o *Orders) UpdateStatus(ctx context.Context, id, status string) error {
	p, err := o.itemPath(id)
	if err != nil {
		return err
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return errors.New("orders: status is required")
	}
	in := request{method: http.MethodPatch, path: p + "/status", body: map[string]string{"status": status}}
	if _, err := o.client.do(ctx, in); err != nil {
		return fmt.Errorf("update order %s status: %w", id, err)
	}
	return nil
}

// Statuses returns the order status enumeration.
func (o *Orders) Statuses(ctx context.Context) ([]model.OrderStatus, error) {
	raw, err := o.client.do(ctx, request{method: http.MethodGet, path: o.path + "/statuses"})
	if err != nil {
		return nil, fmt.Errorf("list order statuses: %w", err)
	}
	return decodeList[model.OrderStatus](raw, "statuses")
}

// RemoveWithRestock deletes an order, optionally returning its items to stock.
func (o *Orders) RemoveWithRestock(ctx context.Context, id string, restock bool) error {
	var q url.Values
	if restock {
		q = url.Values{"restock": {"true"}}
	}
	return o.remove(ctx, id, q)
}

// Inventory lists stock levels and applies adjustments.
type Inventory struct {
	client *Client
}

var _ ports.InventoryAPI = (*Inventory)(nil)

// List fetches stock rows.
func (i *Inventory) List(ctx context.Context, filters ports.Filters) ([]model.InventoryItem, error) {
	raw, err := i.client.do(ctx, request{method: http.MethodGet, path: "/inventory", query: filters.Values()})
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return decodeList[model.InventoryItem](raw, ResourceInventory)
}

// Adjust applies a set/increase/decrease to a product's stock.
func (i *Inventory) Adjust(ctx context.Context, adj model.InventoryAdjustment) error {
	if strings.TrimSpace(adj.ProductID) == "" {
		return errors.New("inventory: product id is required")
	}
	if adj.Operation == "" {
		adj.Operation = model.InventorySet
	}
	if _, err := i.client.do(ctx, request{method: http.MethodPost, path: "/inventory/adjust", body: adj}); err != nil {
		return fmt.Errorf("adjust inventory %s: %w", adj.ProductID, err)
	}
	return nil
}

// Users adds inbox notifications.
type Users struct {
	*Resource[model.User]
}

var _ ports.UserAPI = (*Users)(nil)

// SendNotification pushes n to the inbox of user id.
func (u *Users) SendNotification(ctx context.Context, id string, n model.Notification) error {
	p, err := u.itemPath(id)
	if err != nil {
		return err
	}
	if _, err := u.client.do(ctx, request{method: http.MethodPost, path: p + "/notifications", body: n}); err != nil {
		return fmt.Errorf("notify user %s: %w", id, err)
	}
	return nil
}

// Contact lists, triages and removes contact-form messages.
type Contact struct {
	res *Resource[model.ContactMessage]
}

var _ ports.ContactAPI = (*Contact)(nil)

// List fetches messages filtered by status and search text.
func (c *Contact) List(ctx context.Context, filters ports.Filters) ([]model.ContactMessage, error) {
	return c.res.List(ctx, filters)
}

// UpdateStatus moves a message to a new status, attaching the reply when replied.
func (c *Contact) UpdateStatus(ctx context.Context, id string, upd model.ContactStatusUpdate) error {
	p, err := c.res.itemPath(id)
	if err != nil {
		return err
	}
	if _, err := c.res.client.do(ctx, request{method: http.MethodPatch, path: p + "/status", body: upd}); err != nil {
		return fmt.Errorf("update contact message %s status: %w", id, err)
	}
	return nil
}

// Remove deletes a message.
func (c *Contact) Remove(ctx context.Context, id string) error {
	return c.res.Remove(ctx, id)
}

// Auth implements ports.AuthAPI against /auth.
type Auth struct {
	client *Client
}

var _ ports.AuthAPI = (*Auth)(nil)

// NewAuth builds the auth client. c should carry no token source.
func NewAuth(c *Client) *Auth {
	return &Auth{client: c}
}

// Login exchanges credentials for a token and profile.
func (a *Auth) Login(ctx context.Context, email, password string) (string, domainauth.User, error) {
	body := map[string]string{"email": strings.TrimSpace(email), "password": password}
	raw, err := a.client.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: body})
	if err != nil {
		return "", domainauth.User{}, fmt.Errorf("login: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", domainauth.User{}, fmt.Errorf("decode login response: %w", err)
	}
	token := searchString(doc, "token", "accessToken", "data.token", "data.accessToken")
	if token == "" {
		return "", domainauth.User{}, errors.New("login: response carried no token")
	}
	user, err := decodeUser(doc, "user", "data.user")
	if err != nil {
		return "", domainauth.User{}, err
	}
	return token, user, nil
}

// Me returns the profile that owns token.
func (a *Auth) Me(ctx context.Context, token string) (domainauth.User, error) {
	raw, err := a.client.WithToken(token).do(ctx, request{method: http.MethodGet, path: "/auth/me"})
	if err != nil {
		return domainauth.User{}, fmt.Errorf("who am i: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domainauth.User{}, fmt.Errorf("decode profile: %w", err)
	}
	return decodeUser(doc, "user", "data.user", "data", "@")
}

func decodeUser(doc any, exprs ...string) (domainauth.User, error) {
	var obj map[string]any
	for _, expr := range exprs {
		if obj = searchObject(doc, expr); obj != nil {
			break
		}
	}
	if obj == nil {
		return domainauth.User{}, nil
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return domainauth.User{}, fmt.Errorf("re-encode profile: %w", err)
	}
	var u domainauth.User
	if err := json.Unmarshal(b, &u); err != nil {
		return domainauth.User{}, fmt.Errorf("decode profile: %w", err)
	}
	return u, nil
}
