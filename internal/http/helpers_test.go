package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/target/shop-admin/internal/apiclient"
	"github.com/target/shop-admin/internal/domain/model"
	authmocks "github.com/target/shop-admin/internal/mocks/auth"
	"github.com/target/shop-admin/internal/ports"
	"github.com/target/shop-admin/internal/querycache"
	"github.com/target/shop-admin/internal/service"
	"github.com/target/shop-admin/internal/table"
)

const (
	testSID  = "sid-test"
	testCSRF = "csrf-test-token"
)

// fakeCollection is an in-memory Collection that records every call.
type fakeCollection[T any] struct {
	mu sync.Mutex

	Items     []T
	ListErr   error
	CreateErr error
	UpdateErr error
	RemoveErr error

	Lists   int
	Created []any
	Updated map[string]any
	Removed []string
	Uploads []ports.Upload
	Filters []ports.Filters
}

func newFakeCollection[T any](items ...T) *fakeCollection[T] {
	return &fakeCollection[T]{Items: items, Updated: map[string]any{}}
}

func (f *fakeCollection[T]) List(_ context.Context, filters ports.Filters) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Lists++
	f.Filters = append(f.Filters, filters)
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]T(nil), f.Items...), nil
}

func (f *fakeCollection[T]) Create(_ context.Context, payload any, files ...ports.Upload) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero T
	if f.CreateErr != nil {
		return zero, f.CreateErr
	}
	f.Created = append(f.Created, payload)
	f.Uploads = append(f.Uploads, files...)
	return zero, nil
}

func (f *fakeCollection[T]) Update(_ context.Context, id string, payload any, files ...ports.Upload) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero T
	if f.UpdateErr != nil {
		return zero, f.UpdateErr
	}
	f.Updated[id] = payload
	f.Uploads = append(f.Uploads, files...)
	return zero, nil
}

func (f *fakeCollection[T]) Remove(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	f.Removed = append(f.Removed, id)
	return nil
}

func (f *fakeCollection[T]) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Lists
}

type fakeOrders struct {
	*fakeCollection[model.Order]

	StatusList      []model.OrderStatus
	StatusErr       error
	StatusUpdates   map[string]string
	UpdateStatusErr error
	Restocked       map[string]bool
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id, status string) error {
	if f.UpdateStatusErr != nil {
		return f.UpdateStatusErr
	}
	f.StatusUpdates[id] = status
	return nil
}

func (f *fakeOrders) Statuses(context.Context) ([]model.OrderStatus, error) {
	return f.StatusList, f.StatusErr
}

func (f *fakeOrders) RemoveWithRestock(_ context.Context, id string, restock bool) error {
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	f.Restocked[id] = restock
	return nil
}

type fakeInventory struct {
	Items     []model.InventoryItem
	AdjustErr error
	Adjusted  []model.InventoryAdjustment
}

func (f *fakeInventory) List(context.Context, ports.Filters) ([]model.InventoryItem, error) {
	return f.Items, nil
}

func (f *fakeInventory) Adjust(_ context.Context, adj model.InventoryAdjustment) error {
	if f.AdjustErr != nil {
		return f.AdjustErr
	}
	f.Adjusted = append(f.Adjusted, adj)
	return nil
}

type fakeUsers struct {
	*fakeCollection[model.User]

	Sent    map[string]model.Notification
	SendErr error
}

func (f *fakeUsers) SendNotification(_ context.Context, id string, n model.Notification) error {
	if f.SendErr != nil {
		return f.SendErr
	}
	f.Sent[id] = n
	return nil
}

type fakeContact struct {
	Items     []model.ContactMessage
	Updates   map[string]model.ContactStatusUpdate
	UpdateErr error
	Removed   []string
}

func (f *fakeContact) List(context.Context, ports.Filters) ([]model.ContactMessage, error) {
	return f.Items, nil
}

func (f *fakeContact) UpdateStatus(_ context.Context, id string, upd model.ContactStatusUpdate) error {
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	f.Updates[id] = upd
	return nil
}

func (f *fakeContact) Remove(_ context.Context, id string) error {
	f.Removed = append(f.Removed, id)
	return nil
}

// fakeShop bundles one fake per resource.
type fakeShop struct {
	Products   *fakeCollection[model.Product]
	Categories *fakeCollection[model.Category]
	Brands     *fakeCollection[model.Brand]
	Deals      *fakeCollection[model.Deal]
	Blogs      *fakeCollection[model.Blog]
	Ads        *fakeCollection[model.Ad]
	Banners    *fakeCollection[model.Banner]
	Reviews    *fakeCollection[model.Review]
	Orders     *fakeOrders
	Inventory  *fakeInventory
	Users      *fakeUsers
	Contact    *fakeContact

	// InventoryAPI replaces Inventory when set, e.g. with a gomock.
	InventoryAPI ports.InventoryAPI
}

func newFakeShop() *fakeShop {
	return &fakeShop{
		Products:   newFakeCollection[model.Product](),
		Categories: newFakeCollection[model.Category](),
		Brands:     newFakeCollection[model.Brand](),
		Deals:      newFakeCollection[model.Deal](),
		Blogs:      newFakeCollection[model.Blog](),
		Ads:        newFakeCollection[model.Ad](),
		Banners:    newFakeCollection[model.Banner](),
		Reviews:    newFakeCollection[model.Review](),
		Orders: &fakeOrders{
			fakeCollection: newFakeCollection[model.Order](),
			StatusUpdates:  map[string]string{},
			Restocked:      map[string]bool{},
		},
		Inventory: &fakeInventory{},
		Users:     &fakeUsers{fakeCollection: newFakeCollection[model.User](), Sent: map[string]model.Notification{}},
		Contact:   &fakeContact{Updates: map[string]model.ContactStatusUpdate{}},
	}
}

func (s *fakeShop) api() ports.ShopAPI {
	var inventory ports.InventoryAPI = s.Inventory
	if s.InventoryAPI != nil {
		inventory = s.InventoryAPI
	}
	return ports.ShopAPI{
		Products:   s.Products,
		Categories: s.Categories,
		Brands:     s.Brands,
		Deals:      s.Deals,
		Blogs:      s.Blogs,
		Ads:        s.Ads,
		Banners:    s.Banners,
		Reviews:    s.Reviews,
		Orders:     s.Orders,
		Inventory:  inventory,
		Users:      s.Users,
		Contact:    s.Contact,
	}
}

// fakeWorkspaces builds real session holders and caches around a fake shop.
type fakeWorkspaces struct {
	mu      sync.Mutex
	shop    *fakeShop
	auth    *authmocks.FakeAuthAPI
	store   *authmocks.MemorySessionStore
	items   map[string]*service.Workspace
	forgets []string
}

func newFakeWorkspaces(shop *fakeShop) *fakeWorkspaces {
	return &fakeWorkspaces{
		shop:  shop,
		auth:  authmocks.NewFakeAuthAPI(),
		store: authmocks.NewMemorySessionStore(),
		items: map[string]*service.Workspace{},
	}
}

func (p *fakeWorkspaces) Get(sid string) *service.Workspace {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ws, ok := p.items[sid]; ok {
		return ws
	}
	cache := querycache.New(querycache.Options{})
	ws := &service.Workspace{
		Session: service.NewSessionHolder(service.SessionHolderOptions{
			SessionID: sid,
			Store:     p.store,
			Auth:      p.auth,
			Logger:    discardLogger(),
		}),
		Cache:   cache,
		Mutator: querycache.NewMutator(cache, nil),
		Shop:    p.shop.api(),
	}
	p.items[sid] = ws
	return ws
}

func (p *fakeWorkspaces) Forget(sid string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.forgets = append(p.forgets, sid)
	delete(p.items, sid)
}

// signIn stores a token the fake auth API accepts for sid.
func (p *fakeWorkspaces) signIn(sid string) {
	p.store.Put(sid, ports.StoredSession{Token: p.auth.Token})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv is a router wired to a fake shop with one signed-in operator.
type testEnv struct {
	shop       *fakeShop
	workspaces *fakeWorkspaces
	handler    http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	shop := newFakeShop()
	wss := newFakeWorkspaces(shop)
	wss.signIn(testSID)
	h, err := NewRouter(RouterServices{
		Workspaces: wss,
		Sorter:     table.NewSorter("fa"),
		Logger:     discardLogger(),
		Now:        func() time.Time { return time.Date(2024, 12, 5, 10, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return &testEnv{shop: shop, workspaces: wss, handler: h}
}

// request describes one browser request against testEnv.
type request struct {
	Method string
	Path   string
	Form   url.Values
	HTMX   bool
	// Anonymous skips the session cookie.
	Anonymous bool
	Cookies   []*http.Cookie
}

func (e *testEnv) do(t *testing.T, req request) *httptest.ResponseRecorder {
	t.Helper()
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if req.Form != nil {
		body = strings.NewReader(req.Form.Encode())
	}
	r := httptest.NewRequest(method, req.Path, body)
	if req.Form != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRF})
	r.Header.Set(DefaultCSRFHeaderName, testCSRF)
	if !req.Anonymous {
		r.AddCookie(&http.Cookie{Name: DefaultSessionCookieName, Value: testSID})
	}
	for _, c := range req.Cookies {
		r.AddCookie(c)
	}
	if req.HTMX {
		r.Header.Set("Hx-Request", "true")
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, r)
	return w
}

// flashFrom returns the flash cookie set on w, if any.
func flashFrom(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == flashCookieName && c.MaxAge > 0 {
			return c
		}
	}
	return nil
}

func unauthorizedErr() error {
	return &apiclient.APIError{Method: http.MethodGet, Path: "/x", Status: http.StatusUnauthorized, Message: "توکن نامعتبر است"}
}

func upstreamErr(msg string) error {
	return &apiclient.APIError{Method: http.MethodPost, Path: "/x", Status: http.StatusInternalServerError, Message: msg}
}

func ref(id string) model.Ref { return model.Ref{ID: id} }
