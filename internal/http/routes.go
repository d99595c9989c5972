package httpx

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	shopadmin "github.com/target/shop-admin"
	"github.com/target/shop-admin/internal/observability/metrics"
	"github.com/target/shop-admin/internal/table"
	"github.com/target/shop-admin/internal/util"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Workspaces WorkspaceProvider
	Cookie     SessionCookie
	CSRF       CSRFConfig
	// Compression is skipped when nil.
	Compression *CompressionConfig
	// Format renders prices, counts and Jalali dates; Sorter collates table
	// columns. Both follow the operator locale.
	Format *util.Formatter
	Sorter table.Sorter
	// AssetBaseURL resolves relative upload paths returned by the shop API.
	AssetBaseURL string
	Metrics      metrics.Sink
	// MetricsHandler serves GET /metrics when set.
	MetricsHandler http.Handler
	// IsDev loads templates and static files from disk on every start.
	IsDev  bool
	Logger *slog.Logger
	Now    func() time.Time
}

// NewRouter creates the browser-facing router with its middleware chain:
// recover, request logging, compression and CSRF around every route, plus
// RequireAuthBrowser around every page except login.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if services.Workspaces == nil {
		return nil, errors.New("router: workspaces are required")
	}

	tr, err := newRenderer(services, logger)
	if err != nil {
		return nil, err
	}

	ui := &UIHandlers{
		T:          tr,
		Workspaces: services.Workspaces,
		Sorter:     services.Sorter,
		Logger:     logger,
		Now:        services.Now,
	}
	auth := &AuthHandlers{
		Workspaces: services.Workspaces,
		T:          tr,
		Cookie:     services.Cookie,
		Logger:     logger,
	}

	mux := http.NewServeMux()
	health := healthHandler(services.Workspaces)
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)
	if services.MetricsHandler != nil {
		mux.Handle("GET /metrics", services.MetricsHandler)
	}
	mux.Handle("GET /static/", staticHandler(services.IsDev, logger))
	registerAuthRoutes(mux, auth)
	registerUIRoutes(mux, ui, RequireAuthBrowser(services.Workspaces, services.Cookie, logger))

	var handler http.Handler = &notFoundHandler{mux: mux}
	handler = CSRFProtection(services.CSRF)(handler)
	if services.Compression != nil {
		cfg := *services.Compression
		if cfg.Logger == nil {
			cfg.Logger = logger
		}
		handler = Compression(cfg)(handler)
	}
	handler = Logging(logger, services.Metrics)(handler)
	return Recover(logger)(handler), nil
}

// newRenderer parses the page templates: from disk in dev mode, from the
// embedded copy otherwise.
func newRenderer(services RouterServices, logger *slog.Logger) (*TemplateRenderer, error) {
	var templateFS fs.FS
	if services.IsDev {
		templateFS = os.DirFS(TemplatePathFromRoot)
	} else {
		sub, err := fs.Sub(shopadmin.TemplateFS, TemplatePathFromRoot)
		if err != nil {
			return nil, err
		}
		templateFS = sub
	}
	return NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS:   templateFS,
		Format:       services.Format,
		AssetBaseURL: services.AssetBaseURL,
		Logger:       logger,
	})
}

// staticHandler serves /static/*. Dev mode reads from disk so edits show on reload.
func staticHandler(isDev bool, logger *slog.Logger) http.Handler {
	if isDev {
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir(StaticPathFromRoot))), false)
	}
	sub, err := fs.Sub(shopadmin.StaticFS, StaticPathFromRoot)
	if err != nil {
		logger.Error("static sub-filesystem failed; serving from disk", "error", err)
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir(StaticPathFromRoot))), false)
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(sub))), true)
}

// staticWithCacheHeaders lets browsers keep embedded assets for an hour; they
// only change with a new build. Disk-served assets are never cached.
func staticWithCacheHeaders(handler http.Handler, cacheable bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cacheable {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}
		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler sends page requests for unknown paths to the dashboard.
// Other methods and missing static files keep the mux's own 404/405.
type notFoundHandler struct {
	mux *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := h.mux.Handler(r); pattern == "" && r.Method == http.MethodGet {
		if IsHTMX(r) {
			HTMX(w).Redirect("/")
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.mux.ServeHTTP(w, r)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /logout", h.Logout)
}

// registerUIRoutes wires every authenticated page.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, auth func(http.Handler) http.Handler) {
	wrap := func(fn http.HandlerFunc) http.Handler { return auth(fn) }

	mux.Handle("GET /{$}", wrap(h.Index))

	productsResource(h.logger()).Register(mux, h, auth)
	categoriesResource().Register(mux, h, auth)
	brandsResource().Register(mux, h, auth)
	dealsResource(h.logger()).Register(mux, h, auth)
	usersResource().Register(mux, h, auth)
	blogsResource().Register(mux, h, auth)
	adsResource().Register(mux, h, auth)
	bannersResource().Register(mux, h, auth)
	reviewsResource(h.logger()).Register(mux, h, auth)

	contact := contactResource()
	contact.Register(mux, h, auth)
	mux.Handle("GET /contact/{id}", wrap(h.ContactView(contact)))

	mux.Handle("POST /blogs/editor", wrap(h.BlogEditor))
	mux.Handle("GET /users/{id}/notify", wrap(h.UserNotifyForm))
	mux.Handle("POST /users/{id}/notify", wrap(h.UserNotify))

	mux.Handle("GET /inventory", wrap(h.Inventory))
	mux.Handle("GET /inventory/{id}/adjust", wrap(h.InventoryAdjustForm))
	mux.Handle("POST /inventory/adjust", wrap(h.InventoryAdjust))

	mux.Handle("GET /orders", wrap(h.Orders))
	mux.Handle("GET /orders/{id}", wrap(h.OrderDetail))
	mux.Handle("POST /orders/{id}/status", wrap(h.OrderStatus))
	mux.Handle("GET /orders/{id}/delete", wrap(h.OrderConfirmDelete))
	mux.Handle("POST /orders/{id}/delete", wrap(h.OrderDelete))
}
