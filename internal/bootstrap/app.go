package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/shop-admin/config"
	redisadapter "github.com/target/shop-admin/internal/adapters/redis"
	"github.com/target/shop-admin/internal/apiclient"
	httpx "github.com/target/shop-admin/internal/http"
	"github.com/target/shop-admin/internal/ports"
	"github.com/target/shop-admin/internal/service"
	"github.com/target/shop-admin/internal/table"
	"github.com/target/shop-admin/internal/util"
)

// sessionKeyPrefix namespaces operator session entries in Redis.
const sessionKeyPrefix = "session:"

// AppDeps contains the infrastructure the admin app is assembled from.
type AppDeps struct {
	Config *config.AppConfig
	Redis  redis.UniversalClient
	// Store overrides the Redis session store, e.g. in tests.
	Store   ports.SessionStore
	Metrics *Metrics
	Logger  *slog.Logger
	Now     func() time.Time
}

// App is the wired admin UI: per-session workspaces and the router serving them.
type App struct {
	Workspaces *service.Workspaces
	Handler    http.Handler
}

// NewApp builds the API client, the workspace registry and the HTTP router.
func NewApp(deps AppDeps) (*App, error) {
	if deps.Config == nil {
		return nil, errors.New("app config is required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := deps.Metrics
	if m == nil {
		m = &Metrics{}
	}

	store := deps.Store
	if store == nil {
		if deps.Redis == nil {
			return nil, errors.New("redis client or session store is required")
		}
		store = redisadapter.NewSessionStoreWithPrefix(deps.Redis, sessionKeyPrefix)
	}

	client, err := apiclient.New(apiclient.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}

	workspaces, err := service.NewWorkspaces(service.WorkspacesOptions{
		Client:      client,
		Auth:        apiclient.NewAuth(client),
		Store:       store,
		SessionTTL:  cfg.Session.TTL,
		CacheMaxAge: cfg.Cache.MaxAge,
		Metrics:     m.Sink,
		Logger:      logger,
		Now:         deps.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("workspaces: %w", err)
	}

	handler, err := httpx.NewRouter(routerServices(cfg, workspaces, m, logger, deps.Now))
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	return &App{Workspaces: workspaces, Handler: handler}, nil
}

func routerServices(
	cfg *config.AppConfig,
	workspaces *service.Workspaces,
	m *Metrics,
	logger *slog.Logger,
	now func() time.Time,
) httpx.RouterServices {
	services := httpx.RouterServices{
		Workspaces: workspaces,
		Cookie: httpx.SessionCookie{
			Name:   cfg.Session.CookieName,
			Domain: cfg.HTTP.CookieDomain,
			Secure: cfg.HTTP.CookieSecure,
			TTL:    cfg.Session.TTL,
		},
		CSRF: httpx.CSRFConfig{
			CookieDomain: cfg.HTTP.CookieDomain,
			Secure:       cfg.HTTP.CookieSecure,
		},
		Format:         util.NewFormatter(cfg.Locale.Language, nil),
		Sorter:         table.NewSorter(cfg.Locale.Language),
		AssetBaseURL:   cfg.API.AssetBaseURL,
		Metrics:        m.Sink,
		MetricsHandler: m.Handler,
		IsDev:          cfg.IsDev,
		Logger:         logger,
		Now:            now,
	}

	// Compression sits inside logging so the logged size is the compressed one.
	if cfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", cfg.HTTP.CompressionLevel)
		services.Compression = &httpx.CompressionConfig{
			Level:   cfg.HTTP.CompressionLevel,
			MinSize: cfg.HTTP.CompressionMinSize,
		}
	}
	return services
}
