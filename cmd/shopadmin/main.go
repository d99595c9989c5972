package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/target/shop-admin/config"
	"github.com/target/shop-admin/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		slog.ErrorContext(ctx, "load config failed", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
	logger := bootstrap.NewLogger(os.Stdout, cfg.Observability.Logging)
	if err := run(ctx, logger, &cfg); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) error {
	logStartupInfo(ctx, logger, cfg)

	redisClient, err := bootstrap.ConnectRedis(ctx, bootstrap.RedisOptions{
		Config: cfg.Redis,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer closeRedis(ctx, redisClient, logger)

	m, err := bootstrap.BuildMetrics(cfg.Observability.Metrics, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close metrics failed", "error", cerr)
		}
	}()

	app, err := bootstrap.NewApp(bootstrap.AppDeps{
		Config:  cfg,
		Redis:   redisClient,
		Metrics: m,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.Run(ctx, bootstrap.RunOptions{
		App:    app,
		HTTP:   cfg.HTTP,
		Logger: logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting shop admin",
		"addr", cfg.HTTP.Addr,
		"api_base_url", cfg.API.BaseURL,
		"locale", cfg.Locale.Language,
		"dev", cfg.IsDev,
		"metrics", cfg.Observability.Metrics.IsEnabled())
}

func closeRedis(ctx context.Context, client redis.UniversalClient, logger *slog.Logger) {
	if cerr := client.Close(); cerr != nil {
		logger.ErrorContext(ctx, "close redis failed", "error", cerr)
	}
}
