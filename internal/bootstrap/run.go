package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/target/shop-admin/config"
)

// sweepInterval is how often idle workspaces are evicted from memory.
const sweepInterval = time.Minute

// RunOptions contains dependencies for Run.
type RunOptions struct {
	App    *App
	HTTP   config.HTTPConfig
	Logger *slog.Logger
	// Signals overrides the OS signal channel, e.g. in tests.
	Signals <-chan os.Signal
}

// Run serves the app until SIGINT/SIGTERM or a server error, then shuts down
// gracefully and stops the workspace sweeper.
func Run(ctx context.Context, opts RunOptions) error {
	if opts.App == nil {
		return errors.New("app is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	serviceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		opts.App.Workspaces.RunSweeper(serviceCtx, sweepInterval)
	}()

	errCh := make(chan error, 1)
	server := startServer(logger, opts.App.Handler, opts.HTTP, errCh)

	quit := opts.Signals
	if quit == nil {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		quit = sigCh
	}

	var runErr error
	select {
	case <-quit:
		logger.Info("shutting down...")
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down...")
	case runErr = <-errCh:
		logger.Error("service error", "error", runErr)
	}
	cancel()

	// The parent context may already be done; shutdown gets its own deadline.
	if err := ShutdownHTTPServer(context.WithoutCancel(ctx), server, logger); err != nil {
		logger.Error("graceful stop failed", "error", err)
		runErr = errors.Join(runErr, err)
	}
	waitForService(sweeperDone, "workspace sweeper", logger)
	return runErr
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
