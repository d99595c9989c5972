package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"golang.org/x/oauth2"

	"github.com/target/shop-admin/config"
	"github.com/target/shop-admin/internal/adapters/filestore"
	"github.com/target/shop-admin/internal/apiclient"
	"github.com/target/shop-admin/internal/bootstrap"
	"github.com/target/shop-admin/internal/ports"
	"github.com/target/shop-admin/internal/table"
	"github.com/target/shop-admin/internal/ui"
	"github.com/target/shop-admin/internal/util"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	usage       string
	description string
	run         commandFn
}

// commandContext carries everything a command needs. Tests swap the API
// surfaces and writers.
type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig

	Out io.Writer
	Err io.Writer
	In  io.Reader

	Store   ports.SessionStore
	Auth    ports.AuthAPI
	NewShop func(ts oauth2.TokenSource) ports.ShopAPI

	Sorter table.Sorter
	Format *util.Formatter
	// Status holds the outcome line printed once the command returns.
	Status *ui.Notifier
}

// done records a successful outcome as the command's status line.
func (c *commandContext) done(format string, args ...any) {
	c.Status.Show(fmt.Sprintf(format, args...), ui.SeveritySuccess)
}

// execute runs cmd and prints the status it left. A failure replaces that
// status with the error, printed to Err.
func execute(c *commandContext, cmd command, args []string) error {
	if c.Status == nil {
		c.Status = ui.NewNotifier()
	}
	defer c.Status.Close()

	err := cmd.run(c, args)
	if err != nil {
		c.Status.Show(fmt.Sprintf("%s: %s", cmd.name, describeError(err)), ui.SeverityError)
		printStatus(c.Err, c.Status.Current())
		return err
	}
	printStatus(c.Out, c.Status.Current())
	return nil
}

// errUsage marks argument errors; main exits with status 2 for them.
var errUsage = errors.New("usage")

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		errorf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage(os.Stdout)
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmdCtx, err := newCommandContext(ctx, cfg, logger)
	if err != nil {
		logger.Error("init", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal initialization failure to shell scripts
	}

	if runErr := execute(cmdCtx, cmd, os.Args[2:]); runErr != nil {
		if errors.Is(runErr, errUsage) {
			writef(os.Stderr, "usage: shopadmin-cli %s %s\n", cmd.name, cmd.usage)
			os.Exit(2) //nolint:forbidigo // CLI must exit with status 2 on bad arguments
		}
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func newCommandContext(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*commandContext, error) {
	dir, err := filestore.DefaultDir()
	if err != nil {
		return nil, err
	}
	client, err := apiclient.New(apiclient.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}
	return &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		Out:    os.Stdout,
		Err:    os.Stderr,
		In:     os.Stdin,
		Store:  filestore.NewSessionStore(dir),
		Auth:   apiclient.NewAuth(client),
		NewShop: func(ts oauth2.TokenSource) ports.ShopAPI {
			return apiclient.NewShopAPI(client.WithTokenSource(ts))
		},
		Sorter: table.NewSorter(cfg.Locale.Language),
		Format: util.NewFormatter(cfg.Locale.Language, nil),
		Status: ui.NewNotifier(),
	}, nil
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			usage:       "<email>",
			description: "Sign in; the password is read from SHOPADMIN_PASSWORD or stdin",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Forget the stored session",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the signed-in operator",
			run:         runWhoami,
		},
		"list": {
			name:        "list",
			usage:       "<resource> [-sort col] [-desc] [-page n] [-size n|all] [-filter k=v]",
			description: "Print one page of a resource table",
			run:         runList,
		},
		"delete": {
			name:        "delete",
			usage:       "<resource> <id>",
			description: "Delete a record",
			run:         runDelete,
		},
		"order-status": {
			name:        "order-status",
			usage:       "<id> <status>",
			description: "Change an order's status",
			run:         runOrderStatus,
		},
		"adjust": {
			name:        "adjust",
			usage:       "<productId> <qty> [set|increase|decrease]",
			description: "Adjust a product's stock",
			run:         runAdjust,
		},
		"notify": {
			name:        "notify",
			usage:       "<userId> <title> <message> [custom|order|promo|system]",
			description: "Send an inbox notification to a user",
			run:         runNotify,
		},
		"stats": {
			name:        "stats",
			description: "Print dashboard counts and revenue",
			run:         runStats,
		},
	}
}

func printUsage(w io.Writer) {
	writef(w, "Usage: shopadmin-cli <command> [args]\n\n")
	writef(w, "Available commands:\n")
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		writef(w, "  %-14s %s\n", name, cmds[name].description)
	}
}
