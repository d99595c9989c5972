package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/target/shop-admin/internal/ports"
	"github.com/target/shop-admin/internal/service"
)

// cliSessionID keys the one operator session the CLI keeps on disk.
const cliSessionID = "cli"

// passwordEnv supplies the password non-interactively.
const passwordEnv = "SHOPADMIN_PASSWORD"

var errNotLoggedIn = errors.New("not logged in; run shopadmin-cli login <email>")

func (c *commandContext) holder() *service.SessionHolder {
	return service.NewSessionHolder(service.SessionHolderOptions{
		SessionID: cliSessionID,
		Store:     c.Store,
		Auth:      c.Auth,
		TTL:       c.Config.Session.TTL,
		Logger:    c.Logger,
	})
}

// shop hydrates the stored session and returns resource clients carrying its bearer.
func (c *commandContext) shop() (ports.ShopAPI, *service.SessionHolder, error) {
	h := c.holder()
	if err := h.Hydrate(c.Ctx); err != nil {
		return ports.ShopAPI{}, nil, err
	}
	if !h.IsAuthenticated() {
		return ports.ShopAPI{}, nil, errNotLoggedIn
	}
	return c.NewShop(h), h, nil
}

func (c *commandContext) readPassword() (string, error) {
	if pw := os.Getenv(passwordEnv); pw != "" {
		return pw, nil
	}
	writef(c.Err, "password: ")
	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(c *commandContext, args []string) error {
	if len(args) != 1 {
		return usageError("login takes exactly one email")
	}
	password, err := c.readPassword()
	if err != nil {
		return err
	}
	user, err := c.holder().Login(c.Ctx, args[0], password)
	if err != nil {
		return err
	}
	c.done("signed in as %s (%s)", user.Email, user.Role)
	return nil
}

func runLogout(c *commandContext, args []string) error {
	if len(args) != 0 {
		return usageError("logout takes no arguments")
	}
	if err := c.holder().Logout(c.Ctx); err != nil {
		return err
	}
	c.done("signed out")
	return nil
}

func runWhoami(c *commandContext, args []string) error {
	if len(args) != 0 {
		return usageError("whoami takes no arguments")
	}
	_, h, err := c.shop()
	if err != nil {
		return err
	}
	s := h.Session()
	if s.User == nil {
		writef(c.Out, "signed in (profile unavailable)\n")
		return nil
	}
	writef(c.Out, "%s <%s>\n", s.User.Name, s.User.Email)
	_, _ = dimColor.Fprintf(c.Out, "id %s · role %s\n", s.User.Key(), s.User.Role)
	return nil
}
