package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/target/shop-admin/internal/forms"
	httpx "github.com/target/shop-admin/internal/http"
	"github.com/target/shop-admin/internal/querycache"
	"github.com/target/shop-admin/internal/service"
)

func runOrderStatus(c *commandContext, args []string) error {
	if len(args) != 2 {
		return usageError("order-status takes an order id and a status")
	}
	id, status := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
	if id == "" || status == "" {
		return usageError("order id and status must not be blank")
	}
	shop, _, err := c.shop()
	if err != nil {
		return err
	}
	if err := shop.Orders.UpdateStatus(c.Ctx, id, status); err != nil {
		return err
	}
	c.done("order %s is now %s", id, status)
	return nil
}

func runAdjust(c *commandContext, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return usageError("adjust takes a product id, a quantity and an optional operation")
	}
	d := &forms.InventoryAdjustDraft{ProductID: args[0], Quantity: args[1]}
	if len(args) == 3 {
		d.Operation = args[2]
	}
	if err := d.Validate().Err(); err != nil {
		return usageError("%v", err)
	}
	shop, _, err := c.shop()
	if err != nil {
		return err
	}
	adj := d.Normalize()
	if err := shop.Inventory.Adjust(c.Ctx, adj); err != nil {
		return err
	}
	c.done("%s %s by %s", adj.Operation, adj.ProductID, c.Format.Count(adj.Quantity))
	return nil
}

func runNotify(c *commandContext, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return usageError("notify takes a user id, a title, a message and an optional type")
	}
	d := &forms.NotificationDraft{UserID: args[0], Title: args[1], Message: args[2]}
	if len(args) == 4 {
		d.Type = args[3]
	}
	if err := d.Validate().Err(); err != nil {
		return usageError("%v", err)
	}
	shop, _, err := c.shop()
	if err != nil {
		return err
	}
	n := d.Normalize()
	if err := shop.Users.SendNotification(c.Ctx, strings.TrimSpace(d.UserID), n); err != nil {
		return err
	}
	c.done("sent %s notification to %s", n.Type, d.UserID)
	return nil
}

// runStats prints the dashboard. Counts that loaded are printed even when
// another fetch failed; the failure is reported afterwards.
func runStats(c *commandContext, args []string) error {
	if len(args) != 0 {
		return usageError("stats takes no arguments")
	}
	shop, h, err := c.shop()
	if err != nil {
		return err
	}
	cache := querycache.New(querycache.Options{Logger: c.Logger})
	ws := &service.Workspace{
		Session: h,
		Cache:   cache,
		Mutator: querycache.NewMutator(cache, nil),
		Shop:    shop,
	}
	dash, loadErr := httpx.LoadDashboard(c.Ctx, ws)

	tw := tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
	writef(tw, "%s\t%s\n", headerColor.Sprint("Metric"), headerColor.Sprint("Value"))
	writef(tw, "Products\t%s\n", c.Format.Count(float64(dash.Stats.Products)))
	writef(tw, "Orders\t%s\n", c.Format.Count(float64(dash.Stats.Orders)))
	writef(tw, "Users\t%s\n", c.Format.Count(float64(dash.Stats.Users)))
	writef(tw, "Blogs\t%s\n", c.Format.Count(float64(dash.Stats.Blogs)))
	writef(tw, "Revenue\t%s\n", c.Format.Price(dash.Stats.TotalRevenue))
	_ = tw.Flush()

	if len(dash.RecentOrders) > 0 {
		writef(c.Out, "\n%s\n", headerColor.Sprint("Recent orders"))
		for _, o := range dash.RecentOrders {
			writef(c.Out, "  %s  %s  %s  %s\n", o.Key(), o.Customer.Label(), c.Format.Price(o.Total.Float()), o.Status)
		}
	}

	if loadErr != nil {
		return fmt.Errorf("some counts could not be loaded: %w", loadErr)
	}
	return nil
}
