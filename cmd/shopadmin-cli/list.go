package main

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/target/shop-admin/internal/domain/model"
	"github.com/target/shop-admin/internal/ports"
	"github.com/target/shop-admin/internal/table"
	"github.com/target/shop-admin/internal/util"
)

// lister fetches one resource and prints a page of it.
type lister func(c *commandContext, shop ports.ShopAPI, q listQuery) error

type resourceDef struct {
	list   lister
	remove func(ctx context.Context, shop ports.ShopAPI, id string) error
}

type listQuery struct {
	Filters ports.Filters
	SortBy  string
	Desc    bool
	Page    table.PageState
}

// filterFlag collects repeated -filter k=v pairs.
type filterFlag ports.Filters

func (f filterFlag) String() string { return ports.Filters(f).Canonical() }

func (f filterFlag) Set(v string) error {
	k, val, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(k) == "" {
		return fmt.Errorf("filter %q is not key=value", v)
	}
	f[strings.TrimSpace(k)] = strings.TrimSpace(val)
	return nil
}

func parseListArgs(args []string) (string, listQuery, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", listQuery{}, usageError("list needs a resource (%s)", strings.Join(resourceNames(), ", "))
	}
	name := args[0]

	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	q := listQuery{Filters: ports.Filters{}, Page: table.DefaultPage()}
	var (
		page = 1
		size = strconv.Itoa(table.DefaultPageSize)
	)
	fs.StringVar(&q.SortBy, "sort", "", "column to sort by")
	fs.BoolVar(&q.Desc, "desc", false, "sort descending")
	fs.IntVar(&page, "page", 1, "1-based page number")
	fs.StringVar(&size, "size", size, "rows per page, or all")
	fs.Var(filterFlag(q.Filters), "filter", "server-side filter key=value (repeatable)")

	if err := fs.Parse(args[1:]); err != nil {
		return "", listQuery{}, usageError("%v", err)
	}
	if fs.NArg() > 0 {
		return "", listQuery{}, usageError("unexpected argument %q", fs.Arg(0))
	}

	q.Page.Page = max(page-1, 0)
	if strings.EqualFold(size, "all") {
		q.Page.Size = table.All
	} else {
		n, err := strconv.Atoi(size)
		if err != nil || n <= 0 {
			return "", listQuery{}, usageError("size must be a positive number or all")
		}
		q.Page.Size = n
	}
	if len(q.Filters) == 0 {
		q.Filters = nil
	}
	return name, q, nil
}

func runList(c *commandContext, args []string) error {
	name, q, err := parseListArgs(args)
	if err != nil {
		return err
	}
	def, ok := resources()[name]
	if !ok {
		return usageError("unknown resource %q (%s)", name, strings.Join(resourceNames(), ", "))
	}
	shop, _, err := c.shop()
	if err != nil {
		return err
	}
	return def.list(c, shop, q)
}

func runDelete(c *commandContext, args []string) error {
	if len(args) != 2 {
		return usageError("delete takes a resource and an id")
	}
	def, ok := resources()[args[0]]
	if !ok || def.remove == nil {
		return usageError("cannot delete from %q", args[0])
	}
	shop, _, err := c.shop()
	if err != nil {
		return err
	}
	if err := def.remove(c.Ctx, shop, args[1]); err != nil {
		return err
	}
	c.done("deleted %s %s", strings.TrimSuffix(args[0], "s"), args[1])
	return nil
}

// listTable builds a lister from a fetch func and the columns to print.
func listTable[T any](fetch func(shop ports.ShopAPI) func(context.Context, ports.Filters) ([]T, error), cols []table.Column[T]) lister {
	return func(c *commandContext, shop ports.ShopAPI, q listQuery) error {
		items, err := fetch(shop)(c.Ctx, q.Filters)
		if err != nil {
			return err
		}
		state := table.SortState{}
		if q.SortBy != "" {
			col, ok := table.Find(cols, q.SortBy)
			if !ok || !col.Sortable {
				return usageError("cannot sort by %q", q.SortBy)
			}
			state = table.SortState{OrderBy: q.SortBy, Order: table.Asc}
			if q.Desc {
				state.Order = table.Desc
			}
		}
		v := table.Build(items, cols, state, q.Page, table.Options{Sorter: c.Sorter})
		renderTable(c.Out, v, cols, func(row T, id string) string {
			col, _ := table.Find(cols, id)
			return formatCell(c.Format, col.ID, col.Accessor(row))
		})
		return nil
	}
}

// priceColumns render with currency formatting instead of a plain count.
var priceColumns = map[string]bool{"price": true, "total": true, "dealPrice": true}

func formatCell(f *util.Formatter, id string, v any) string {
	switch x := v.(type) {
	case nil:
		return "—"
	case bool:
		if x {
			return okColor.Sprint("✓")
		}
		return dimColor.Sprint("—")
	case model.Number:
		if priceColumns[id] {
			return f.Price(x.Float())
		}
		return f.Count(x.Float())
	case time.Time:
		if x.IsZero() {
			return "—"
		}
		return f.Date(x)
	case *time.Time:
		if x == nil {
			return "—"
		}
		return f.Date(*x)
	}
	if s := table.ToString(v); s != "" {
		return s
	}
	return "—"
}

func col[T any](id, label string, kind table.Kind, acc func(T) any) table.Column[T] {
	return table.Column[T]{ID: id, Label: label, Sortable: true, Kind: kind, Accessor: acc}
}

func resourceNames() []string {
	names := make([]string, 0, 12)
	for name := range resources() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func resources() map[string]resourceDef {
	return map[string]resourceDef{
		"products": {
			list: listTable(func(s ports.ShopAPI) func(context.Context, ports.Filters) ([]model.Product, error) {
				return s.Products.List
			}, []table.Column[model.Product]{
				col("id", "ID", table.String, func(p model.Product) any { return p.Key() }),
				col("name", "Name", table.String, func(p model.Product) any { return p.Name }),
				col("category", "Category", table.String, func(p model.Product) any { return p.Category.Label() }),
				col("price", "Price", table.Number, func(p model.Product) any { return p.Price }),
				col("stock", "Stock", table.Number, func(p model.Product) any { return p.Stock }),
				col("isAvailable", "Available", table.String, func(p model.Product) any { return p.IsAvailable }),
			}),
			remove: func(ctx context.Context, s ports.ShopAPI, id string) error { return s.Products.Remove(ctx, id) },
		},
		"categories": {
			list: listTable(func(s ports.ShopAPI) func(context.Context, ports.Filters) ([]model.Category, error) {
				return s.Categories.List
			}, []table.Column[model.Category]{
				col("id", "ID", table.String, func(c model.Category) any { return c.Key() }),
				col("name", "Name", table.String, func(c model.Category) any { return c.Name }),
				col("order", "Order", table.Number, func(c model.Category) any { return c.Order }),
				col("isActive", "Active", table.String, func(c model.Category) any { return c.IsActive }),
			}),
			remove: func(ctx context.Context, s ports.ShopAPI, id string) error { return s.Categories.Remove(ctx, id) },
		},
		"brands": {
			list: listTable(func(s ports.ShopAPI) func(context.Context, ports.Filters) ([]model.Brand, error) {
				return s.Brands.List
			}, []table.Column[model.Brand]{
				col("id", "ID", table.String, func(b model.Brand) any { return b.Key() }),
				col("name", "Name", table.String, func(b model.Brand) any { return b.Name }),
				col("order", "Order", table.Number, func(b model.Brand) any { return b.Order }),
				col("isActive", "Active", table.String, func(b model.Brand) any { return b.IsActive }),
			}),
			remove: func(ctx context.Context, s ports.ShopAPI, id string) error { return s.Brands.Remove(ctx, id) },
		},
		"deals": {
			list: listTable(func(s ports.ShopAPI) func(context.Context, ports.Filters) ([]model.Deal, error) {
				return s.Deals.List
			}, []table.Column[model.Deal]{
				col("id", "ID", table.String, func(d model.Deal) any { return d.Key() }),
				col("title", "Title", table.String, func(d model.Deal) any { return d.Title }),
				col("product", "Product", table.String, func(d model.Deal) any { return d.Product.Label() }),
				col("discountPercent", "Discount %", table.Number, func(d model.Deal) any { return d.DiscountPercent }),
				col("dealPrice", "Deal price", table.Number, func(d model.Deal) any { return d.DealPrice }),
				col("expiresAt", "Expires", table.String, func(d model.Deal) any { return d.ExpiresAt }),
			}),
			remove: func(ctx context.Context, s ports.ShopAPI, id string) error { return s.Deals.Remove(ctx, id) },
		},
		"users": {
			list: listTable(func(s ports.ShopAPI) func(context.Context, ports.Filters) ([]model.User, error) {
				return s.Users.List
			}, []table.Column[model.User]{
				col("id", "ID", table.String, func(u model.User) any { return u.Key() }),
				col("name", "Name", table.String, func(u model.User) any { return u.Name }),
				col("email", "Email", table.String, func(u model.User) any { return u.Email }),
				col("phone", "Phone", table.String, func(u model.User) any { return u.Phone }),
				col("role", "Role", table.String, func(u model.User) any { return u.Role }),
			}),
			remove: func(ctx context.Context, s ports.ShopAPI, id string) error { return s.Users.Remove(ctx, id) },
		},
		"blogs": {
			list: listTable(func(s ports.ShopAPI) func(context.Context, ports.Filters) ([]model.Blog, error) {
				return s.Blogs.List
			}, []table.Column[model.Blog]{
				col("id", "ID", table.String, func(b model.Blog) any { return b.Key() }),
				col("title", "Title", table.String, func(b model.Blog) any { return b.Title }),
				col("published", "Published", table.String, func(b model.Blog) any { return b.Published }),
				col("createdAt", "Created", table.String, func(b model.Blog) any { return b.CreatedAt }),
			}),
			remove: func(ctx context.Context, s ports.ShopAPI, id string) error { return s.Blogs.Remove(ctx, id) },
		},
		"ads": {
			list: listTable(func(s ports.ShopAPI) func(context.Context, ports.Filters) ([]model.Ad, error) {
				return s.Ads.List
			}, []table.Column[model.Ad]{
				col("id", "ID", table.String, func(a model.Ad) any { return a.Key() }),
				col("title", "Title", table.String, func(a model.Ad) any { return a.Title }),
				col("placement", "Placement", table.String, func(a model.Ad) any { return a.Placement }),
				col("priority", "Priority", table.Number, func(a model.Ad) any { return a.Priority }),
				col("active", "Active", table.String, func(a model.Ad) any { return a.Active }),
			}),
			remove: func(ctx context.Context, s ports.ShopAPI, id string) error { return s.Ads.Remove(ctx, id) },
		},
		"banners": {
			list: listTable(func(s ports.ShopAPI) func(context.Context, ports.Filters) ([]model.Banner, error) {
				return s.Banners.List
			}, []table.Column[model.Banner]{
				col("id", "ID", table.String, func(b model.Banner) any { return b.Key() }),
				col("title", "Title", table.String, func(b model.Banner) any { return b.Title }),
				col("placement", "Placement", table.String, func(b model.Banner) any { return b.Placement }),
				col("order", "Order", table.Number, func(b model.Banner) any { return b.Order }),
				col("isActive", "Active", table.String, func(b model.Banner) any { return b.IsActive }),
			}),
			remove: func(ctx context.Context, s ports.ShopAPI, id string) error { return s.Banners.Remove(ctx, id) },
		},
		"reviews": {
			list: listTable(func(s ports.ShopAPI) func(context.Context, ports.Filters) ([]model.Review, error) {
				return s.Reviews.List
			}, []table.Column[model.Review]{
				col("id", "ID", table.String, func(r model.Review) any { return r.Key() }),
				col("product", "Product", table.String, func(r model.Review) any { return r.Product.Label() }),
				col("name", "Name", table.String, func(r model.Review) any { return r.Name }),
				col("rating", "Rating", table.Number, func(r model.Review) any { return r.Rating }),
				col("status", "Status", table.String, func(r model.Review) any { return r.Status }),
			}),
			remove: func(ctx context.Context, s ports.ShopAPI, id string) error { return s.Reviews.Remove(ctx, id) },
		},
		"orders": {
			list: listTable(func(s ports.ShopAPI) func(context.Context, ports.Filters) ([]model.Order, error) {
				return s.Orders.List
			}, []table.Column[model.Order]{
				col("id", "ID", table.String, func(o model.Order) any { return o.Key() }),
				col("customer", "Customer", table.String, func(o model.Order) any { return o.Customer.Label() }),
				col("items", "Items", table.Number, func(o model.Order) any { return o.ItemCount() }),
				col("total", "Total", table.Number, func(o model.Order) any { return o.Total }),
				col("status", "Status", table.String, func(o model.Order) any { return o.Status }),
				col("createdAt", "Created", table.String, func(o model.Order) any { return o.CreatedAt }),
			}),
			remove: func(ctx context.Context, s ports.ShopAPI, id string) error { return s.Orders.Remove(ctx, id) },
		},
		"inventory": {
			list: listTable(func(s ports.ShopAPI) func(context.Context, ports.Filters) ([]model.InventoryItem, error) {
				return s.Inventory.List
			}, []table.Column[model.InventoryItem]{
				col("id", "ID", table.String, func(i model.InventoryItem) any { return i.Key() }),
				col("name", "Name", table.String, func(i model.InventoryItem) any { return i.Name }),
				col("stock", "Stock", table.Number, func(i model.InventoryItem) any { return i.Stock }),
				col("unit", "Unit", table.String, func(i model.InventoryItem) any { return i.Unit }),
			}),
		},
		"contact": {
			list: listTable(func(s ports.ShopAPI) func(context.Context, ports.Filters) ([]model.ContactMessage, error) {
				return s.Contact.List
			}, []table.Column[model.ContactMessage]{
				col("id", "ID", table.String, func(m model.ContactMessage) any { return m.Key() }),
				col("name", "Name", table.String, func(m model.ContactMessage) any { return m.Name }),
				col("subject", "Subject", table.String, func(m model.ContactMessage) any { return m.Subject }),
				col("status", "Status", table.String, func(m model.ContactMessage) any { return m.Status }),
				col("createdAt", "Received", table.String, func(m model.ContactMessage) any { return m.CreatedAt }),
			}),
			remove: func(ctx context.Context, s ports.ShopAPI, id string) error { return s.Contact.Remove(ctx, id) },
		},
	}
}
