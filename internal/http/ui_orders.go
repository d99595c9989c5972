package httpx

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/target/shop-admin/internal/domain/model"
	"github.com/target/shop-admin/internal/ports"
	"github.com/target/shop-admin/internal/querycache"
	"github.com/target/shop-admin/internal/service"
	"github.com/target/shop-admin/internal/table"
	"github.com/target/shop-admin/internal/ui"
)

const (
	msgOrderStatusUpdated = "وضعیت سفارش به‌روزرسانی شد"
	msgOrderStatusFailed  = "خطا در به‌روزرسانی وضعیت"
)

//nolint:gochecknoglobals // static page metadata
var ordersPage = PageMeta{Title: "سفارش‌ها", PageTitle: "سفارش‌های مشتریان", CurrentPage: PageOrders}

func fetchOrders(ctx context.Context, ws *service.Workspace, f ports.Filters) ([]model.Order, error) {
	return ws.Shop.Orders.List(ctx, f)
}

//nolint:gochecknoglobals // static column table
var orderColumns = []table.Column[model.Order]{
	{ID: "id", Label: "کد سفارش", Accessor: func(o model.Order) any { return o.Key() }},
	{ID: "createdAt", Label: "تاریخ", Sortable: true, Kind: table.Number, Accessor: func(o model.Order) any { return float64(o.CreatedAt.Unix()) }},
	{ID: "customer", Label: "کاربر", Sortable: true, Accessor: func(o model.Order) any { return o.Customer.Name }},
	{ID: "phone", Label: "شماره", Accessor: func(o model.Order) any { return o.Customer.Phone }},
	{ID: "email", Label: "ایمیل", Accessor: func(o model.Order) any { return o.Customer.Email }},
	{ID: "total", Label: "مبلغ", Sortable: true, Kind: table.Number, Align: table.AlignEnd, Accessor: func(o model.Order) any { return o.Total.Float() }},
	{ID: "items", Label: "تعداد اقلام", Sortable: true, Kind: table.Number, Align: table.AlignCenter, Accessor: func(o model.Order) any { return o.ItemCount() }},
	{ID: "status", Label: "وضعیت", Sortable: true, Accessor: func(o model.Order) any { return o.Status }},
}

// orderStatuses returns the status enumeration from the workspace cache. A
// failure leaves each row's select with only its current status.
func (h *UIHandlers) orderStatuses(ctx context.Context, ws *service.Workspace) []model.OrderStatus {
	statuses, err := querycache.Get(ctx, ws.Cache, querycache.NewKey(resStatuses, nil), ws.Shop.Orders.Statuses)
	if err != nil {
		h.logger().WarnContext(ctx, "load order statuses failed", "error", err)
		return nil
	}
	return statuses
}

// Orders lists orders with a status select per row.
// GET /orders.
func (h *UIHandlers) Orders(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.Order]{
		Handler:      h,
		W:            w,
		R:            r,
		Resource:     resOrders,
		Fetch:        fetchOrders,
		Filters:      []string{"status"},
		Columns:      orderColumns,
		BasePath:     "/orders",
		PageMeta:     ordersPage,
		EmptyMessage: "سفارشی ثبت نشده است",
		ExtraColumns: 1,
		PageSize:     table.DefaultPageSize,
		EnrichData: func(ctx context.Context, b *TemplateDataBuilder, _ table.View[model.Order]) {
			if ws, ok := GetWorkspaceFromContext(ctx); ok {
				b.With("Statuses", h.orderStatuses(ctx, ws))
			}
		},
	})
}

// OrderDetail shows an order's line items in the modal.
// GET /orders/{id}.
func (h *UIHandlers) OrderDetail(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	key := r.PathValue("id")
	order, found, err := findRecord(r.Context(), ws, resOrders, fetchOrders, key)
	switch {
	case err != nil && isAuthFailure(err):
		h.handleAuthFailure(w, r, ws)
		return
	case err != nil:
		redirectWithToast(w, r, "/orders", ui.Error(errorMessage(err, msgLoadFailed)))
		return
	case !found:
		redirectWithToast(w, r, "/orders", ui.Error(msgRecordNotFound))
		return
	}
	data := NewTemplateData(r, ordersPage).WithDialog(DialogView{
		Template: "order-detail",
		Title:    "جزئیات سفارش",
		Draft:    order,
		Return:   returnURL(r, "/orders"),
		Extra:    map[string]any{"Statuses": h.orderStatuses(r.Context(), ws)},
	}).Build()
	h.renderOverlay(w, r, overlayParams{Data: data})
}

// OrderStatus applies the status picked in a row's select. Either way the
// browser reloads the list, so a rejected change shows the real status again.
// POST /orders/{id}/status.
func (h *UIHandlers) OrderStatus(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	key := r.PathValue("id")
	status := strings.TrimSpace(r.PostFormValue("status"))
	back := returnURL(r, "/orders")
	if key == "" || status == "" {
		redirectWithToast(w, r, back, ui.Error(msgOrderStatusFailed))
		return
	}

	err := ws.Mutator.Run(r.Context(), func(ctx context.Context) error {
		return ws.Shop.Orders.UpdateStatus(ctx, key, status)
	}, resOrders)
	if err != nil {
		if isAuthFailure(err) {
			h.handleAuthFailure(w, r, ws)
			return
		}
		h.logger().WarnContext(r.Context(), "order status update failed", "order", key, "status", status, "error", err)
		redirectWithToast(w, r, back, ui.Error(errorMessage(err, msgOrderStatusFailed)))
		return
	}
	redirectWithToast(w, r, back, ui.Success(msgOrderStatusUpdated))
}

func orderDeleteOpts(h *UIHandlers, w http.ResponseWriter, r *http.Request) DeleteOpts {
	return DeleteOpts{
		Handler:  h,
		W:        w,
		R:        r,
		Key:      r.PathValue("id"),
		Resource: resOrders,
		BasePath: "/orders",
		PageMeta: ordersPage,
		Title:    "حذف سفارش",
		Message:  "آیا از حذف این سفارش اطمینان دارید؟",
		Restock:  true,
		Remove: func(ctx context.Context, ws *service.Workspace, key string, form url.Values) error {
			return ws.Shop.Orders.RemoveWithRestock(ctx, key, checked(form.Get("restock")))
		},
		// Restocking changes product stock.
		Invalidates:    []string{resOrders, resInventory, resProducts},
		SuccessMessage: "سفارش حذف شد",
		ErrorMessage:   "حذف سفارش ناموفق بود",
	}
}

// OrderConfirmDelete asks before deleting an order, offering to restock its items.
// GET /orders/{id}/delete.
func (h *UIHandlers) OrderConfirmDelete(w http.ResponseWriter, r *http.Request) {
	ShowConfirm(orderDeleteOpts(h, w, r))
}

// OrderDelete deletes an order.
// POST /orders/{id}/delete.
func (h *UIHandlers) OrderDelete(w http.ResponseWriter, r *http.Request) {
	HandleDelete(orderDeleteOpts(h, w, r))
}

// checked reads an HTML checkbox value.
func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}
