package httpx

import (
	"context"
	"net/http"

	"github.com/target/shop-admin/internal/domain/model"
	"github.com/target/shop-admin/internal/forms"
	"github.com/target/shop-admin/internal/ports"
	"github.com/target/shop-admin/internal/service"
	"github.com/target/shop-admin/internal/table"
)

//nolint:gochecknoglobals // static page metadata
var inventoryPage = PageMeta{Title: "موجودی", PageTitle: "مدیریت موجودی انبار", CurrentPage: PageInventory}

func fetchInventory(ctx context.Context, ws *service.Workspace, f ports.Filters) ([]model.InventoryItem, error) {
	return ws.Shop.Inventory.List(ctx, f)
}

//nolint:gochecknoglobals // static column table
var inventoryColumns = []table.Column[model.InventoryItem]{
	{ID: "name", Label: "محصول", Sortable: true, Accessor: func(i model.InventoryItem) any { return i.Name }},
	{ID: "stock", Label: "موجودی فعلی", Sortable: true, Kind: table.Number, Align: table.AlignCenter, Accessor: func(i model.InventoryItem) any { return i.Stock.Float() }},
	{ID: "unit", Label: "واحد", Align: table.AlignCenter, Accessor: func(i model.InventoryItem) any { return i.Unit }},
}

//nolint:gochecknoglobals // static form spec
var inventoryAdjustSpec = FormSpec{
	Template:    "inventory-form",
	Resource:    resInventory,
	BasePath:    "/inventory",
	PageMeta:    inventoryPage,
	CreateTitle: "تنظیم موجودی",
	EditTitle:   "تنظیم موجودی",
	Action:      "/inventory/adjust",
}

// Inventory lists stock levels; each row carries an inline adjust form.
// GET /inventory.
func (h *UIHandlers) Inventory(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.InventoryItem]{
		Handler:      h,
		W:            w,
		R:            r,
		Resource:     resInventory,
		Fetch:        fetchInventory,
		Filters:      []string{"search"},
		Columns:      inventoryColumns,
		BasePath:     "/inventory",
		PageMeta:     inventoryPage,
		EmptyMessage: "محصولی برای نمایش موجودی وجود ندارد",
		ExtraColumns: 1,
		EnrichData: func(_ context.Context, b *TemplateDataBuilder, _ table.View[model.InventoryItem]) {
			b.With("Operations", model.InventoryOperations)
		},
	})
}

// InventoryAdjustForm opens the adjust dialog for one product.
// GET /inventory/{id}/adjust.
func (h *UIHandlers) InventoryAdjustForm(w http.ResponseWriter, r *http.Request) {
	ShowDialog(DialogOpts[model.InventoryItem, *forms.InventoryAdjustDraft]{
		Handler:  h,
		W:        w,
		R:        r,
		Spec:     inventoryAdjustSpec,
		Key:      r.PathValue("id"),
		Fetch:    fetchInventory,
		NewDraft: forms.NewInventoryAdjustDraft,
	})
}

// InventoryAdjust applies a stock adjustment. Product rows show stock too,
// so both collections go stale.
// POST /inventory/adjust.
func (h *UIHandlers) InventoryAdjust(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[*forms.InventoryAdjustDraft]{
		Handler: h,
		W:       w,
		R:       r,
		Spec:    inventoryAdjustSpec,
		Parser:  forms.ParseInventoryAdjust,
		Submit: func(ctx context.Context, ws *service.Workspace, _ string, d *forms.InventoryAdjustDraft) error {
			return ws.Shop.Inventory.Adjust(ctx, d.Normalize())
		},
		Invalidates:    []string{resInventory, resProducts},
		SuccessMessage: "موجودی به‌روزرسانی شد",
		ErrorMessage:   "خطا در به‌روزرسانی موجودی",
	})
}
