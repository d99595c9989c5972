package httpx

import (
	"context"
	"log/slog"

	"github.com/target/shop-admin/internal/domain/model"
	"github.com/target/shop-admin/internal/forms"
	"github.com/target/shop-admin/internal/ports"
	"github.com/target/shop-admin/internal/service"
	"github.com/target/shop-admin/internal/table"
)

func fetchProducts(ctx context.Context, ws *service.Workspace, f ports.Filters) ([]model.Product, error) {
	return ws.Shop.Products.List(ctx, f)
}

//nolint:gochecknoglobals // static column table
var productColumns = []table.Column[model.Product]{
	{ID: "name", Label: "نام محصول", Sortable: true, Accessor: func(p model.Product) any { return p.Name }},
	{ID: "category", Label: "دسته‌بندی", Sortable: true, Accessor: func(p model.Product) any { return p.Category.Label() }},
	{ID: "brand", Label: "برند", Sortable: true, Accessor: func(p model.Product) any { return p.Brand.Label() }},
	{ID: "price", Label: "قیمت", Sortable: true, Kind: table.Number, Align: table.AlignEnd, Accessor: func(p model.Product) any { return p.Price.Float() }},
	{ID: "stock", Label: "موجودی", Sortable: true, Kind: table.Number, Align: table.AlignCenter, Accessor: func(p model.Product) any { return p.Stock.Float() }},
	{ID: "status", Label: "وضعیت", Align: table.AlignCenter},
}

// productsResource serves /products. Product writes also change the stock
// rows of the inventory page and the product picker of the deals dialog.
func productsResource(logger *slog.Logger) *crudResource[model.Product, *forms.ProductDraft] {
	return &crudResource[model.Product, *forms.ProductDraft]{
		Resource:     resProducts,
		BasePath:     "/products",
		Page:         PageMeta{Title: "محصولات", PageTitle: "مدیریت محصولات", CurrentPage: PageProducts},
		Columns:      productColumns,
		Filters:      []string{"search"},
		EmptyMessage: "محصولی یافت نشد",
		Fetch:        fetchProducts,
		Form: FormSpec{
			Template:    "product-form",
			CreateTitle: "افزودن محصول جدید",
			EditTitle:   "ویرایش محصول",
			Multipart:   true,
			Extra: func(ctx context.Context, ws *service.Workspace, _ string) map[string]any {
				return map[string]any{
					"Categories": selectOptions(ctx, ws, logger, resCategories, fetchCategories),
					"Brands":     selectOptions(ctx, ws, logger, resBrands, fetchBrands),
					"Units":      productUnits,
				}
			},
		},
		NewDraft: forms.NewProductDraft,
		Parser:   forms.ParseProduct,
		Create: func(ctx context.Context, ws *service.Workspace, d *forms.ProductDraft) error {
			_, err := ws.Shop.Products.Create(ctx, d.Normalize(), d.Uploads()...)
			return err
		},
		Update: func(ctx context.Context, ws *service.Workspace, key string, d *forms.ProductDraft) error {
			_, err := ws.Shop.Products.Update(ctx, key, d.Normalize(), d.Uploads()...)
			return err
		},
		Remove: func(ctx context.Context, ws *service.Workspace, key string) error {
			return ws.Shop.Products.Remove(ctx, key)
		},
		Invalidates: []string{resProducts, resInventory, resDeals},
		Label:       func(p model.Product) string { return p.Name },
		Msg: crudMessages{
			Created:      "محصول با موفقیت اضافه شد",
			Updated:      "محصول ویرایش شد",
			Deleted:      "محصول حذف شد",
			SaveFailed:   "ذخیره محصول ناموفق بود",
			DeleteFailed: "حذف محصول ناموفق بود",
			DeleteTitle:  "حذف محصول",
			DeletePrompt: func(name string) string {
				return "آیا از حذف محصول «" + name + "» اطمینان دارید؟"
			},
		},
	}
}

//nolint:gochecknoglobals // static select options
var productUnits = []string{forms.DefaultUnit, "گرم", "عدد", "بسته", "لیتر"}
