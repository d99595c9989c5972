package httpx

import (
	"context"
	"log/slog"
	"time"

	"github.com/target/shop-admin/internal/domain/model"
	"github.com/target/shop-admin/internal/forms"
	"github.com/target/shop-admin/internal/ports"
	"github.com/target/shop-admin/internal/service"
	"github.com/target/shop-admin/internal/table"
)

func fetchCategories(ctx context.Context, ws *service.Workspace, f ports.Filters) ([]model.Category, error) {
	return ws.Shop.Categories.List(ctx, f)
}

func fetchBrands(ctx context.Context, ws *service.Workspace, f ports.Filters) ([]model.Brand, error) {
	return ws.Shop.Brands.List(ctx, f)
}

func fetchDeals(ctx context.Context, ws *service.Workspace, f ports.Filters) ([]model.Deal, error) {
	return ws.Shop.Deals.List(ctx, f)
}

//nolint:gochecknoglobals // static column tables
var (
	categoryColumns = []table.Column[model.Category]{
		{ID: "name", Label: "نام", Sortable: true, Accessor: func(c model.Category) any { return c.Name }},
		{ID: "order", Label: "ترتیب", Sortable: true, Kind: table.Number, Align: table.AlignCenter, Accessor: func(c model.Category) any { return c.Order.Float() }},
		{ID: "isActive", Label: "وضعیت", Align: table.AlignCenter},
	}
	brandColumns = []table.Column[model.Brand]{
		{ID: "logo", Label: "لوگو", Align: table.AlignCenter},
		{ID: "name", Label: "نام برند", Sortable: true, Accessor: func(b model.Brand) any { return b.Name }},
		{ID: "link", Label: "لینک"},
		{ID: "order", Label: "ترتیب", Sortable: true, Kind: table.Number, Align: table.AlignCenter, Accessor: func(b model.Brand) any { return b.Order.Float() }},
		{ID: "isActive", Label: "وضعیت", Align: table.AlignCenter},
	}
	dealColumns = []table.Column[model.Deal]{
		{ID: "title", Label: "عنوان", Sortable: true, Accessor: func(d model.Deal) any { return d.Title }},
		{ID: "product", Label: "محصول", Sortable: true, Accessor: func(d model.Deal) any { return d.Product.Label() }},
		{ID: "discountPercent", Label: "درصد تخفیف", Sortable: true, Kind: table.Number, Align: table.AlignCenter, Accessor: func(d model.Deal) any { return d.DiscountPercent.Float() }},
		{ID: "dealPrice", Label: "قیمت ویژه", Sortable: true, Kind: table.Number, Align: table.AlignEnd, Accessor: func(d model.Deal) any { return d.DealPrice.Float() }},
		{ID: "expiresAt", Label: "انقضا", Sortable: true, Kind: table.Number, Align: table.AlignCenter, Accessor: dealExpiry},
		{ID: "isActive", Label: "وضعیت", Align: table.AlignCenter},
	}
)

// dealExpiry sorts open-ended deals last.
func dealExpiry(d model.Deal) any {
	if d.ExpiresAt == nil {
		return float64(time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC).Unix())
	}
	return float64(d.ExpiresAt.Unix())
}

func categoriesResource() *crudResource[model.Category, *forms.CategoryDraft] {
	return &crudResource[model.Category, *forms.CategoryDraft]{
		Resource:     resCategories,
		BasePath:     "/categories",
		Page:         PageMeta{Title: "دسته‌بندی‌ها", PageTitle: "مدیریت دسته‌بندی‌ها", CurrentPage: PageCategories},
		Columns:      categoryColumns,
		EmptyMessage: "دسته‌بندی‌ای ثبت نشده است",
		Fetch:        fetchCategories,
		Form: FormSpec{
			Template:    "category-form",
			CreateTitle: "افزودن دسته‌بندی",
			EditTitle:   "ویرایش دسته‌بندی",
		},
		NewDraft: forms.NewCategoryDraft,
		Parser:   forms.ParseCategory,
		Create: func(ctx context.Context, ws *service.Workspace, d *forms.CategoryDraft) error {
			_, err := ws.Shop.Categories.Create(ctx, d.Normalize())
			return err
		},
		Update: func(ctx context.Context, ws *service.Workspace, key string, d *forms.CategoryDraft) error {
			_, err := ws.Shop.Categories.Update(ctx, key, d.Normalize())
			return err
		},
		Remove: func(ctx context.Context, ws *service.Workspace, key string) error {
			return ws.Shop.Categories.Remove(ctx, key)
		},
		// Product rows show the category name.
		Invalidates: []string{resCategories, resProducts},
		Label:       func(c model.Category) string { return c.Name },
		Msg: crudMessages{
			Created:      "دسته‌بندی ایجاد شد",
			Updated:      "دسته‌بندی ویرایش شد",
			Deleted:      "دسته‌بندی حذف شد",
			SaveFailed:   "ثبت دسته‌بندی ناموفق بود",
			DeleteFailed: "حذف دسته‌بندی ناموفق بود",
			DeleteTitle:  "حذف دسته‌بندی",
			DeletePrompt: func(name string) string { return "دسته‌بندی «" + name + "» حذف شود؟" },
		},
	}
}

func brandsResource() *crudResource[model.Brand, *forms.BrandDraft] {
	return &crudResource[model.Brand, *forms.BrandDraft]{
		Resource:     resBrands,
		BasePath:     "/brands",
		Page:         PageMeta{Title: "برندها", PageTitle: "مدیریت برندها", CurrentPage: PageBrands},
		Columns:      brandColumns,
		EmptyMessage: "برندی ثبت نشده است",
		Fetch:        fetchBrands,
		Form: FormSpec{
			Template:    "brand-form",
			CreateTitle: "افزودن برند",
			EditTitle:   "ویرایش برند",
			Multipart:   true,
		},
		NewDraft: forms.NewBrandDraft,
		Parser:   forms.ParseBrand,
		Create: func(ctx context.Context, ws *service.Workspace, d *forms.BrandDraft) error {
			_, err := ws.Shop.Brands.Create(ctx, d.Normalize(), d.Uploads()...)
			return err
		},
		Update: func(ctx context.Context, ws *service.Workspace, key string, d *forms.BrandDraft) error {
			_, err := ws.Shop.Brands.Update(ctx, key, d.Normalize(), d.Uploads()...)
			return err
		},
		Remove: func(ctx context.Context, ws *service.Workspace, key string) error {
			return ws.Shop.Brands.Remove(ctx, key)
		},
		Invalidates: []string{resBrands, resProducts},
		Label:       func(b model.Brand) string { return b.Name },
		Msg: crudMessages{
			Created:      "برند ثبت شد",
			Updated:      "برند به‌روزرسانی شد",
			Deleted:      "برند حذف شد",
			SaveFailed:   "خطا در ثبت برند",
			DeleteFailed: "خطا در حذف برند",
			DeleteTitle:  "حذف برند",
			DeletePrompt: func(name string) string { return "برند «" + name + "» حذف شود؟" },
		},
	}
}

func dealsResource(logger *slog.Logger) *crudResource[model.Deal, *forms.DealDraft] {
	return &crudResource[model.Deal, *forms.DealDraft]{
		Resource:     resDeals,
		BasePath:     "/deals",
		Page:         PageMeta{Title: "آفرها", PageTitle: "آفرهای ویژه", CurrentPage: PageDeals},
		Columns:      dealColumns,
		EmptyMessage: "آفری ثبت نشده است",
		Fetch:        fetchDeals,
		Form: FormSpec{
			Template:    "deal-form",
			CreateTitle: "افزودن آفر",
			EditTitle:   "ویرایش آفر",
			Extra: func(ctx context.Context, ws *service.Workspace, _ string) map[string]any {
				return map[string]any{"Products": selectOptions(ctx, ws, logger, resProducts, fetchProducts)}
			},
		},
		NewDraft: forms.NewDealDraft,
		Parser:   forms.ParseDeal,
		Create: func(ctx context.Context, ws *service.Workspace, d *forms.DealDraft) error {
			_, err := ws.Shop.Deals.Create(ctx, d.Normalize())
			return err
		},
		Update: func(ctx context.Context, ws *service.Workspace, key string, d *forms.DealDraft) error {
			_, err := ws.Shop.Deals.Update(ctx, key, d.Normalize())
			return err
		},
		Remove: func(ctx context.Context, ws *service.Workspace, key string) error {
			return ws.Shop.Deals.Remove(ctx, key)
		},
		Label: func(d model.Deal) string {
			if d.Title != "" {
				return d.Title
			}
			return d.Product.Label()
		},
		Msg: crudMessages{
			Created:      "آفر ثبت شد",
			Updated:      "آفر به‌روزرسانی شد",
			Deleted:      "آفر حذف شد",
			SaveFailed:   "ثبت آفر ناموفق بود",
			DeleteFailed: "حذف آفر ناموفق بود",
			DeleteTitle:  "حذف آفر",
			DeletePrompt: func(name string) string { return "آفر «" + name + "» حذف شود؟" },
		},
	}
}
