package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
// These constants ensure consistency across UI handlers and template mapping.
const (
	// Main navigation pages.
	PageDashboard = "dashboard"
	PageLogin     = "login"

	// Catalog pages.
	PageProducts   = "products"
	PageCategories = "categories"
	PageBrands     = "brands"
	PageDeals      = "deals"
	PageInventory  = "inventory"

	// Sales and people.
	PageOrders = "orders"
	PageUsers  = "users"

	// Storefront content.
	PageBlogs   = "blogs"
	PageAds     = "ads"
	PageBanners = "banners"

	// Customer feedback.
	PageReviews = "reviews"
	PageContact = "contact"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
	StaticPathFromRoot   = "frontend/static"
)

// Resource names double as querycache key prefixes: a mutation invalidates
// every cached list under the names it touches.
const (
	resProducts   = "products"
	resCategories = "categories"
	resBrands     = "brands"
	resDeals      = "deals"
	resInventory  = "inventory"
	resOrders     = "orders"
	resStatuses   = "order-statuses"
	resUsers      = "users"
	resBlogs      = "blogs"
	resAds        = "ads"
	resBanners    = "banners"
	resReviews    = "reviews"
	resContact    = "contact"
)

// Operator-facing messages that are not tied to a single resource.
const (
	msgLoadFailed     = "دریافت اطلاعات ناموفق بود"
	msgShowingCached  = "آخرین اطلاعات دریافت‌شده نمایش داده می‌شود"
	msgFixBelow       = "لطفا خطاهای فرم را برطرف کنید"
	msgRecordNotFound = "رکورد مورد نظر یافت نشد"
	msgLoginRequired  = "برای ادامه وارد شوید"
	msgSessionExpired = "نشست شما منقضی شده است. دوباره وارد شوید"
)

//nolint:gochecknoglobals // static read-only lookup for templates; avoids per-call allocations
var contentTemplates = map[string]string{
	PageDashboard:  "dashboard-content",
	PageProducts:   "products-content",
	PageCategories: "categories-content",
	PageBrands:     "brands-content",
	PageDeals:      "deals-content",
	PageInventory:  "inventory-content",
	PageOrders:     "orders-content",
	PageUsers:      "users-content",
	PageBlogs:      "blogs-content",
	PageAds:        "ads-content",
	PageBanners:    "banners-content",
	PageReviews:    "reviews-content",
	PageContact:    "contact-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to dashboard-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}

// NavItem is one entry of the sidebar.
type NavItem struct {
	Page  string
	Label string
	Path  string
}

// Navigation lists the sidebar entries in display order.
//
//nolint:gochecknoglobals // static read-only navigation table
var Navigation = []NavItem{
	{Page: PageDashboard, Label: "داشبورد", Path: "/"},
	{Page: PageProducts, Label: "محصولات", Path: "/products"},
	{Page: PageCategories, Label: "دسته‌بندی‌ها", Path: "/categories"},
	{Page: PageBrands, Label: "برندها", Path: "/brands"},
	{Page: PageDeals, Label: "آفرها", Path: "/deals"},
	{Page: PageInventory, Label: "موجودی", Path: "/inventory"},
	{Page: PageOrders, Label: "سفارش‌ها", Path: "/orders"},
	{Page: PageUsers, Label: "کاربران", Path: "/users"},
	{Page: PageBlogs, Label: "مقالات", Path: "/blogs"},
	{Page: PageAds, Label: "تبلیغات", Path: "/ads"},
	{Page: PageBanners, Label: "بنرها", Path: "/banners"},
	{Page: PageReviews, Label: "نظرات", Path: "/reviews"},
	{Page: PageContact, Label: "پیام‌ها", Path: "/contact"},
}
