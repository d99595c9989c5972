package forms

import (
	"strings"

	"github.com/target/shop-admin/internal/domain/model"
	"github.com/target/shop-admin/internal/jalali"
	"github.com/target/shop-admin/internal/ports"
)

// DefaultUnit is the sales unit preselected for new products.
const DefaultUnit = "کیلو"

// ProductDraft is the editable form of a product. Numeric inputs stay as
// typed text until Normalize.
type ProductDraft struct {
	Name             string
	Price            string
	OriginalPrice    string
	Discount         string
	Description      string
	ShortDescription string
	Unit             string
	Stock            string
	Images           []string
	NewImage         ImageField
	Tags             string
	Brand            string
	Category         string
	Weight           string
	Dimensions       string
	CountryOfOrigin  string
	Features         string
	Specifications   string
	IsAvailable      bool
	IsFeatured       bool
}

// ProductPayload is the create/update body for /products.
type ProductPayload struct {
	Name             string            `json:"name"`
	Price            float64           `json:"price"`
	OriginalPrice    *float64          `json:"originalPrice,omitempty"`
	Discount         float64           `json:"discount"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"shortDescription"`
	Unit             string            `json:"unit"`
	Stock            float64           `json:"stock"`
	Images           []string          `json:"images"`
	Tags             []string          `json:"tags"`
	Brand            string            `json:"brand"`
	Category         string            `json:"category"`
	Weight           string            `json:"weight"`
	Dimensions       string            `json:"dimensions"`
	CountryOfOrigin  string            `json:"countryOfOrigin"`
	Features         []string          `json:"features"`
	Specifications   map[string]string `json:"specifications"`
	IsAvailable      bool              `json:"isAvailable"`
	IsFeatured       bool              `json:"isFeatured"`
}

// NewProductDraft copies p, or returns the empty template when p is nil.
func NewProductDraft(p *model.Product) *ProductDraft {
	if p == nil {
		return &ProductDraft{
			Unit:        DefaultUnit,
			Stock:       "0",
			Discount:    "0",
			Images:      []string{},
			NewImage:    NewImageField("images", ""),
			IsAvailable: true,
		}
	}
	return &ProductDraft{
		Name:             p.Name,
		Price:            formatNumber(p.Price),
		OriginalPrice:    formatOptional(p.OriginalPrice),
		Discount:         formatNumber(p.Discount),
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Unit:             p.Unit,
		Stock:            formatNumber(p.Stock),
		Images:           append([]string{}, p.Images...),
		NewImage:         NewImageField("images", ""),
		Tags:             JoinList(p.Tags),
		Brand:            p.Brand.Label(),
		Category:         p.Category.Label(),
		Weight:           p.Weight,
		Dimensions:       p.Dimensions,
		CountryOfOrigin:  p.CountryOfOrigin,
		Features:         joinLines(p.Features),
		Specifications:   formatSpecs(p.Specifications),
		IsAvailable:      p.IsAvailable,
		IsFeatured:       p.IsFeatured,
	}
}

// Validate implements Draft.
func (d *ProductDraft) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.required("name", d.Name)
	errs.number("price", d.Price, true)
	errs.number("originalPrice", d.OriginalPrice, false)
	errs.percent("discount", d.Discount)
	errs.number("stock", d.Stock, false)
	return errs
}

// Normalize builds the request payload.
func (d *ProductDraft) Normalize() ProductPayload {
	images := []string{}
	for _, img := range d.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	return ProductPayload{
		Name:             strings.TrimSpace(d.Name),
		Price:            toNumber(d.Price),
		OriginalPrice:    optionalNumber(d.OriginalPrice),
		Discount:         toNumber(d.Discount),
		Description:      strings.TrimSpace(d.Description),
		ShortDescription: strings.TrimSpace(d.ShortDescription),
		Unit:             strings.TrimSpace(d.Unit),
		Stock:            toNumber(d.Stock),
		Images:           images,
		Tags:             SplitList(d.Tags),
		Brand:            strings.TrimSpace(d.Brand),
		Category:         strings.TrimSpace(d.Category),
		Weight:           strings.TrimSpace(d.Weight),
		Dimensions:       strings.TrimSpace(d.Dimensions),
		CountryOfOrigin:  strings.TrimSpace(d.CountryOfOrigin),
		Features:         splitLines(d.Features),
		Specifications:   parseSpecs(d.Specifications),
		IsAvailable:      d.IsAvailable,
		IsFeatured:       d.IsFeatured,
	}
}

// Uploads returns the newly chosen image, if any.
func (d *ProductDraft) Uploads() []ports.Upload { return d.NewImage.Uploads() }

// Release implements Draft.
func (d *ProductDraft) Release() { d.NewImage.Release() }

// CategoryDraft is the editable form of a category.
type CategoryDraft struct {
	noUploads
	Name     string
	Order    string
	IsActive bool
}

// CategoryPayload is the create/update body for /categories.
type CategoryPayload struct {
	Name     string  `json:"name"`
	Order    float64 `json:"order"`
	IsActive bool    `json:"isActive"`
}

// NewCategoryDraft copies c, or returns the empty template when c is nil.
func NewCategoryDraft(c *model.Category) *CategoryDraft {
	if c == nil {
		return &CategoryDraft{Order: "0", IsActive: true}
	}
	return &CategoryDraft{Name: c.Name, Order: formatNumber(c.Order), IsActive: c.IsActive}
}

// Validate implements Draft.
func (d *CategoryDraft) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.required("name", d.Name)
	errs.number("order", d.Order, false)
	return errs
}

// Normalize builds the request payload.
func (d *CategoryDraft) Normalize() CategoryPayload {
	return CategoryPayload{Name: strings.TrimSpace(d.Name), Order: toNumber(d.Order), IsActive: d.IsActive}
}

// BrandDraft is the editable form of a brand.
type BrandDraft struct {
	Name     string
	Logo     ImageField
	Link     string
	Order    string
	IsActive bool
}

// BrandPayload is the create/update body for /brands.
type BrandPayload struct {
	Name     string  `json:"name"`
	Logo     string  `json:"logo"`
	Link     string  `json:"link"`
	Order    float64 `json:"order"`
	IsActive bool    `json:"isActive"`
}

// NewBrandDraft copies b, or returns the empty template when b is nil.
func NewBrandDraft(b *model.Brand) *BrandDraft {
	if b == nil {
		return &BrandDraft{Logo: NewImageField("logo", ""), Order: "0", IsActive: true}
	}
	return &BrandDraft{
		Name:     b.Name,
		Logo:     NewImageField("logo", b.Logo),
		Link:     b.Link,
		Order:    formatNumber(b.Order),
		IsActive: b.IsActive,
	}
}

// Validate implements Draft.
func (d *BrandDraft) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.required("name", d.Name)
	if d.Logo.Value() == "" && !d.Logo.HasFile() {
		errs["logo"] = MsgRequired
	}
	errs.number("order", d.Order, false)
	return errs
}

// Normalize builds the request payload.
func (d *BrandDraft) Normalize() BrandPayload {
	return BrandPayload{
		Name:     strings.TrimSpace(d.Name),
		Logo:     d.Logo.Value(),
		Link:     strings.TrimSpace(d.Link),
		Order:    toNumber(d.Order),
		IsActive: d.IsActive,
	}
}

// Uploads returns the chosen logo file, if any.
func (d *BrandDraft) Uploads() []ports.Upload { return d.Logo.Uploads() }

// Release implements Draft.
func (d *BrandDraft) Release() { d.Logo.Release() }

// DealDraft is the editable form of a deal. The expiry is typed as a Jalali date.
type DealDraft struct {
	noUploads
	ProductID       string
	Title           string
	DiscountPercent string
	DealPrice       string
	ExpiresAt       jalali.Field
	IsActive        bool
}

// DealPayload is the create/update body for /deals.
type DealPayload struct {
	ProductID       string   `json:"productId"`
	Title           string   `json:"title"`
	DiscountPercent float64  `json:"discountPercent"`
	DealPrice       *float64 `json:"dealPrice,omitempty"`
	ExpiresAt       string   `json:"expiresAt,omitempty"`
	IsActive        bool     `json:"isActive"`
}

// NewDealDraft copies d, or returns the empty template when d is nil.
func NewDealDraft(d *model.Deal) *DealDraft {
	if d == nil {
		return &DealDraft{DiscountPercent: "0", IsActive: true}
	}
	return &DealDraft{
		ProductID:       d.Product.Key(),
		Title:           d.Title,
		DiscountPercent: formatNumber(d.DiscountPercent),
		DealPrice:       formatOptional(d.DealPrice),
		ExpiresAt:       jalali.NewField(d.ExpiresAt),
		IsActive:        d.IsActive,
	}
}

// Validate implements Draft.
func (d *DealDraft) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.required("productId", d.ProductID)
	errs.percent("discountPercent", d.DiscountPercent)
	errs.number("dealPrice", d.DealPrice, false)
	if d.ExpiresAt.Invalid {
		errs["expiresAt"] = MsgDate
	}
	return errs
}

// Normalize builds the request payload.
func (d *DealDraft) Normalize() DealPayload {
	return DealPayload{
		ProductID:       strings.TrimSpace(d.ProductID),
		Title:           strings.TrimSpace(d.Title),
		DiscountPercent: toNumber(d.DiscountPercent),
		DealPrice:       optionalNumber(d.DealPrice),
		ExpiresAt:       d.ExpiresAt.ISO(),
		IsActive:        d.IsActive,
	}
}

// InventoryAdjustDraft is the per-row stock adjustment form.
type InventoryAdjustDraft struct {
	noUploads
	ProductID string
	Quantity  string
	Operation string
}

// NewInventoryAdjustDraft starts an adjustment for item; nil starts a blank one.
func NewInventoryAdjustDraft(item *model.InventoryItem) *InventoryAdjustDraft {
	d := &InventoryAdjustDraft{Operation: string(model.InventorySet)}
	if item != nil {
		d.ProductID = item.Key()
		d.Quantity = formatNumber(item.Stock)
	}
	return d
}

// Validate implements Draft.
func (d *InventoryAdjustDraft) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.required("productId", d.ProductID)
	errs.number("quantity", d.Quantity, true)
	_, ok := model.ParseInventoryOperation(d.Operation)
	errs.choice("operation", ok)
	return errs
}

// Normalize builds the request payload.
func (d *InventoryAdjustDraft) Normalize() model.InventoryAdjustment {
	op, _ := model.ParseInventoryOperation(d.Operation)
	return model.InventoryAdjustment{
		ProductID: strings.TrimSpace(d.ProductID),
		Quantity:  toNumber(d.Quantity),
		Operation: op,
	}
}
