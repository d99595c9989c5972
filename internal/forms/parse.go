package forms

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
)

// MaxUploadBytes bounds multipart request bodies; larger parts spill to disk.
const MaxUploadBytes = 10 << 20

// FileSuffix is appended to an image input name for its file input, so an
// image field "logo" posts its URL as "logo" and its file as "logoFile".
const FileSuffix = "File"

// FormParser builds a draft from a submitted form. key is the record id
// being edited, or "" when creating.
type FormParser[D Draft] func(r *http.Request, key string) (D, error)

type formValues struct {
	r *http.Request
}

func parseForm(r *http.Request) (formValues, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
			return formValues{}, fmt.Errorf("parse multipart form: %w", err)
		}
		return formValues{r: r}, nil
	}
	if err := r.ParseForm(); err != nil {
		return formValues{}, fmt.Errorf("parse form: %w", err)
	}
	return formValues{r: r}, nil
}

func (v formValues) str(name string) string { return v.r.PostForm.Get(name) }

func (v formValues) list(name string) []string { return v.r.PostForm[name] }

// flag reads a checkbox. Unchecked boxes are absent from the form.
func (v formValues) flag(name string) bool {
	switch strings.ToLower(strings.TrimSpace(v.str(name))) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

// image fills f from the file input when a file was chosen, else from the URL input.
func (v formValues) image(f *ImageField, name string) error {
	fh := v.file(name + FileSuffix)
	if fh == nil {
		f.SetURL(v.str(name))
		return nil
	}
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer src.Close()
	return f.SetFile(fh.Filename, fh.Header.Get("Content-Type"), src)
}

func (v formValues) file(name string) *multipart.FileHeader {
	if v.r.MultipartForm == nil {
		return nil
	}
	for _, fh := range v.r.MultipartForm.File[name] {
		if fh != nil && fh.Size > 0 {
			return fh
		}
	}
	return nil
}

// releaseOnError frees staged uploads when parsing failed part way.
func releaseOnError(d Draft, err error) error {
	if err != nil {
		d.Release()
	}
	return err
}

// ParseProduct is the FormParser for products.
func ParseProduct(r *http.Request, _ string) (*ProductDraft, error) {
	v, err := parseForm(r)
	if err != nil {
		return nil, err
	}
	d := NewProductDraft(nil)
	d.Name = v.str("name")
	d.Price = v.str("price")
	d.OriginalPrice = v.str("originalPrice")
	d.Discount = v.str("discount")
	d.Description = v.str("description")
	d.ShortDescription = v.str("shortDescription")
	d.Unit = v.str("unit")
	d.Stock = v.str("stock")
	d.Images = append([]string{}, v.list("images")...)
	d.Tags = v.str("tags")
	d.Brand = v.str("brand")
	d.Category = v.str("category")
	d.Weight = v.str("weight")
	d.Dimensions = v.str("dimensions")
	d.CountryOfOrigin = v.str("countryOfOrigin")
	d.Features = v.str("features")
	d.Specifications = v.str("specifications")
	d.IsAvailable = v.flag("isAvailable")
	d.IsFeatured = v.flag("isFeatured")
	if fh := v.file("images" + FileSuffix); fh != nil {
		src, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open images: %w", err)
		}
		defer src.Close()
		if err := d.NewImage.SetFile(fh.Filename, fh.Header.Get("Content-Type"), src); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// ParseCategory is the FormParser for categories.
func ParseCategory(r *http.Request, _ string) (*CategoryDraft, error) {
	v, err := parseForm(r)
	if err != nil {
		return nil, err
	}
	return &CategoryDraft{
		Name:     v.str("name"),
		Order:    v.str("order"),
		IsActive: v.flag("isActive"),
	}, nil
}

// ParseBrand is the FormParser for brands.
func ParseBrand(r *http.Request, _ string) (*BrandDraft, error) {
	v, err := parseForm(r)
	if err != nil {
		return nil, err
	}
	d := NewBrandDraft(nil)
	d.Name = v.str("name")
	d.Link = v.str("link")
	d.Order = v.str("order")
	d.IsActive = v.flag("isActive")
	if err := releaseOnError(d, v.image(&d.Logo, "logo")); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseDeal is the FormParser for deals. The expiry is read as Jalali text.
func ParseDeal(r *http.Request, _ string) (*DealDraft, error) {
	v, err := parseForm(r)
	if err != nil {
		return nil, err
	}
	d := &DealDraft{
		ProductID:       v.str("productId"),
		Title:           v.str("title"),
		DiscountPercent: v.str("discountPercent"),
		DealPrice:       v.str("dealPrice"),
		IsActive:        v.flag("isActive"),
	}
	d.ExpiresAt.SetInput(v.str("expiresAt"))
	return d, nil
}

// ParseInventoryAdjust is the FormParser for stock adjustments.
func ParseInventoryAdjust(r *http.Request, key string) (*InventoryAdjustDraft, error) {
	v, err := parseForm(r)
	if err != nil {
		return nil, err
	}
	d := &InventoryAdjustDraft{
		ProductID: v.str("productId"),
		Quantity:  v.str("quantity"),
		Operation: v.str("operation"),
	}
	if d.ProductID == "" {
		d.ProductID = key
	}
	return d, nil
}

// ParseUser is the FormParser for users. A non-empty key marks an edit.
func ParseUser(r *http.Request, key string) (*UserDraft, error) {
	v, err := parseForm(r)
	if err != nil {
		return nil, err
	}
	return &UserDraft{
		Name:     v.str("name"),
		Email:    v.str("email"),
		Password: v.str("password"),
		Phone:    v.str("phone"),
		Address:  v.str("address"),
		Role:     v.str("role"),
		editing:  key != "",
	}, nil
}

// ParseNotification is the FormParser for user messages; key is the user id.
func ParseNotification(r *http.Request, key string) (*NotificationDraft, error) {
	v, err := parseForm(r)
	if err != nil {
		return nil, err
	}
	return &NotificationDraft{
		UserID:     key,
		Title:      v.str("title"),
		Message:    v.str("message"),
		Type:       v.str("type"),
		ActionLink: v.str("actionLink"),
	}, nil
}

// ParseBlog is the FormParser for blog posts.
func ParseBlog(r *http.Request, _ string) (*BlogDraft, error) {
	v, err := parseForm(r)
	if err != nil {
		return nil, err
	}
	d := NewBlogDraft(nil)
	d.Title = v.str("title")
	d.Content = v.str("content")
	d.Tags = v.str("tags")
	d.Published = v.flag("published")
	if err := releaseOnError(d, v.image(&d.Cover, "coverImage")); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseAd is the FormParser for ads.
func ParseAd(r *http.Request, _ string) (*AdDraft, error) {
	v, err := parseForm(r)
	if err != nil {
		return nil, err
	}
	d := NewAdDraft(nil)
	d.Title = v.str("title")
	d.Subtitle = v.str("subtitle")
	d.Description = v.str("description")
	d.CTALabel = v.str("ctaLabel")
	d.CTALink = v.str("ctaLink")
	d.Placement = v.str("placement")
	d.Priority = v.str("priority")
	d.Active = v.flag("active")
	if err := releaseOnError(d, v.image(&d.Image, "image")); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseBanner is the FormParser for banners.
func ParseBanner(r *http.Request, _ string) (*BannerDraft, error) {
	v, err := parseForm(r)
	if err != nil {
		return nil, err
	}
	d := NewBannerDraft(nil)
	d.Title = v.str("title")
	d.Subtitle = v.str("subtitle")
	d.Link = v.str("link")
	d.Placement = v.str("placement")
	d.Order = v.str("order")
	d.IsActive = v.flag("isActive")
	if err := releaseOnError(d, v.image(&d.Image, "image")); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseContactReply is the FormParser for contact status changes.
func ParseContactReply(r *http.Request, _ string) (*ContactReplyDraft, error) {
	v, err := parseForm(r)
	if err != nil {
		return nil, err
	}
	return &ContactReplyDraft{Status: v.str("status"), ReplyMessage: v.str("replyMessage")}, nil
}

// ParseReviewModeration is the FormParser for review status changes.
func ParseReviewModeration(r *http.Request, _ string) (*ReviewModerationDraft, error) {
	v, err := parseForm(r)
	if err != nil {
		return nil, err
	}
	return &ReviewModerationDraft{Status: v.str("status")}, nil
}
