package forms

import (
	"slices"
	"strconv"
	"strings"

	"github.com/target/shop-admin/internal/domain/model"
	"github.com/target/shop-admin/internal/ports"
	"github.com/target/shop-admin/internal/richtext"
)

// BlogDraft is the editable form of a blog post. Content is HTML kept in
// sync with a richtext.Editor by the page.
type BlogDraft struct {
	Title     string
	Content   string
	Cover     ImageField
	Tags      string
	Published bool
}

// BlogPayload is the create/update body for /blogs.
type BlogPayload struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	CoverImage string   `json:"coverImage"`
	Tags       []string `json:"tags"`
	Published  bool     `json:"published"`
}

// NewBlogDraft copies b, or returns the empty template when b is nil.
func NewBlogDraft(b *model.Blog) *BlogDraft {
	if b == nil {
		return &BlogDraft{Cover: NewImageField("coverImage", "")}
	}
	return &BlogDraft{
		Title:     b.Title,
		Content:   b.Content,
		Cover:     NewImageField("coverImage", b.CoverImage),
		Tags:      JoinList(b.Tags),
		Published: b.Published,
	}
}

// Editor returns a rich text editor seeded with the draft content whose
// edits flow back into the draft.
func (d *BlogDraft) Editor() *richtext.Editor {
	e := richtext.NewEditor(d.Content)
	e.OnChange = func(html string) { d.Content = html }
	return e
}

// Validate implements Draft.
func (d *BlogDraft) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.required("title", d.Title)
	if richtext.IsEmpty(d.Content) {
		errs["content"] = MsgRequired
	}
	return errs
}

// Normalize builds the request payload. Content is sanitized.
func (d *BlogDraft) Normalize() BlogPayload {
	return BlogPayload{
		Title:      strings.TrimSpace(d.Title),
		Content:    strings.TrimSpace(richtext.Sanitize(d.Content)),
		CoverImage: d.Cover.Value(),
		Tags:       SplitList(d.Tags),
		Published:  d.Published,
	}
}

// Uploads returns the chosen cover file, if any.
func (d *BlogDraft) Uploads() []ports.Upload { return d.Cover.Uploads() }

// Release implements Draft.
func (d *BlogDraft) Release() { d.Cover.Release() }

// Ad defaults for new ads.
const (
	DefaultAdCTALabel = "مشاهده"
	DefaultAdCTALink  = "/"
	DefaultAdPriority = 1
)

// AdDraft is the editable form of an ad.
type AdDraft struct {
	Title       string
	Subtitle    string
	Description string
	Image       ImageField
	CTALabel    string
	CTALink     string
	Placement   string
	Priority    string
	Active      bool
}

// AdPayload is the create/update body for /ads.
type AdPayload struct {
	Title       string            `json:"title"`
	Subtitle    string            `json:"subtitle"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	CTALabel    string            `json:"ctaLabel"`
	CTALink     string            `json:"ctaLink"`
	Placement   model.AdPlacement `json:"placement"`
	Priority    float64           `json:"priority"`
	Active      bool              `json:"active"`
}

// NewAdDraft copies a, or returns the empty template when a is nil.
func NewAdDraft(a *model.Ad) *AdDraft {
	if a == nil {
		return &AdDraft{
			Image:     NewImageField("image", ""),
			CTALabel:  DefaultAdCTALabel,
			CTALink:   DefaultAdCTALink,
			Placement: string(model.AdPlacementHero),
			Priority:  strconv.Itoa(DefaultAdPriority),
			Active:    true,
		}
	}
	return &AdDraft{
		Title:       a.Title,
		Subtitle:    a.Subtitle,
		Description: a.Description,
		Image:       NewImageField("image", a.Image),
		CTALabel:    a.CTALabel,
		CTALink:     a.CTALink,
		Placement:   string(a.Placement),
		Priority:    formatNumber(a.Priority),
		Active:      a.Active,
	}
}

// Validate implements Draft.
func (d *AdDraft) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.required("title", d.Title)
	errs.choice("placement", slices.Contains(model.AdPlacements, model.AdPlacement(strings.TrimSpace(d.Placement))))
	errs.number("priority", d.Priority, false)
	return errs
}

// Normalize builds the request payload.
func (d *AdDraft) Normalize() AdPayload {
	return AdPayload{
		Title:       strings.TrimSpace(d.Title),
		Subtitle:    strings.TrimSpace(d.Subtitle),
		Description: strings.TrimSpace(d.Description),
		Image:       d.Image.Value(),
		CTALabel:    strings.TrimSpace(d.CTALabel),
		CTALink:     strings.TrimSpace(d.CTALink),
		Placement:   model.AdPlacement(strings.TrimSpace(d.Placement)),
		Priority:    toNumber(d.Priority),
		Active:      d.Active,
	}
}

// Uploads returns the chosen image file, if any.
func (d *AdDraft) Uploads() []ports.Upload { return d.Image.Uploads() }

// Release implements Draft.
func (d *AdDraft) Release() { d.Image.Release() }

// BannerDraft is the editable form of a banner.
type BannerDraft struct {
	Title     string
	Subtitle  string
	Image     ImageField
	Link      string
	Placement string
	Order     string
	IsActive  bool
}

// BannerPayload is the create/update body for /banners.
type BannerPayload struct {
	Title     string                `json:"title"`
	Subtitle  string                `json:"subtitle"`
	Image     string                `json:"image"`
	Link      string                `json:"link"`
	Placement model.BannerPlacement `json:"placement"`
	Order     float64               `json:"order"`
	IsActive  bool                  `json:"isActive"`
}

// NewBannerDraft copies b, or returns the empty template when b is nil.
func NewBannerDraft(b *model.Banner) *BannerDraft {
	if b == nil {
		return &BannerDraft{
			Image:     NewImageField("image", ""),
			Placement: string(model.BannerPlacementHero),
			Order:     "0",
			IsActive:  true,
		}
	}
	return &BannerDraft{
		Title:     b.Title,
		Subtitle:  b.Subtitle,
		Image:     NewImageField("image", b.Image),
		Link:      b.Link,
		Placement: string(b.Placement),
		Order:     formatNumber(b.Order),
		IsActive:  b.IsActive,
	}
}

// Validate implements Draft.
func (d *BannerDraft) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.choice("placement", slices.Contains(model.BannerPlacements, model.BannerPlacement(strings.TrimSpace(d.Placement))))
	errs.number("order", d.Order, false)
	return errs
}

// Normalize builds the request payload.
func (d *BannerDraft) Normalize() BannerPayload {
	return BannerPayload{
		Title:     strings.TrimSpace(d.Title),
		Subtitle:  strings.TrimSpace(d.Subtitle),
		Image:     d.Image.Value(),
		Link:      strings.TrimSpace(d.Link),
		Placement: model.BannerPlacement(strings.TrimSpace(d.Placement)),
		Order:     toNumber(d.Order),
		IsActive:  d.IsActive,
	}
}

// Uploads returns the chosen image file, if any.
func (d *BannerDraft) Uploads() []ports.Upload { return d.Image.Uploads() }

// Release implements Draft.
func (d *BannerDraft) Release() { d.Image.Release() }
