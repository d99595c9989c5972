//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// Blog is a long-form storefront article. Content is HTML.
type Blog struct {
	Ref
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	CoverImage string     `json:"coverImage"`
	Tags       []string   `json:"tags"`
	Published  bool       `json:"published"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// AdPlacement is where an ad renders on the storefront.
type AdPlacement string

const (
	AdPlacementHero     AdPlacement = "hero"
	AdPlacementCarousel AdPlacement = "carousel"
	AdPlacementSidebar  AdPlacement = "sidebar"
	AdPlacementFooter   AdPlacement = "footer"
)

// AdPlacements lists ad placements in display order.
var AdPlacements = []AdPlacement{AdPlacementHero, AdPlacementCarousel, AdPlacementSidebar, AdPlacementFooter}

// Ad is a promotional block with a call to action.
type Ad struct {
	Ref
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	CTALabel    string      `json:"ctaLabel"`
	CTALink     string      `json:"ctaLink"`
	Placement   AdPlacement `json:"placement"`
	Priority    Number      `json:"priority"`
	Active      bool        `json:"active"`
}

// BannerPlacement is where a banner renders on the storefront.
type BannerPlacement string

const (
	BannerPlacementHero  BannerPlacement = "hero"
	BannerPlacementPromo BannerPlacement = "promo"
	BannerPlacementGrid  BannerPlacement = "grid"
	BannerPlacementMini  BannerPlacement = "mini"
)

// BannerPlacements lists banner placements in display order.
var BannerPlacements = []BannerPlacement{BannerPlacementHero, BannerPlacementPromo, BannerPlacementGrid, BannerPlacementMini}

// Banner is an image banner linking into the storefront.
type Banner struct {
	Ref
	Title     string          `json:"title"`
	Subtitle  string          `json:"subtitle"`
	Image     string          `json:"image"`
	Link      string          `json:"link"`
	Placement BannerPlacement `json:"placement"`
	Order     Number          `json:"order"`
	IsActive  bool            `json:"isActive"`
}
