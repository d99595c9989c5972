//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
)

// Product is the catalog projection of a shop product.
type Product struct {
	Ref
	Name             string            `json:"name"`
	Price            Number            `json:"price"`
	OriginalPrice    Number            `json:"originalPrice,omitempty"`
	Discount         Number            `json:"discount"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"shortDescription"`
	Unit             string            `json:"unit"`
	Stock            Number            `json:"stock"`
	Images           []string          `json:"images"`
	Tags             []string          `json:"tags"`
	Brand            NamedRef          `json:"brand"`
	Category         NamedRef          `json:"category"`
	Weight           string            `json:"weight"`
	Dimensions       string            `json:"dimensions"`
	CountryOfOrigin  string            `json:"countryOfOrigin"`
	Features         []string          `json:"features"`
	Specifications   map[string]string `json:"specifications"`
	IsAvailable      bool              `json:"isAvailable"`
	IsFeatured       bool              `json:"isFeatured"`
}

// Category groups products on the storefront.
type Category struct {
	Ref
	Name     string `json:"name"`
	Order    Number `json:"order"`
	IsActive bool   `json:"isActive"`
}

// Brand is a product manufacturer shown in the storefront brand strip.
type Brand struct {
	Ref
	Name     string `json:"name"`
	Logo     string `json:"logo"`
	Link     string `json:"link"`
	Order    Number `json:"order"`
	IsActive bool   `json:"isActive"`
}

// Deal is a time-limited discount on a single product.
type Deal struct {
	Ref
	Product         NamedRef   `json:"productId"`
	Title           string     `json:"title"`
	DiscountPercent Number     `json:"discountPercent"`
	DealPrice       Number     `json:"dealPrice"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
	IsActive        bool       `json:"isActive"`
}

// Expired reports whether the deal has passed its expiry at now.
func (d Deal) Expired(now time.Time) bool {
	return d.ExpiresAt != nil && now.After(*d.ExpiresAt)
}

// InventoryItem is a product's stock row on the inventory page.
type InventoryItem struct {
	Ref
	Name  string `json:"name"`
	Stock Number `json:"stock"`
	Unit  string `json:"unit,omitempty"`
}

// InventoryOperation selects how an adjustment quantity is applied.
type InventoryOperation string

const (
	InventorySet      InventoryOperation = "set"
	InventoryIncrease InventoryOperation = "increase"
	InventoryDecrease InventoryOperation = "decrease"
)

// InventoryOperations lists the operations in display order.
var InventoryOperations = []InventoryOperation{InventorySet, InventoryIncrease, InventoryDecrease}

// ParseInventoryOperation normalizes v, defaulting to set when empty.
func ParseInventoryOperation(v string) (InventoryOperation, bool) {
	op := InventoryOperation(strings.ToLower(strings.TrimSpace(v)))
	switch op {
	case "":
		return InventorySet, true
	case InventorySet, InventoryIncrease, InventoryDecrease:
		return op, true
	default:
		return "", false
	}
}

// InventoryAdjustment is the payload for POST /inventory/adjust.
type InventoryAdjustment struct {
	ProductID string             `json:"productId"`
	Quantity  float64            `json:"quantity"`
	Operation InventoryOperation `json:"operation"`
}
