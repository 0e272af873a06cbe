package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AllCategories is the pseudo-category that disables category filtering
const AllCategories = "All Jerseys"

var hundred = decimal.NewFromInt(100)

// Product represents a jersey listed in the catalog document
type Product struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Category    string          `json:"category" yaml:"category"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
	Discount    int             `json:"discount" yaml:"discount"`
	Image       string          `json:"image" yaml:"image"`
	Images      []string        `json:"images,omitempty" yaml:"images,omitempty"`
	Sizes       []string        `json:"sizes" yaml:"sizes"`
	Stock       bool            `json:"stock" yaml:"stock"`
	Featured    bool            `json:"featured,omitempty" yaml:"featured,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
}

// DiscountPercent returns the discount clamped to [0,100]
func (p Product) DiscountPercent() int {
	switch {
	case p.Discount < 0:
		return 0
	case p.Discount > 100:
		return 100
	default:
		return p.Discount
	}
}

// EffectivePrice is the base price reduced by the discount percentage
func (p Product) EffectivePrice() decimal.Decimal {
	remaining := decimal.NewFromInt(int64(100 - p.DiscountPercent()))
	return p.Price.Mul(remaining).Div(hundred)
}

// HasSize reports whether size is one of the product's listed sizes.
// Products without a size list accept any non-empty label.
func (p Product) HasSize(size string) bool {
	if strings.TrimSpace(size) == "" {
		return false
	}
	if len(p.Sizes) == 0 {
		return true
	}
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// DefaultSize returns the first listed size, or "" when none is listed
func (p Product) DefaultSize() string {
	if len(p.Sizes) == 0 {
		return ""
	}
	return p.Sizes[0]
}

// Catalog is the static document the storefront is served from
type Catalog struct {
	Categories []string  `json:"categories" yaml:"categories"`
	Products   []Product `json:"products" yaml:"products"`
}
