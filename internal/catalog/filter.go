package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Sort selects the ordering of a catalog view
type Sort string

const (
	SortFeatured  Sort = "featured"
	SortPriceLow  Sort = "price-low"
	SortPriceHigh Sort = "price-high"
	// SortNewest keeps catalog insertion order; products carry no timestamp
	SortNewest Sort = "newest"
)

// ErrUnknownSort is returned by ParseSort for unsupported values
var ErrUnknownSort = errors.New("unknown sort option")

// ParseSort validates a sort option; empty means featured
func ParseSort(s string) (Sort, error) {
	switch Sort(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortFeatured:
		return SortFeatured, nil
	case SortPriceLow:
		return SortPriceLow, nil
	case SortPriceHigh:
		return SortPriceHigh, nil
	case SortNewest:
		return SortNewest, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
	}
}

// Filter describes a catalog view. Zero value selects everything in
// catalog order.
type Filter struct {
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     Sort
}

// Apply returns a new slice of the products matching f, ordered by f.Sort.
// The input slice is not modified.
func Apply(products []models.Product, f Filter) []models.Product {
	result := make([]models.Product, 0, len(products))

	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(f.Search))

	for _, p := range products {
		if f.Category != "" && f.Category != models.AllCategories && p.Category != f.Category {
			continue
		}

		price := p.EffectivePrice()
		if f.MinPrice != nil && price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && price.GreaterThan(*f.MaxPrice) {
			continue
		}

		if query != "" &&
			!strings.Contains(fold.String(p.Name), query) &&
			!strings.Contains(fold.String(p.Category), query) &&
			!strings.Contains(fold.String(p.Description), query) {
			continue
		}

		result = append(result, p)
	}

	switch f.Sort {
	case SortPriceLow:
		slices.SortStableFunc(result, func(a, b models.Product) int {
			return a.EffectivePrice().Cmp(b.EffectivePrice())
		})
	case SortPriceHigh:
		slices.SortStableFunc(result, func(a, b models.Product) int {
			return b.EffectivePrice().Cmp(a.EffectivePrice())
		})
	case SortFeatured:
		slices.SortStableFunc(result, func(a, b models.Product) int {
			return featuredRank(a) - featuredRank(b)
		})
	}

	return result
}

func featuredRank(p models.Product) int {
	if p.Featured {
		return 0
	}
	return 1
}
