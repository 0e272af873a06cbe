package catalog

import (
	"testing"

	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, name, category string, price int64, discount int, featured bool) models.Product {
	return models.Product{
		ID: id, Name: name, Category: category,
		Price: decimal.NewFromInt(price), Discount: discount,
		Sizes: []string{"M"}, Featured: featured,
	}
}

var fixture = []models.Product{
	// effective prices: 1200, 1550, 1000, 1000, 500
	product("1", "Barcelona Home", "Club Jerseys", 1500, 20, false),
	product("2", "Real Madrid Home", "Club Jerseys", 1550, 0, true),
	product("3", "Brazil Retro", "Retro", 1000, 0, false),
	product("4", "Argentina World Cup", "National Teams", 2000, 50, true),
	{ID: "5", Name: "Plain Tee", Category: "Training", Price: decimal.NewFromInt(500), Description: "Ideal for FÜSSBALL drills"},
}

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero filter keeps catalog order", Filter{}, []string{"1", "2", "3", "4", "5"}},
		{"newest is insertion order", Filter{Sort: SortNewest}, []string{"1", "2", "3", "4", "5"}},
		{"featured first, stable", Filter{Sort: SortFeatured}, []string{"2", "4", "1", "3", "5"}},
		{"price low, stable on ties", Filter{Sort: SortPriceLow}, []string{"5", "3", "4", "1", "2"}},
		{"price high, stable on ties", Filter{Sort: SortPriceHigh}, []string{"2", "1", "3", "4", "5"}},
		{"category", Filter{Category: "Club Jerseys"}, []string{"1", "2"}},
		{"all jerseys category", Filter{Category: models.AllCategories}, []string{"1", "2", "3", "4", "5"}},
		{"search name case-insensitive", Filter{Search: "  madrid "}, []string{"2"}},
		{"search category", Filter{Search: "retro"}, []string{"3"}},
		{"search description with case folding", Filter{Search: "füssball"}, []string{"5"}},
		{"price range on effective price, inclusive", Filter{MinPrice: dec(1000), MaxPrice: dec(1200)}, []string{"1", "3", "4"}},
		{"min only", Filter{MinPrice: dec(1201)}, []string{"2"}},
		{"max only", Filter{MaxPrice: dec(999)}, []string{"5"}},
		{"combined", Filter{Category: "Club Jerseys", MaxPrice: dec(1300), Sort: SortPriceHigh}, []string{"1"}},
		{"no match", Filter{Search: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(fixture, tt.filter)))
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	before := ids(fixture)
	_ = Apply(fixture, Filter{Sort: SortPriceHigh})
	assert.Equal(t, before, ids(fixture))
}

func TestParseSort(t *testing.T) {
	for in, want := range map[string]Sort{
		"":           SortFeatured,
		"featured":   SortFeatured,
		"PRICE-LOW":  SortPriceLow,
		"price-high": SortPriceHigh,
		"newest":     SortNewest,
	} {
		got, err := ParseSort(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSort("random")
	assert.ErrorIs(t, err, ErrUnknownSort)
}

func TestImageResolver_Resolve(t *testing.T) {
	r := ImageResolver{"1": "/assets/one.jpg"}

	assert.Equal(t, "/assets/one.jpg", r.Resolve(models.Product{ID: "1", Image: "remote.jpg"}))
	assert.Equal(t, "remote.jpg", r.Resolve(models.Product{ID: "2", Image: "remote.jpg"}))
	assert.Equal(t, "a.jpg", r.Resolve(models.Product{ID: "2", Images: []string{"a.jpg", "b.jpg"}}))
	assert.Equal(t, "", r.Resolve(models.Product{ID: "2"}))

	var none ImageResolver
	assert.Equal(t, "x.jpg", none.Resolve(models.Product{ID: "1", Image: "x.jpg"}))
}
