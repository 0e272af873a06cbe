package repository

import (
	"context"

	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
	"github.com/shopspring/decimal"
)

// InMemoryProductRepository implements ProductRepository with in-memory storage
type InMemoryProductRepository struct {
	categories []string
	products   []models.Product
	byID       map[string]int
}

// NewInMemoryProductRepository creates a repository holding products, or a
// small jersey seed set when none are given
func NewInMemoryProductRepository(products ...models.Product) *InMemoryProductRepository {
	if len(products) == 0 {
		products = seedProducts()
	}

	r := &InMemoryProductRepository{
		products: products,
		byID:     make(map[string]int, len(products)),
	}
	seen := make(map[string]bool)
	for i, p := range products {
		r.byID[p.ID] = i
		if !seen[p.Category] {
			seen[p.Category] = true
			r.categories = append(r.categories, p.Category)
		}
	}
	return r
}

func seedProducts() []models.Product {
	sizes := []string{"S", "M", "L", "XL"}
	return []models.Product{
		{ID: "1", Name: "Barcelona Home 24/25", Category: "Club Jerseys", Price: decimal.NewFromInt(1500), Discount: 20, Sizes: sizes, Stock: true, Featured: true},
		{ID: "2", Name: "Real Madrid Home 24/25", Category: "Club Jerseys", Price: decimal.NewFromInt(1550), Discount: 0, Sizes: sizes, Stock: true},
		{ID: "3", Name: "Manchester United Away", Category: "Club Jerseys", Price: decimal.NewFromInt(1450), Discount: 10, Sizes: sizes, Stock: true},
		{ID: "4", Name: "Brazil Retro 1970", Category: "Retro", Price: decimal.NewFromInt(1800), Discount: 0, Sizes: []string{"M", "L"}, Stock: true, Featured: true},
		{ID: "7", Name: "Argentina World Cup", Category: "National Teams", Price: decimal.NewFromInt(1650), Discount: 100, Sizes: sizes, Stock: false},
	}
}

// GetAll returns all products in insertion order
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return append([]models.Product{}, r.products...), nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	i, exists := r.byID[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	product := r.products[i]
	return &product, nil
}

// Categories returns the categories in order of first appearance
func (r *InMemoryProductRepository) Categories(ctx context.Context) ([]string, error) {
	return append([]string{}, r.categories...), nil
}
