package service

import (
	"context"

	"github.com/Flame-Codes/jersey-hub-direct/internal/catalog"
	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
	"github.com/Flame-Codes/jersey-hub-direct/internal/repository"
)

// ProductList is a catalog view. Error is set when the catalog could not be
// loaded; Products is then empty.
type ProductList struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
	Error    string           `json:"error,omitempty"`
}

// ProductService handles business logic for products
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts returns the products matching filter
func (s *ProductService) ListProducts(ctx context.Context, filter catalog.Filter) ProductList {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return ProductList{Products: []models.Product{}, Error: err.Error()}
	}

	view := catalog.Apply(products, filter)
	return ProductList{Products: view, Total: len(view)}
}

// FeaturedProducts returns the featured products in catalog order
func (s *ProductService) FeaturedProducts(ctx context.Context) ProductList {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return ProductList{Products: []models.Product{}, Error: err.Error()}
	}

	featured := make([]models.Product, 0)
	for _, p := range products {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return ProductList{Products: featured, Total: len(featured)}
}

// Categories returns the category list, empty when the catalog is unavailable
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return []string{}, err
	}
	return categories, nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}
