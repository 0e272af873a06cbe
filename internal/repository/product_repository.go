package repository

import (
	"context"
	"errors"

	"github.com/Flame-Codes/jersey-hub-direct/internal/catalog"
	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access.
// GetAll and Categories return whatever is available together with the
// load error, so callers can degrade to an empty listing.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// CatalogProductRepository serves products from the loaded catalog document
type CatalogProductRepository struct {
	loader *catalog.Loader
}

// NewCatalogProductRepository creates a repository backed by loader
func NewCatalogProductRepository(loader *catalog.Loader) *CatalogProductRepository {
	return &CatalogProductRepository{
		loader: loader,
	}
}

// GetAll returns all products in catalog order
func (r *CatalogProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.loader.Products(), r.loader.Err()
}

// GetByID returns a product by its ID
func (r *CatalogProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, ok := r.loader.Product(id)
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Categories returns the catalog's category list
func (r *CatalogProductRepository) Categories(ctx context.Context) ([]string, error) {
	return r.loader.Categories(), r.loader.Err()
}
