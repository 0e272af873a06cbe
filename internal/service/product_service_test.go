package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Flame-Codes/jersey-hub-direct/internal/catalog"
	"github.com/Flame-Codes/jersey-hub-direct/internal/repository"
)

func TestProductService_ListProducts(t *testing.T) {
	svc := NewProductService(repository.NewInMemoryProductRepository())
	ctx := context.Background()

	tests := []struct {
		name   string
		filter catalog.Filter
		want   []string
	}{
		{"all in featured order", catalog.Filter{Sort: catalog.SortFeatured}, []string{"1", "4", "2", "3", "7"}},
		{"retro only", catalog.Filter{Category: "Retro"}, []string{"4"}},
		{"cheapest first", catalog.Filter{Sort: catalog.SortPriceLow}, []string{"7", "1", "3", "2", "4"}},
		{"search", catalog.Filter{Search: "MANCHESTER"}, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := svc.ListProducts(ctx, tt.filter)
			if list.Error != "" {
				t.Fatalf("unexpected error: %s", list.Error)
			}
			if list.Total != len(tt.want) {
				t.Fatalf("total = %d, want %d", list.Total, len(tt.want))
			}
			for i, p := range list.Products {
				if p.ID != tt.want[i] {
					t.Errorf("products[%d] = %s, want %s", i, p.ID, tt.want[i])
				}
			}
		})
	}
}

func TestProductService_CatalogUnavailable(t *testing.T) {
	loader := catalog.NewLoader(filepath.Join(t.TempDir(), "missing.json"))
	_ = loader.Load(context.Background())
	svc := NewProductService(repository.NewCatalogProductRepository(loader))
	ctx := context.Background()

	list := svc.ListProducts(ctx, catalog.Filter{})
	if list.Error == "" {
		t.Error("expected error to be surfaced")
	}
	if list.Products == nil || len(list.Products) != 0 {
		t.Errorf("expected empty non-nil product list, got %v", list.Products)
	}

	featured := svc.FeaturedProducts(ctx)
	if featured.Error == "" || len(featured.Products) != 0 {
		t.Errorf("unexpected featured list: %+v", featured)
	}

	categories, err := svc.Categories(ctx)
	if err == nil || len(categories) != 0 {
		t.Errorf("expected empty categories and error, got %v / %v", categories, err)
	}
}

func TestProductService_FeaturedProducts(t *testing.T) {
	svc := NewProductService(repository.NewInMemoryProductRepository())
	list := svc.FeaturedProducts(context.Background())
	if list.Total != 2 || list.Products[0].ID != "1" || list.Products[1].ID != "4" {
		t.Errorf("unexpected featured products: %+v", list.Products)
	}
}
