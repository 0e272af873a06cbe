package service

import (
	"context"
	"errors"

	"github.com/Flame-Codes/jersey-hub-direct/internal/cart"
	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
	"github.com/Flame-Codes/jersey-hub-direct/internal/repository"
)

var (
	ErrInvalidProduct = errors.New("invalid product")
	ErrEmptyCart      = errors.New("cart is empty")
)

// CartService resolves products and applies cart commands for a session
type CartService struct {
	products repository.ProductRepository
	carts    *cart.Sessions
}

// NewCartService creates a new cart service
func NewCartService(products repository.ProductRepository, carts *cart.Sessions) *CartService {
	return &CartService{
		products: products,
		carts:    carts,
	}
}

// Get returns the session cart snapshot
func (s *CartService) Get(ctx context.Context, sessionID string) models.CartSnapshot {
	return s.carts.Get(ctx, sessionID).Snapshot()
}

// AddItem adds quantity of the product in size to the session cart
func (s *CartService) AddItem(ctx context.Context, sessionID string, req models.AddCartItemRequest) (models.CartSnapshot, error) {
	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return models.CartSnapshot{}, ErrInvalidProduct
	}

	c := s.carts.Get(ctx, sessionID)
	if err := c.Add(ctx, *product, req.Size, req.Quantity); err != nil {
		return models.CartSnapshot{}, err
	}
	return c.Snapshot(), nil
}

// UpdateQuantity sets the quantity of a line; zero or less removes it
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, productID, size string, quantity int) models.CartSnapshot {
	c := s.carts.Get(ctx, sessionID)
	c.UpdateQuantity(ctx, productID, size, quantity)
	return c.Snapshot()
}

// RemoveItem deletes a line if present
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID, size string) models.CartSnapshot {
	c := s.carts.Get(ctx, sessionID)
	c.Remove(ctx, productID, size)
	return c.Snapshot()
}

// Clear empties the session cart
func (s *CartService) Clear(ctx context.Context, sessionID string) models.CartSnapshot {
	c := s.carts.Get(ctx, sessionID)
	c.Clear(ctx)
	return c.Snapshot()
}
