package service

import (
	"context"
	"log/slog"

	"github.com/Flame-Codes/jersey-hub-direct/internal/cart"
	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
	"github.com/Flame-Codes/jersey-hub-direct/internal/order"
	"github.com/Flame-Codes/jersey-hub-direct/internal/repository"
)

// CheckoutService turns a product selection or a session cart into a
// submitted order
type CheckoutService struct {
	products  repository.ProductRepository
	carts     *cart.Sessions
	submitter *order.Submitter
	log       *slog.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(products repository.ProductRepository, carts *cart.Sessions, submitter *order.Submitter, log *slog.Logger) *CheckoutService {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &CheckoutService{
		products:  products,
		carts:     carts,
		submitter: submitter,
		log:       log,
	}
}

// Contact exposes the fallback contact channel
func (s *CheckoutService) Contact() order.Contact {
	return s.submitter.Contact()
}

// OrderProduct submits a single-product order. Quantity defaults to 1 and
// size to the product's first size.
func (s *CheckoutService) OrderProduct(ctx context.Context, req models.OrderRequest) (*order.Submission, error) {
	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, ErrInvalidProduct
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	return s.submitter.Submit(ctx, req.Customer, []models.OrderItem{
		{Product: *product, Size: req.Size, Quantity: quantity},
	})
}

// CheckoutCart submits every line of the session cart and, once the order
// is accepted, removes the ordered lines. Lines added meanwhile stay.
func (s *CheckoutService) CheckoutCart(ctx context.Context, sessionID string, req models.CartOrderRequest) (*order.Submission, error) {
	c := s.carts.Get(ctx, sessionID)
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			Product:  line.Product,
			Size:     line.Size,
			Quantity: line.Quantity,
		})
	}

	sub, err := s.submitter.Submit(ctx, req.Customer, items)
	if err != nil {
		return nil, err
	}

	c.RemoveOrdered(ctx, lines)
	s.log.Info("cart checked out", "order_id", sub.Order.ID, "lines", len(items))
	return sub, nil
}
