package models

import "github.com/shopspring/decimal"

// CartLine is one (product, size, quantity) entry in a cart.
// The product is a snapshot taken when the line was first added.
type CartLine struct {
	Product  Product `json:"product"`
	Size     string  `json:"size"`
	Quantity int     `json:"quantity"`
}

// LinePrice is the effective price multiplied by the quantity
func (l CartLine) LinePrice() decimal.Decimal {
	return l.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartSnapshot is the read model of a cart with its derived totals
type CartSnapshot struct {
	Lines      []CartLine      `json:"lines"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}
