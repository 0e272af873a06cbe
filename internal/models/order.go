package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Customer holds the contact fields required to place an order
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field
func (c Customer) Trimmed() Customer {
	return Customer{
		Name:    strings.TrimSpace(c.Name),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
	}
}

// OrderItem is a product selection handed to order submission
type OrderItem struct {
	Product  Product `json:"product"`
	Size     string  `json:"size"`
	Quantity int     `json:"quantity"`
}

// OrderLine is a priced row of a submitted order
type OrderLine struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Category    string          `json:"category"`
	Size        string          `json:"size"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Price       decimal.Decimal `json:"price"`
}

// Order is the composed order returned once a submission is accepted.
// It is not stored anywhere.
type Order struct {
	ID        string          `json:"id"`
	Customer  Customer        `json:"customer"`
	Lines     []OrderLine     `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

// RelayPayload is the flat per-line message sent to the order relay
type RelayPayload struct {
	OrderID     string  `json:"orderId,omitempty"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	ProductName string  `json:"productName"`
	Category    string  `json:"category,omitempty"`
	Quantity    int     `json:"quantity"`
	Size        string  `json:"size"`
	Price       float64 `json:"price"`
}

// RelayPayloads flattens the order into one payload per line
func (o Order) RelayPayloads() []RelayPayload {
	payloads := make([]RelayPayload, 0, len(o.Lines))
	for _, line := range o.Lines {
		payloads = append(payloads, RelayPayload{
			OrderID:     o.ID,
			Name:        o.Customer.Name,
			Phone:       o.Customer.Phone,
			Address:     o.Customer.Address,
			ProductName: line.ProductName,
			Category:    line.Category,
			Quantity:    line.Quantity,
			Size:        line.Size,
			Price:       line.Price.InexactFloat64(),
		})
	}
	return payloads
}
