package order

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
)

var (
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidSize     = errors.New("size is not offered for this product")
)

// Field names reported in a ValidationError
const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldAddress = "address"
	FieldItems   = "items"
)

// ValidationError lists the fields that blocked a submission
type ValidationError struct {
	Fields map[string]string
	cause  error
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid order: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

// validate trims the customer, resolves sizes and reports every problem at once
func validate(customer models.Customer, items []models.OrderItem) (models.Customer, []models.OrderItem, error) {
	customer = customer.Trimmed()
	fields := make(map[string]string)
	var cause error

	if customer.Name == "" {
		fields[FieldName] = "name is required"
	}
	if customer.Phone == "" {
		fields[FieldPhone] = "phone is required"
	}
	if customer.Address == "" {
		fields[FieldAddress] = "address is required"
	}

	resolved := make([]models.OrderItem, 0, len(items))
	if len(items) == 0 {
		fields[FieldItems] = ErrEmptyOrder.Error()
		cause = ErrEmptyOrder
	}
	for i, item := range items {
		item.Size = strings.TrimSpace(item.Size)
		if item.Size == "" {
			item.Size = item.Product.DefaultSize()
		}

		switch {
		case item.Quantity <= 0:
			fields[fmt.Sprintf("items[%d].quantity", i)] = ErrInvalidQuantity.Error()
			cause = ErrInvalidQuantity
		case !item.Product.HasSize(item.Size):
			fields[fmt.Sprintf("items[%d].size", i)] = ErrInvalidSize.Error()
			cause = ErrInvalidSize
		}
		resolved = append(resolved, item)
	}

	if len(fields) > 0 {
		return customer, nil, &ValidationError{Fields: fields, cause: cause}
	}
	return customer, resolved, nil
}
