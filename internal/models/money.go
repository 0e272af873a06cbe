package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is the Bangladeshi taka sign prices are displayed with
const CurrencySymbol = "৳"

// FormatTaka renders an amount with the taka sign, dropping a zero fraction
func FormatTaka(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	s = strings.TrimSuffix(s, ".00")
	return CurrencySymbol + s
}
