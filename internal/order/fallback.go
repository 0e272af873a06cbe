package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
)

// Contact builds wa.me deep links for manual order confirmation
type Contact struct {
	// Number is the WhatsApp number in international format, e.g. 8801952081184
	Number   string
	ShopName string
}

func (c Contact) base() string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, c.Number)
	return "https://wa.me/" + digits
}

func (c Contact) link(message string) string {
	if message == "" {
		return c.base()
	}
	// wa.me does not decode "+" as a space
	return c.base() + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

// Link opens a chat without a pre-filled message
func (c Contact) Link() string {
	return c.base()
}

// InterestLink pre-fills a generic interest message for productName
func (c Contact) InterestLink(productName string) string {
	if strings.TrimSpace(productName) == "" {
		return c.base()
	}
	return c.link(fmt.Sprintf("Hi! I'm interested in ordering: %s", strings.TrimSpace(productName)))
}

// OrderLink pre-fills a confirmation message with the order reference and total
func (c Contact) OrderLink(o models.Order) string {
	shop := c.ShopName
	if shop == "" {
		shop = "JerseyHub"
	}
	return c.link(fmt.Sprintf("✅ Hi! I just placed an order on %s. Order ID: %s. Order Total: %s. Please confirm my order.",
		shop, o.ID, models.FormatTaka(o.Total)))
}
