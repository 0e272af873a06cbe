package order

import (
	"net/url"
	"testing"

	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContact_Links(t *testing.T) {
	c := Contact{Number: "+880 1952-081184", ShopName: "JerseyHub"}

	assert.Equal(t, "https://wa.me/8801952081184", c.Link())
	assert.Equal(t, "https://wa.me/8801952081184", c.InterestLink("  "))

	interest, err := url.Parse(c.InterestLink("Argentina World Cup & Away"))
	require.NoError(t, err)
	assert.Equal(t, "Hi! I'm interested in ordering: Argentina World Cup & Away", interest.Query().Get("text"))

	order := models.Order{ID: "01ABC", Total: decimal.RequireFromString("2549.5")}
	confirm, err := url.Parse(c.OrderLink(order))
	require.NoError(t, err)
	text := confirm.Query().Get("text")
	assert.Contains(t, text, "JerseyHub")
	assert.Contains(t, text, "Order ID: 01ABC")
	assert.Contains(t, text, "Order Total: ৳2549.50")
}

func TestContact_DefaultShopName(t *testing.T) {
	link, err := url.Parse(Contact{Number: "1"}.OrderLink(models.Order{ID: "X", Total: decimal.NewFromInt(10)}))
	require.NoError(t, err)
	assert.Contains(t, link.Query().Get("text"), "order on JerseyHub")
}
