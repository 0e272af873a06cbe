package relay

import (
	"fmt"
	"strings"
	"time"

	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
	"github.com/shopspring/decimal"
)

// markdownSpecial lists the characters Telegram MarkdownV2 requires escaped
const markdownSpecial = "_*[]()~`>#+-=|{}.!\\"

// EscapeMarkdown escapes s for use in a MarkdownV2 message
func EscapeMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(markdownSpecial, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// dhaka is the shop's local time zone. Asia/Dhaka has no DST, so a fixed
// offset is used when the tz database is unavailable.
var dhaka = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Dhaka"); err == nil {
		return loc
	}
	return time.FixedZone("BST", 6*60*60)
}()

// FormatOrderMessage renders the MarkdownV2 operator message for one line
func FormatOrderMessage(p models.RelayPayload, at time.Time) string {
	category := "N/A"
	if p.Category != "" {
		category = EscapeMarkdown(p.Category)
	}

	var b strings.Builder
	b.WriteString("🛒 *New Order Received\\!*\n\n")
	if p.OrderID != "" {
		fmt.Fprintf(&b, "🧾 Order: %s\n\n", EscapeMarkdown(p.OrderID))
	}
	b.WriteString("👤 *Customer Details:*\n━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "📛 Name: %s\n", EscapeMarkdown(p.Name))
	fmt.Fprintf(&b, "📞 Phone: %s\n", EscapeMarkdown(p.Phone))
	fmt.Fprintf(&b, "📍 Address: %s\n\n", EscapeMarkdown(p.Address))
	b.WriteString("🏷️ *Product Details:*\n━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "👕 Product: %s\n", EscapeMarkdown(p.ProductName))
	fmt.Fprintf(&b, "📂 Category: %s\n", category)
	fmt.Fprintf(&b, "📏 Size: %s\n", EscapeMarkdown(p.Size))
	fmt.Fprintf(&b, "🔢 Quantity: %d\n", p.Quantity)
	fmt.Fprintf(&b, "💰 Price: %s\n\n", EscapeMarkdown(models.FormatTaka(decimal.NewFromFloat(p.Price))))
	fmt.Fprintf(&b, "⏰ Time: %s\n", EscapeMarkdown(at.In(dhaka).Format("02 Jan 2006, 15:04")))
	b.WriteString("━━━━━━━━━━━━━━━━━━\n")
	return b.String()
}
