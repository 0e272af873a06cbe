package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
	"github.com/Flame-Codes/jersey-hub-direct/internal/relay"
	"github.com/microcosm-cc/bluemonday"
)

// SendOrderRequest is the relay payload accepted by POST /api/send-order.
// Quantity is decoded as a number so fractional values can be reported.
type SendOrderRequest struct {
	OrderID     string  `json:"orderId"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	ProductName string  `json:"productName"`
	Category    string  `json:"category"`
	Quantity    float64 `json:"quantity"`
	Size        string  `json:"size"`
	Price       float64 `json:"price"`
}

// SendOrderResponse is the success body of POST /api/send-order
type SendOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SendOrderHandler validates relay payloads and forwards them to the
// configured notifier, usually Telegram
type SendOrderHandler struct {
	notifier relay.Notifier
	policy   *bluemonday.Policy
	log      *slog.Logger
}

// NewSendOrderHandler creates a new send-order handler. A nil notifier
// answers every request with a configuration error.
func NewSendOrderHandler(notifier relay.Notifier, log *slog.Logger) *SendOrderHandler {
	return &SendOrderHandler{
		notifier: notifier,
		policy:   bluemonday.StrictPolicy(),
		log:      log,
	}
}

// ServeHTTP handles POST /api/send-order
func (h *SendOrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.notifier == nil {
		h.log.Error("send-order called without a notification channel")
		WriteError(w, http.StatusInternalServerError, "Server configuration error", h.log)
		return
	}

	var req SendOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode send-order request", "error", err)
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid order data",
			Details: []string{decodeMessage(err)},
		}, h.log)
		return
	}

	payload, details := h.validate(req)
	if len(details) > 0 {
		h.log.Info("send-order validation failed", "details", details)
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid order data",
			Details: details,
		}, h.log)
		return
	}

	if err := h.notifier.Notify(r.Context(), payload); err != nil {
		h.log.Error("failed to forward order", "order_id", payload.OrderID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to send notification", h.log)
		return
	}

	h.log.Info("order notification sent", "order_id", payload.OrderID, "product", payload.ProductName)
	WriteJSON(w, http.StatusOK, SendOrderResponse{
		Success: true,
		Message: "Order submitted successfully",
	}, h.log)
}

// clean strips markup; the result is plain text, so entities are decoded
// back before escaping for the notifier
func (h *SendOrderHandler) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(h.policy.Sanitize(s)))
}

// validate applies the payload limits and returns every violation message
func (h *SendOrderHandler) validate(req SendOrderRequest) (models.RelayPayload, []string) {
	p := models.RelayPayload{
		OrderID:     h.clean(req.OrderID),
		Name:        h.clean(req.Name),
		Phone:       strings.TrimSpace(req.Phone),
		Address:     h.clean(req.Address),
		ProductName: h.clean(req.ProductName),
		Category:    h.clean(req.Category),
		Size:        h.clean(req.Size),
		Price:       req.Price,
	}

	var details []string
	check := func(ok bool, msg string) {
		if !ok {
			details = append(details, msg)
		}
	}
	length := utf8.RuneCountInString

	check(length(p.Name) >= 2, "Name must be at least 2 characters")
	check(length(p.Name) <= 100, "Name too long")
	check(length(p.Phone) >= 10, "Phone must be at least 10 digits")
	check(length(p.Phone) <= 15, "Phone too long")
	check(length(p.Address) >= 10, "Address must be at least 10 characters")
	check(length(p.Address) <= 300, "Address too long")
	check(length(p.ProductName) >= 1, "Product name required")
	check(length(p.ProductName) <= 200, "Product name too long")
	check(length(p.Category) <= 100, "Category too long")
	check(length(p.Size) >= 1, "Size required")
	check(length(p.Size) <= 20, "Size too long")

	switch {
	case req.Quantity != math.Trunc(req.Quantity):
		details = append(details, "Quantity must be an integer")
	case req.Quantity <= 0:
		details = append(details, "Quantity must be positive")
	case req.Quantity > 100:
		details = append(details, "Max quantity is 100")
	default:
		p.Quantity = int(req.Quantity)
	}

	check(req.Price > 0, "Price must be positive")

	return p, details
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("Expected %s for %s, received %s", typeErr.Type.Kind(), typeErr.Field, typeErr.Value)
	}
	if errors.Is(err, errEmptyBody) {
		return "Request body is empty"
	}
	return "Malformed JSON body"
}
