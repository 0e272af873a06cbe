package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Flame-Codes/jersey-hub-direct/internal/middleware"
	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
	"github.com/Flame-Codes/jersey-hub-direct/internal/order"
	"github.com/Flame-Codes/jersey-hub-direct/internal/service"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	checkout *service.CheckoutService
	log      *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(checkout *service.CheckoutService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		log:      log,
	}
}

// CreateOrder handles POST /api/order
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest

	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Error("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	sub, err := h.checkout.OrderProduct(r.Context(), req)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, sub, h.log)
}

// CheckoutCart handles POST /api/order/cart. The session cart is cleared
// once the order is accepted; a rejected order leaves it untouched.
func (h *OrderHandler) CheckoutCart(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionID(r.Context())
	if sid == "" {
		WriteError(w, http.StatusBadRequest, "Missing cart session", h.log)
		return
	}

	var req models.CartOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Error("failed to decode checkout request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	sub, err := h.checkout.CheckoutCart(r.Context(), sid, req)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, sub, h.log)
}

func (h *OrderHandler) writeSubmitError(w http.ResponseWriter, err error) {
	var verr *order.ValidationError

	switch {
	case errors.As(err, &verr):
		h.log.Info("order rejected", "fields", len(verr.Fields))
		WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "Please fill in all required fields",
			Fields: verr.Fields,
		}, h.log)
	case errors.Is(err, service.ErrInvalidProduct):
		WriteError(w, http.StatusBadRequest, "Invalid product", h.log)
	case errors.Is(err, service.ErrEmptyCart):
		WriteError(w, http.StatusBadRequest, "Cart is empty", h.log)
	default:
		h.log.Error("failed to submit order", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}
