package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Flame-Codes/jersey-hub-direct/internal/cart"
	"github.com/Flame-Codes/jersey-hub-direct/internal/middleware"
	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
	"github.com/Flame-Codes/jersey-hub-direct/internal/service"
	"github.com/go-chi/chi/v5"
)

// CartHandler exposes the session cart. Routes must run behind
// middleware.Session.
type CartHandler struct {
	service *service.CartService
	log     *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *service.CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log,
	}
}

func (h *CartHandler) session(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := middleware.SessionID(r.Context())
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Missing cart session", h.log)
		return "", false
	}
	return id, true
}

// lineParams reads {productId} and {size}; sizes may be path-escaped
func lineParams(r *http.Request) (string, string) {
	productID := chi.URLParam(r, "productId")
	size := chi.URLParam(r, "size")
	if unescaped, err := url.PathUnescape(size); err == nil {
		size = unescaped
	}
	return productID, size
}

// Get handles GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, h.service.Get(r.Context(), sid), h.log)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.AddCartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode cart item", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	snapshot, err := h.service.AddItem(r.Context(), sid, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProduct), errors.Is(err, cart.ErrInvalidProduct):
			WriteError(w, http.StatusBadRequest, "Invalid product", h.log)
		case errors.Is(err, cart.ErrInvalidQuantity):
			WriteError(w, http.StatusBadRequest, "Quantity must be positive", h.log)
		case errors.Is(err, cart.ErrInvalidSize):
			WriteError(w, http.StatusBadRequest, "Size is not available for this product", h.log)
		default:
			h.log.Error("failed to add cart item", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusOK, snapshot, h.log)
}

// UpdateItem handles PUT /api/cart/items/{productId}/{size}.
// A quantity of zero or less removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.UpdateCartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode cart update", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	productID, size := lineParams(r)
	WriteJSON(w, http.StatusOK, h.service.UpdateQuantity(r.Context(), sid, productID, size, req.Quantity), h.log)
}

// RemoveItem handles DELETE /api/cart/items/{productId}/{size}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(w, r)
	if !ok {
		return
	}

	productID, size := lineParams(r)
	WriteJSON(w, http.StatusOK, h.service.RemoveItem(r.Context(), sid, productID, size), h.log)
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, h.service.Clear(r.Context(), sid), h.log)
}
