package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Flame-Codes/jersey-hub-direct/internal/repository"
	"github.com/Flame-Codes/jersey-hub-direct/internal/service"
	"github.com/go-chi/chi/v5"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// ListProducts handles GET /api/product
// Query: category, q, minPrice, maxPrice, sort (featured, price-low,
// price-high, newest). An unavailable catalog answers 200 with an empty
// list and the load error.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		h.logger.Warn("invalid product filter", "query", r.URL.RawQuery, "error", err)
		WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	list := h.service.ListProducts(r.Context(), filter)
	if list.Error != "" {
		h.logger.Error("catalog unavailable", "error", list.Error)
	}

	WriteJSON(w, http.StatusOK, list, h.logger)
}

// FeaturedProducts handles GET /api/product/featured
func (h *ProductHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.service.FeaturedProducts(r.Context()), h.logger)
}

// Categories handles GET /api/category
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.logger.Error("catalog unavailable", "error", err)
	}

	WriteJSON(w, http.StatusOK, categories, h.logger)
}

// GetProduct handles GET /api/product/{productId}
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Product not found
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	if productID == "" {
		h.logger.Warn("product ID is required")
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			h.logger.Info("product not found", "productId", productID)
			WriteError(w, http.StatusNotFound, "Product not found", h.logger)
			return
		}

		h.logger.Error("failed to get product", "productId", productID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}
