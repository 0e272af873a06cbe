package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
)

// catalogReloader refetches the product document
type catalogReloader interface {
	Reload(ctx context.Context) error
	Products() []models.Product
}

// ReloadResponse reports the catalog after a reload
type ReloadResponse struct {
	Products int `json:"products"`
}

// CatalogHandler handles catalog administration
type CatalogHandler struct {
	catalog catalogReloader
	log     *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog catalogReloader, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		log:     log,
	}
}

// Reload handles POST /api/catalog/reload. A failed fetch leaves the
// catalog empty and answers 502.
func (h *CatalogHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Reload(r.Context()); err != nil {
		WriteError(w, http.StatusBadGateway, "Failed to reload catalog", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, ReloadResponse{Products: len(h.catalog.Products())}, h.log)
}
