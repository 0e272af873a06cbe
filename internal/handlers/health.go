package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// catalogStatus reports whether the product document loaded
type catalogStatus interface {
	Err() error
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	catalog catalogStatus
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(catalog catalogStatus, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Catalog   string    `json:"catalog"`
}

// ServeHTTP handles health check requests. A catalog that failed to load
// degrades the storefront to empty listings, so the probe still answers 200.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
		Catalog:   "loaded",
	}

	if h.catalog != nil {
		if err := h.catalog.Err(); err != nil {
			response.Status = "degraded"
			response.Catalog = err.Error()
		}
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
