package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Flame-Codes/jersey-hub-direct/internal/order"
)

// ContactResponse carries the manual ordering link
type ContactResponse struct {
	URL string `json:"url"`
}

// ContactHandler serves the WhatsApp fallback link
type ContactHandler struct {
	contact order.Contact
	log     *slog.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contact order.Contact, log *slog.Logger) *ContactHandler {
	return &ContactHandler{
		contact: contact,
		log:     log,
	}
}

// ServeHTTP handles GET /api/contact?product=<name>
func (h *ContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, ContactResponse{
		URL: h.contact.InterestLink(r.URL.Query().Get("product")),
	}, h.log)
}
