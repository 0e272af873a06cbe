package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Flame-Codes/jersey-hub-direct/internal/order"
	"github.com/Flame-Codes/jersey-hub-direct/pkg/logger"
)

func TestContactHandler(t *testing.T) {
	h := NewContactHandler(order.Contact{Number: "01952081184"}, logger.New("error"))

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"plain link", "", "https://wa.me/01952081184"},
		{"interest link", "?product=Brazil+Retro", "https://wa.me/01952081184?text=Hi%21%20I%27m%20interested%20in%20ordering%3A%20Brazil%20Retro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/contact"+tt.query, nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			var response ContactResponse
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response.URL != tt.want {
				t.Errorf("url = %s, want %s", response.URL, tt.want)
			}
		})
	}
}

type stubCatalog struct{ err error }

func (s stubCatalog) Err() error { return s.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		catalog    catalogStatus
		wantStatus string
	}{
		{"healthy", stubCatalog{}, "healthy"},
		{"catalog failed", stubCatalog{err: errors.New("fetch catalog: 404 Not Found")}, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.catalog, logger.New("error"))

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("expected status 200, got %d", w.Code)
			}

			var response HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", response.Status, tt.wantStatus)
			}
		})
	}
}
