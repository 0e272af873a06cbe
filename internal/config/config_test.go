package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "API_KEYS", "LOG_LEVEL", "CATALOG_SOURCE", "CART_STORAGE_DIR", "CART_COOKIE",
		"CART_COOKIE_SECURE", "CART_MAX_SESSIONS", "RELAY_MODES", "RELAY_TIMEOUT",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "WEBHOOK_URL", "WHATSAPP_NUMBER",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Empty(t, cfg.Auth.APIKeys)
	assert.Equal(t, "cart_session", cfg.Cart.CookieName)
	assert.False(t, cfg.Cart.CookieSecure)
	assert.Equal(t, "data/carts", cfg.Cart.StorageDir)
	assert.Equal(t, 10000, cfg.Cart.MaxSessions)
	assert.Empty(t, cfg.Relay.Modes)
	assert.Equal(t, 15*time.Second, cfg.Relay.Timeout)
	assert.Equal(t, "8801952081184", cfg.Contact.WhatsAppNumber)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("API_KEYS", "KeyOne, keyTwo")
	t.Setenv("RELAY_MODES", "Telegram,queue")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100")
	t.Setenv("RELAY_TIMEOUT", "20")
	t.Setenv("CATALOG_TIMEOUT", "3s")
	t.Setenv("CART_STORAGE_DIR", "/tmp/carts")
	t.Setenv("CART_COOKIE_SECURE", "true")
	t.Setenv("CART_MAX_SESSIONS", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"KeyOne", "keyTwo"}, cfg.Auth.APIKeys)
	assert.Equal(t, []string{RelayTelegram, RelayQueue}, cfg.Relay.Modes)
	assert.Equal(t, 20*time.Second, cfg.Relay.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "/tmp/carts", cfg.Cart.StorageDir)
	assert.True(t, cfg.Cart.CookieSecure)
	assert.Equal(t, 500, cfg.Cart.MaxSessions)
	assert.True(t, cfg.SendOrderEnabled())
}

func TestLoad_RequiresAPIKeyForForwarding(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"telegram send-order", map[string]string{"TELEGRAM_BOT_TOKEN": "123:abc", "TELEGRAM_CHAT_ID": "-100"}},
		{"webhook relay", map[string]string{"RELAY_MODES": "webhook", "WEBHOOK_URL": "http://localhost/api/send-order"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "API_KEYS")

			t.Setenv("API_KEYS", "shop-secret")
			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, []string{"shop-secret"}, cfg.Auth.APIKeys)
		})
	}
}

func TestLoad_MemoryStorage(t *testing.T) {
	clearEnv(t)
	t.Setenv("CART_STORAGE_DIR", MemoryStorage)
	t.Setenv("CATALOG_SOURCE", SeedCatalog)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, MemoryStorage, cfg.Cart.StorageDir)
	assert.Equal(t, SeedCatalog, cfg.Catalog.Source)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Catalog:  CatalogConfig{Source: "products.json"},
			Cart:     CartConfig{StorageDir: MemoryStorage, CookieName: "cart_session", MaxSessions: 10},
			Relay:    RelayConfig{Timeout: time.Second},
			Contact:  ContactConfig{WhatsAppNumber: "8801952081184"},
			LogLevel: "info",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Server.Port = "" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"unknown relay mode", func(c *Config) { c.Relay.Modes = []string{"sms"} }, true},
		{"telegram without token", func(c *Config) { c.Relay.Modes = []string{RelayTelegram} }, true},
		{"webhook without url", func(c *Config) { c.Relay.Modes = []string{RelayWebhook} }, true},
		{"webhook configured", func(c *Config) {
			c.Auth.APIKeys = []string{"k"}
			c.Relay.Modes = []string{RelayWebhook}
			c.Relay.WebhookURL = "http://localhost/api/send-order"
		}, false},
		{"relay without api key", func(c *Config) {
			c.Relay.Modes = []string{RelayWebhook}
			c.Relay.WebhookURL = "http://localhost/api/send-order"
		}, true},
		{"send-order forwarding without api key", func(c *Config) {
			c.Relay.TelegramToken = "123:abc"
			c.Relay.TelegramChatID = "-100"
		}, true},
		{"empty storage dir", func(c *Config) { c.Cart.StorageDir = "" }, true},
		{"zero max sessions", func(c *Config) { c.Cart.MaxSessions = 0 }, true},
		{"zero relay timeout", func(c *Config) { c.Relay.Timeout = 0 }, true},
		{"missing whatsapp number", func(c *Config) { c.Contact.WhatsAppNumber = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
