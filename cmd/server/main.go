package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Flame-Codes/jersey-hub-direct/internal/cart"
	"github.com/Flame-Codes/jersey-hub-direct/internal/catalog"
	"github.com/Flame-Codes/jersey-hub-direct/internal/config"
	"github.com/Flame-Codes/jersey-hub-direct/internal/handlers"
	"github.com/Flame-Codes/jersey-hub-direct/internal/middleware"
	"github.com/Flame-Codes/jersey-hub-direct/internal/order"
	"github.com/Flame-Codes/jersey-hub-direct/internal/relay"
	"github.com/Flame-Codes/jersey-hub-direct/internal/repository"
	"github.com/Flame-Codes/jersey-hub-direct/internal/service"
	"github.com/Flame-Codes/jersey-hub-direct/internal/storage"
	"github.com/Flame-Codes/jersey-hub-direct/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting jersey storefront api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// Load the catalog once; a failure degrades to empty listings
	var (
		loader      *catalog.Loader
		productRepo repository.ProductRepository
	)
	if cfg.Catalog.Source == config.SeedCatalog {
		log.Info("serving the built-in seed catalog")
		productRepo = repository.NewInMemoryProductRepository()
	} else {
		loader = catalog.NewLoader(cfg.Catalog.Source,
			catalog.WithImages(catalog.DefaultImages),
			catalog.WithLogger(log),
		)
		loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Catalog.Timeout)
		if err := loader.Load(loadCtx); err != nil {
			log.Error("failed to load catalog, serving empty listings", "source", cfg.Catalog.Source, "error", err)
		}
		cancelLoad()
		productRepo = repository.NewCatalogProductRepository(loader)
	}

	// Cart storage
	var store storage.Store
	if cfg.Cart.StorageDir == config.MemoryStorage {
		log.Warn("carts are kept in memory and lost on restart")
		store = storage.NewMemoryStore()
	} else {
		fileStore, err := storage.NewFileStore(cfg.Cart.StorageDir)
		if err != nil {
			log.Error("failed to open cart storage", "dir", cfg.Cart.StorageDir, "error", err)
			os.Exit(1)
		}
		store = fileStore
	}
	sessions := cart.NewSessions(store, log, cart.WithMaxCarts(cfg.Cart.MaxSessions))

	// Order relay
	notifier, closers := buildNotifier(cfg.Relay, log)
	contact := order.Contact{Number: cfg.Contact.WhatsAppNumber, ShopName: cfg.Contact.ShopName}
	submitter := order.NewSubmitter(notifier, contact,
		order.WithLogger(log),
		order.WithRelayTimeout(cfg.Relay.Timeout),
	)

	// The send-order endpoint always forwards straight to Telegram
	var sendOrderNotifier relay.Notifier
	if cfg.SendOrderEnabled() {
		sendOrderNotifier = relay.NewTelegram(cfg.Relay.TelegramAPIBase, cfg.Relay.TelegramToken, cfg.Relay.TelegramChatID, nil)
	}

	// Initialize services
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(productRepo, sessions)
	checkoutService := service.NewCheckoutService(productRepo, sessions, submitter, log)

	// Initialize handlers
	var healthHandler *handlers.HealthHandler
	if loader != nil {
		healthHandler = handlers.NewHealthHandler(loader, log)
	} else {
		healthHandler = handlers.NewHealthHandler(nil, log)
	}
	productHandler := handlers.NewProductHandler(productService, log)
	cartHandler := handlers.NewCartHandler(cartService, log)
	orderHandler := handlers.NewOrderHandler(checkoutService, log)
	contactHandler := handlers.NewContactHandler(contact, log)
	sendOrderHandler := handlers.NewSendOrderHandler(sendOrderNotifier, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Client-Info", middleware.APIKeyHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Catalog endpoints
		r.Get("/category", productHandler.Categories)
		r.Get("/product", productHandler.ListProducts)
		r.Get("/product/featured", productHandler.FeaturedProducts)
		r.Get("/product/{productId}", productHandler.GetProduct)
		r.Get("/contact", contactHandler.ServeHTTP)

		// Session endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(cfg.Cart.CookieName, cfg.Cart.CookieSecure))

			r.Get("/cart", cartHandler.Get)
			r.Delete("/cart", cartHandler.Clear)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{productId}/{size}", cartHandler.UpdateItem)
			r.Delete("/cart/items/{productId}/{size}", cartHandler.RemoveItem)

			r.Post("/order", orderHandler.CreateOrder)
			r.Post("/order/cart", orderHandler.CheckoutCart)
		})

		// Protected endpoints - require API key
		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Auth))

			r.Post("/send-order", sendOrderHandler.ServeHTTP)
			if loader != nil {
				r.Post("/catalog/reload", handlers.NewCatalogHandler(loader, log).Reload)
			}
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// SIGHUP reloads the catalog document
	if loader != nil {
		go reloadOnHangup(loader, cfg.Catalog.Timeout, log)
	}

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Let in-flight order notifications finish
	if err := submitter.Wait(ctx); err != nil {
		log.Warn("order relays still pending at shutdown", "error", err)
	}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Warn("failed to close relay", "error", err)
		}
	}

	log.Info("server stopped gracefully")
}

func reloadOnHangup(loader *catalog.Loader, timeout time.Duration, log *slog.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	for range hup {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		if err := loader.Reload(ctx); err != nil {
			log.Error("catalog reload failed", "error", err)
		} else {
			log.Info("catalog reloaded", "products", len(loader.Products()))
		}
		cancel()
	}
}

// buildNotifier assembles the configured relay modes. An unreachable queue
// is skipped so the storefront still accepts orders.
func buildNotifier(cfg config.RelayConfig, log *slog.Logger) (relay.Notifier, []io.Closer) {
	var (
		notifiers relay.Multi
		closers   []io.Closer
	)

	for _, mode := range cfg.Modes {
		switch mode {
		case config.RelayTelegram:
			notifiers = append(notifiers, relay.NewTelegram(cfg.TelegramAPIBase, cfg.TelegramToken, cfg.TelegramChatID, nil))
		case config.RelayWebhook:
			notifiers = append(notifiers, relay.NewWebhook(cfg.WebhookURL, cfg.WebhookAPIKey, nil))
		case config.RelayQueue:
			q, err := relay.DialQueue(cfg.AMQPURL, cfg.AMQPQueue)
			if err != nil {
				log.Error("order queue unavailable, relay mode skipped", "queue", cfg.AMQPQueue, "error", err)
				continue
			}
			notifiers = append(notifiers, q)
			closers = append(closers, q)
		}
		log.Info("order relay enabled", "mode", mode)
	}

	switch len(notifiers) {
	case 0:
		log.Warn("no order relay configured, notifications are only logged")
		return relay.Discard{Log: log}, closers
	case 1:
		return notifiers[0], closers
	default:
		return notifiers, closers
	}
}
