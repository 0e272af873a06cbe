// Package catalog loads the static product document and derives
// filtered, sorted views over it.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
)

// ErrNotLoaded is reported by Err before the first load attempt
var ErrNotLoaded = errors.New("catalog not loaded")

// Loader fetches the catalog document and serves read-only views of it.
// A failed load leaves an empty catalog and records the error; it never
// panics or blocks later reads.
type Loader struct {
	source string
	client *http.Client
	images ImageResolver
	log    *slog.Logger

	mu         sync.RWMutex
	loaded     bool
	err        error
	categories []string
	products   []models.Product
	byID       map[string]int
}

// Option configures a Loader
type Option func(*Loader)

// WithHTTPClient sets the client used for http(s) sources
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		l.client = client
	}
}

// WithImages sets the bundled image lookup
func WithImages(images ImageResolver) Option {
	return func(l *Loader) {
		l.images = images
	}
}

// WithLogger sets the logger
func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// NewLoader creates a loader for source, a file path or http(s) URL.
// Paths ending in .yaml/.yml are decoded as YAML and .gz is gunzipped.
func NewLoader(source string, opts ...Option) *Loader {
	l := &Loader{
		source: source,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the catalog on first call; later calls return the first result
func (l *Loader) Load(ctx context.Context) error {
	l.mu.RLock()
	loaded, err := l.loaded, l.err
	l.mu.RUnlock()
	if loaded {
		return err
	}
	return l.Reload(ctx)
}

// Reload fetches the catalog again and replaces the current one.
// On error the catalog becomes empty.
func (l *Loader) Reload(ctx context.Context) error {
	start := time.Now()
	doc, err := fetch(ctx, l.client, l.source)
	if err != nil {
		err = fmt.Errorf("load catalog from %s: %w", l.source, err)
		l.log.Error("failed to load catalog", "source", l.source, "error", err)
		l.set(models.Catalog{}, err)
		return err
	}

	doc = l.prepare(doc)
	l.set(doc, nil)
	l.log.Info("catalog loaded",
		"source", l.source,
		"products", len(doc.Products),
		"categories", len(doc.Categories),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// prepare drops unusable products, resolves images and derives the
// category list when the document has none.
func (l *Loader) prepare(doc models.Catalog) models.Catalog {
	products := make([]models.Product, 0, len(doc.Products))
	seen := make(map[string]bool, len(doc.Products))
	for _, p := range doc.Products {
		if p.ID == "" {
			l.log.Warn("skipping product without id", "name", p.Name)
			continue
		}
		if seen[p.ID] {
			l.log.Warn("skipping duplicate product id", "id", p.ID)
			continue
		}
		if !p.Price.IsPositive() {
			l.log.Warn("product has non-positive price", "id", p.ID, "price", p.Price.String())
		}
		if p.Discount != p.DiscountPercent() {
			l.log.Warn("clamping product discount", "id", p.ID, "discount", p.Discount)
			p.Discount = p.DiscountPercent()
		}
		seen[p.ID] = true
		p.Image = l.images.Resolve(p)
		products = append(products, p)
	}

	categories := doc.Categories
	if len(categories) == 0 {
		known := make(map[string]bool)
		for _, p := range products {
			if p.Category != "" && !known[p.Category] {
				known[p.Category] = true
				categories = append(categories, p.Category)
			}
		}
	}

	return models.Catalog{Categories: categories, Products: products}
}

func (l *Loader) set(doc models.Catalog, err error) {
	byID := make(map[string]int, len(doc.Products))
	for i, p := range doc.Products {
		byID[p.ID] = i
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.loaded = true
	l.err = err
	l.categories = doc.Categories
	l.products = doc.Products
	l.byID = byID
}

// Err returns the error of the last load attempt
func (l *Loader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if !l.loaded {
		return ErrNotLoaded
	}
	return l.err
}

// Categories returns the category list
func (l *Loader) Categories() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return append([]string{}, l.categories...)
}

// Products returns every product in catalog order
func (l *Loader) Products() []models.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return append([]models.Product{}, l.products...)
}

// Product looks up a product by id
func (l *Loader) Product(id string) (models.Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return l.products[i], true
}

// Featured returns the featured products in catalog order
func (l *Loader) Featured() []models.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()

	featured := make([]models.Product, 0)
	for _, p := range l.products {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured
}

// View applies f to the current catalog
func (l *Loader) View(f Filter) []models.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Apply(l.products, f)
}
