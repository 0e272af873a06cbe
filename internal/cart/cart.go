// Package cart implements the per-session shopping cart aggregate.
//
// A Cart is the only writer of its storage key. Every mutating method
// saves the full line collection before returning, on every path,
// including no-op removals. An empty cart deletes its key instead.
// Storage failures are logged and never surface to the caller.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
	"github.com/Flame-Codes/jersey-hub-direct/internal/storage"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidSize     = errors.New("size is not offered for this product")
	ErrInvalidProduct  = errors.New("product id is required")
)

// Cart owns the lines of one shopping session
type Cart struct {
	mu    sync.Mutex
	lines []models.CartLine
	store storage.Store
	key   string
	log   *slog.Logger
}

// New rehydrates the cart stored under key. Missing or corrupt data gives
// an empty cart.
func New(ctx context.Context, store storage.Store, key string, log *slog.Logger) *Cart {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	c := &Cart{
		store: store,
		key:   key,
		log:   log,
	}
	c.lines = c.load(ctx)
	return c
}

func (c *Cart) load(ctx context.Context) []models.CartLine {
	if c.store == nil {
		return nil
	}

	data, err := c.store.Get(ctx, c.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		c.log.Warn("failed to read cart, starting empty", "key", c.key, "error", err)
		return nil
	}

	var saved []models.CartLine
	if err := json.Unmarshal(data, &saved); err != nil {
		c.log.Warn("corrupt cart data, starting empty", "key", c.key, "error", err)
		return nil
	}
	return normalize(saved)
}

// normalize merges duplicate (product, size) lines and drops lines that
// could not have been produced by the mutators.
func normalize(saved []models.CartLine) []models.CartLine {
	lines := make([]models.CartLine, 0, len(saved))
	index := make(map[lineKey]int, len(saved))
	for _, line := range saved {
		if line.Quantity <= 0 || line.Product.ID == "" || line.Size == "" {
			continue
		}
		k := lineKey{line.Product.ID, line.Size}
		if i, ok := index[k]; ok {
			lines[i].Quantity += line.Quantity
			continue
		}
		index[k] = len(lines)
		lines = append(lines, line)
	}
	return lines
}

type lineKey struct {
	productID string
	size      string
}

// persist must be called with c.mu held
func (c *Cart) persist(ctx context.Context) {
	if c.store == nil {
		return
	}

	// an empty cart reads back the same as a missing key
	if len(c.lines) == 0 {
		if err := c.store.Delete(ctx, c.key); err != nil {
			c.log.Error("failed to drop empty cart", "key", c.key, "error", err)
		}
		return
	}

	data, err := json.Marshal(c.lines)
	if err != nil {
		c.log.Error("failed to encode cart", "key", c.key, "error", err)
		return
	}
	if err := c.store.Put(ctx, c.key, data); err != nil {
		c.log.Error("failed to save cart", "key", c.key, "error", err)
	}
}

func (c *Cart) find(productID, size string) int {
	for i, line := range c.lines {
		if line.Product.ID == productID && line.Size == size {
			return i
		}
	}
	return -1
}

// Add increments the (product, size) line by quantity, creating it if needed.
// Stock is advisory and is not checked.
func (c *Cart) Add(ctx context.Context, product models.Product, size string, quantity int) error {
	size = strings.TrimSpace(size)
	switch {
	case product.ID == "":
		return ErrInvalidProduct
	case quantity <= 0:
		return ErrInvalidQuantity
	case !product.HasSize(size):
		return ErrInvalidSize
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.persist(ctx)

	if i := c.find(product.ID, size); i >= 0 {
		c.lines[i].Quantity += quantity
		return nil
	}
	c.lines = append(c.lines, models.CartLine{Product: product, Size: size, Quantity: quantity})
	return nil
}

// Remove deletes the matching line; removing an absent line is a no-op
func (c *Cart) Remove(ctx context.Context, productID, size string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.persist(ctx)

	c.remove(productID, size)
}

func (c *Cart) remove(productID, size string) {
	if i := c.find(productID, size); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// UpdateQuantity sets the line quantity; zero or less removes the line
func (c *Cart) UpdateQuantity(ctx context.Context, productID, size string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.persist(ctx)

	if quantity <= 0 {
		c.remove(productID, size)
		return
	}
	if i := c.find(productID, size); i >= 0 {
		c.lines[i].Quantity = quantity
	}
}

// Clear empties the cart
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.persist(ctx)

	c.lines = nil
}

// RemoveOrdered subtracts each line of ordered from the cart, dropping
// lines that reach zero. Lines added after ordered was taken are kept.
func (c *Cart) RemoveOrdered(ctx context.Context, ordered []models.CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.persist(ctx)

	for _, o := range ordered {
		i := c.find(o.Product.ID, o.Size)
		if i < 0 {
			continue
		}
		if c.lines[i].Quantity <= o.Quantity {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			continue
		}
		c.lines[i].Quantity -= o.Quantity
	}
}

// Lines returns a copy of the current lines in insertion order
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]models.CartLine(nil), c.lines...)
}

// TotalItems is the sum of all line quantities
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return totalItems(c.lines)
}

// TotalPrice is the sum of effective price times quantity over all lines
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	return totalPrice(c.lines)
}

// Snapshot returns the lines and totals computed from one consistent state
func (c *Cart) Snapshot() models.CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := append([]models.CartLine{}, c.lines...)
	return models.CartSnapshot{
		Lines:      lines,
		TotalItems: totalItems(lines),
		TotalPrice: totalPrice(lines),
	}
}

func totalItems(lines []models.CartLine) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}

func totalPrice(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LinePrice())
	}
	return total
}
