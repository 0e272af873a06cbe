package cart

import (
	"container/list"
	"context"
	"log/slog"
	"sync"

	"github.com/Flame-Codes/jersey-hub-direct/internal/storage"
)

// KeyPrefix namespaces cart entries in the storage backend
const KeyPrefix = "cart:"

// DefaultMaxCarts bounds how many carts Sessions keeps in memory
const DefaultMaxCarts = 10000

// Sessions hands out one Cart per session id, rehydrating it on first use.
// It is a cache over the store: past the limit the least recently used cart
// is dropped, and a later Get rehydrates it from its saved lines.
type Sessions struct {
	mu    sync.Mutex
	carts map[string]*list.Element
	order *list.List // front is most recently used
	max   int
	store storage.Store
	log   *slog.Logger
}

type entry struct {
	sessionID string
	cart      *Cart
}

// SessionsOption configures Sessions
type SessionsOption func(*Sessions)

// WithMaxCarts sets the number of carts held in memory; n <= 0 keeps the default
func WithMaxCarts(n int) SessionsOption {
	return func(s *Sessions) {
		if n > 0 {
			s.max = n
		}
	}
}

// NewSessions creates a registry backed by store
func NewSessions(store storage.Store, log *slog.Logger, opts ...SessionsOption) *Sessions {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Sessions{
		carts: make(map[string]*list.Element),
		order: list.New(),
		max:   DefaultMaxCarts,
		store: store,
		log:   log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the cart for sessionID
func (s *Sessions) Get(ctx context.Context, sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.carts[sessionID]; ok {
		s.order.MoveToFront(el)
		return el.Value.(*entry).cart
	}

	c := New(ctx, s.store, KeyPrefix+sessionID, s.log.With("session", sessionID))
	s.carts[sessionID] = s.order.PushFront(&entry{sessionID: sessionID, cart: c})

	for s.order.Len() > s.max {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.carts, oldest.Value.(*entry).sessionID)
	}
	return c
}

// Len reports how many carts are held in memory
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.order.Len()
}
