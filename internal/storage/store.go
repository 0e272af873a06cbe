// Package storage holds durable per-key blobs such as serialized carts.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no value is stored under a key
	ErrNotFound = errors.New("storage: key not found")
	// ErrInvalidKey is returned for keys that cannot be stored
	ErrInvalidKey = errors.New("storage: invalid key")
)

// Store reads and overwrites whole values by key
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
