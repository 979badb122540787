package port

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when nothing is stored under the key.
var ErrKeyNotFound = errors.New("key not found")

type KeyValueStore interface {
	// Get returns the raw value stored under key, or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value stored under key
	Set(ctx context.Context, key string, value []byte) error

	// SetIfAbsent writes value only when key is unset, returns false if it already exists
	SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error)

	// Delete removes the key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	Close() error
}
