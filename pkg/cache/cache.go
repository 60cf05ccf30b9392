package cache

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by Get when no value exists for the id.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache is the capability the fortune service needs from the external
// key-value layer. Implementations must be safe for concurrent use; every
// call is independent and carries its own context.
//
// Errors other than ErrCacheMiss indicate the layer itself failed. Callers
// treat any error as "no cache value" and fall back to local state.
type Cache interface {
	// Get returns the message stored under id, or ErrCacheMiss.
	Get(ctx context.Context, id string) (string, error)

	// Set stores message under id, replacing any previous value.
	Set(ctx context.Context, id, message string) error

	// ListAll returns every id -> message pair currently stored.
	ListAll(ctx context.Context) (map[string]string, error)
}
