package storage

import (
	"context"
)

// Store is the key/value capability used to persist the session token.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value for key. The bool is false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Closer is implemented by stores holding external resources
type Closer interface {
	Close() error
}

// Close releases the store resources when it holds any.
func Close(s Store) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}
