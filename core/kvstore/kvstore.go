package kvstore

import (
	"context"
	"errors"
)

var (
	// ErrClosed is returned when an operation is attempted on a closed store.
	ErrClosed = errors.New("store is closed")
)

// Store is the persistence boundary for serialized localization data.
// Implementations must be safe for concurrent use. Values are opaque bytes;
// serialization is the caller's concern.
type Store interface {
	// Get retrieves the value for a key. The second return value reports
	// whether the key was present; absence is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value under a key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all keys that begin with the given prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}
