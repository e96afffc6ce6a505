package localstore

import "context"

// Store is a namespaced string key-value store with the semantics of a
// browser's localStorage. Each device gets its own namespace.
type Store interface {
	// GetItem returns the value under key and whether it exists.
	GetItem(ctx context.Context, namespace, key string) (string, bool, error)
	// SetItem replaces the value under key.
	SetItem(ctx context.Context, namespace, key, value string) error
	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, namespace, key string) error
}
