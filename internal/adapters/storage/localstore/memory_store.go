package localstore

import (
	"context"
	"sync"
)

// MemoryStore is a Store that lives only as long as the process.
// The zero value is not usable; call NewMemoryStore.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]map[string]string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]map[string]string)}
}

// GetItem retrieves a value.
func (m *MemoryStore) GetItem(_ context.Context, namespace, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[namespace][key]
	return v, ok, nil
}

// SetItem replaces a value.
func (m *MemoryStore) SetItem(_ context.Context, namespace, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ns, ok := m.items[namespace]
	if !ok {
		ns = make(map[string]string)
		m.items[namespace] = ns
	}
	ns[key] = value
	return nil
}

// RemoveItem deletes a value.
func (m *MemoryStore) RemoveItem(_ context.Context, namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items[namespace], key)
	return nil
}
