package cache

import (
	"context"
	"sync"
)

// MemoryStore is the in-process cache backend: a mutex-guarded map plus a
// per-entity index of live keys so Invalidate stays O(keys of entity).
type MemoryStore struct {
	mu       sync.RWMutex
	entries  map[string][]byte
	byEntity map[string]map[string]struct{}
}

// NewMemoryStore creates an empty in-process cache
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:  make(map[string][]byte),
		byEntity: make(map[string]map[string]struct{}),
	}
}

func (m *MemoryStore) Get(_ context.Context, key Key) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.entries[key.String()]
	return b, ok
}

func (m *MemoryStore) Set(_ context.Context, key Key, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key.String()
	m.entries[k] = value
	keys, ok := m.byEntity[key.Entity]
	if !ok {
		keys = make(map[string]struct{})
		m.byEntity[key.Entity] = keys
	}
	keys[k] = struct{}{}
}

func (m *MemoryStore) Invalidate(_ context.Context, entity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.byEntity[entity] {
		delete(m.entries, k)
	}
	delete(m.byEntity, entity)
}

// Len reports the number of live entries (used by tests)
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
