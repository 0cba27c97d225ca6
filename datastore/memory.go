package datastore

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store implementation for testing and for
// fully transient pipelines. Thread-safe for concurrent reads and writes.
type MemoryStore struct {
	mu     sync.RWMutex
	arrays map[string]Array
	attrs  map[string][]byte
}

// NewMemoryStore creates a new in-memory array store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		arrays: make(map[string]Array),
		attrs:  make(map[string][]byte),
	}
}

// PutArray stores a copy of the array.
func (m *MemoryStore) PutArray(_ context.Context, name string, arr Array) error {
	data := make([]byte, len(arr.Data))
	copy(data, arr.Data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.arrays[name] = Array{Tag: arr.Tag, Count: arr.Count, Data: data}
	return nil
}

// GetArray returns a copy of the named array.
func (m *MemoryStore) GetArray(_ context.Context, name string) (Array, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	arr, ok := m.arrays[name]
	if !ok {
		return Array{}, ErrNotFound
	}

	// Return a copy to prevent external mutation
	data := make([]byte, len(arr.Data))
	copy(data, arr.Data)
	return Array{Tag: arr.Tag, Count: arr.Count, Data: data}, nil
}

// PutAttrs stores a copy of the attribute document.
func (m *MemoryStore) PutAttrs(_ context.Context, name string, data []byte) error {
	copied := make([]byte, len(data))
	copy(copied, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.attrs[name] = copied
	return nil
}

// GetAttrs returns a copy of the attribute document.
func (m *MemoryStore) GetAttrs(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.attrs[name]
	if !ok {
		return nil, ErrNotFound
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return copied, nil
}

// Delete removes the named array and attribute document.
func (m *MemoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.arrays, name)
	delete(m.attrs, name)
	return nil
}

// List returns all array names matching the prefix.
func (m *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for name := range m.arrays {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, nil
}
