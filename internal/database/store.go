package database

import (
	"context"
	"sync"
)

// PrefStore keeps small client preferences across runs.
type PrefStore interface {
	GetBool(ctx context.Context, key string) (bool, error)
	SetBool(ctx context.Context, key string, value bool) error
	Close() error
}

// MemoryStore forgets everything when the process exits.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]bool)}
}

func (m *MemoryStore) GetBool(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *MemoryStore) SetBool(ctx context.Context, key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Close() error { return nil }

func formatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
