// Package session provides session-scoped key/value storage and the
// last-visited-section adapter built on it.
package session

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Store.Load when the key has no value.
var ErrNotFound = errors.New("session value not found")

// Store is a key/value store partitioned by browsing-session id.
type Store interface {
	Load(ctx context.Context, sessionID, key string) (string, error)
	Save(ctx context.Context, sessionID, key, value string) error
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore keeps values in process memory. Values are lost on restart,
// which matches browser session storage.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]map[string]string)}
}

func (m *MemoryStore) Load(_ context.Context, sessionID, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[sessionID][key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Save(_ context.Context, sessionID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	vals, ok := m.values[sessionID]
	if !ok {
		vals = make(map[string]string)
		m.values[sessionID] = vals
	}
	vals[key] = value
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, sessionID)
	return nil
}
