// Package credentials resolves the bearer token used for dashboard requests.
//
// The token lives in a persisted key-value store that this application only
// ever reads. Handlers and views depend on the Provider interface so tests
// can supply deterministic tokens without touching process-wide storage.
package credentials

import (
	"context"
	"errors"
	"sync"
)

// TokenKey is the key the bearer token is stored under.
const TokenKey = "token"

// ErrUnreadableStore is returned when a store exists but cannot be decoded.
var ErrUnreadableStore = errors.New("credential store is unreadable")

// Store is a read-only view of a persisted key-value store.
type Store interface {
	// Get returns the value for key. A missing key is reported with ok=false
	// and a nil error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
}

// MapStore is an in-memory Store.
type MapStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMapStore creates a MapStore seeded with values.
func NewMapStore(values map[string]string) *MapStore {
	m := make(map[string]string, len(values))
	for k, v := range values {
		m[k] = v
	}
	return &MapStore{values: m}
}

// Get implements Store.
func (s *MapStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}
