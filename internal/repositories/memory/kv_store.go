// Package memory provides a process-local durable store, used when no database is configured
// and in tests.
package memory

import (
	"context"
	"sync"

	portsrepo "github.com/judeotine/SpendWise/internal/core/ports/repositories"
)

type KeyValueStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{entries: make(map[string]string)}
}

var _ portsrepo.KeyValueStoreFacade = (*KeyValueStore)(nil)

func (s *KeyValueStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	return value, ok, nil
}

func (s *KeyValueStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}
