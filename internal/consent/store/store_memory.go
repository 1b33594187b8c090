package store

import (
	"context"
	"sync"

	"cookieconsent/pkg/platform/sentinel"
)

// InMemoryStore keeps items in process memory. Used for tests and
// single-instance deployments where consent may be lost on restart.
type InMemoryStore struct {
	mu    sync.RWMutex
	items map[string]map[string]string
}

// NewInMemoryStore constructs an empty in-memory backend.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{items: make(map[string]map[string]string)}
}

func (s *InMemoryStore) Get(_ context.Context, namespace, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[namespace][key]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return value, nil
}

func (s *InMemoryStore) Set(_ context.Context, namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.items[namespace]
	if !ok {
		items = make(map[string]string)
		s.items[namespace] = items
	}
	items[key] = value
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.items[namespace]
	if !ok {
		return nil
	}
	delete(items, key)
	if len(items) == 0 {
		delete(s.items, namespace)
	}
	return nil
}
