package store

import (
	"context"
)

// Error Contract:
// All backends follow this error pattern:
// - Return sentinel.ErrNotFound when the key does not exist in the namespace
// - Return nil for successful writes and for deletes of missing keys
// - Return wrapped errors with context for infrastructure failures

// Backend persists string values under (namespace, key). A namespace holds one
// client's items, the way a browser origin scopes localStorage.
type Backend interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace, key string) error
}

// Scoped is one client's view of a backend.
type Scoped struct {
	backend   Backend
	namespace string
}

// Scope binds backend to the namespace of clientID.
func Scope(backend Backend, clientID string) *Scoped {
	return &Scoped{backend: backend, namespace: Namespace(clientID)}
}

// Namespace derives the storage namespace for a client.
func Namespace(clientID string) string {
	return "cookie_consent:client:" + clientID
}

func (s *Scoped) GetItem(ctx context.Context, key string) (string, error) {
	return s.backend.Get(ctx, s.namespace, key)
}

func (s *Scoped) SetItem(ctx context.Context, key, value string) error {
	return s.backend.Set(ctx, s.namespace, key, value)
}

func (s *Scoped) RemoveItem(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, s.namespace, key)
}
