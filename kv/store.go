// Package kv provides the key-value persistence used for session
// snapshots. Implementations are a process-local memory store and a
// Redis-backed store; Scoped namespaces either one per session.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is a string-keyed snapshot store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Scoped wraps a Store so that every key is prefixed with a namespace.
// Each dashboard session receives its own scope.
type Scoped struct {
	store  Store
	prefix string
}

// NewScoped creates a namespaced view over store.
func NewScoped(store Store, namespace string) *Scoped {
	return &Scoped{store: store, prefix: namespace + ":"}
}

func (s *Scoped) Get(ctx context.Context, key string) ([]byte, error) {
	return s.store.Get(ctx, s.prefix+key)
}

func (s *Scoped) Set(ctx context.Context, key string, value []byte) error {
	return s.store.Set(ctx, s.prefix+key, value)
}

func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, s.prefix+key)
}
