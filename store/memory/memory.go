// Package memory provides an in-memory BlobStore (for testing/dev).
package memory

import (
	"context"
	"sync"
)

// Store is a mutex-guarded map of blobs. It satisfies ledger.BlobStore.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

// Get returns a copy of the blob stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.blobs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, true, nil
}

// Put stores a copy of value under key, replacing any previous blob.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := make([]byte, len(value))
	copy(raw, value)
	s.blobs[key] = raw
	return nil
}
