package store

import (
	"context"
	"sync"
)

// MemoryStore keeps collections in process memory. Used in tests and as
// the failover fallback.
type MemoryStore struct {
	collections sync.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Read(ctx context.Context, collection string) ([]byte, error) {
	val, ok := s.collections.Load(collection)
	if !ok {
		return nil, nil
	}
	data := val.([]byte)
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) Write(ctx context.Context, collection string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	s.collections.Store(collection, stored)
	return nil
}
