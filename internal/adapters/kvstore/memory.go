package kvstore

import (
	"context"
	"sync"

	"github.com/screenaware/screenaware/internal/core/domain"
)

var _ domain.KeyValueStore = (*MemoryStore)(nil)

// MemoryStore keeps values for the lifetime of the process.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), value...)
	return nil
}
