package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/screenaware/screenaware/internal/core/domain"
)

var (
	_ domain.RevocationStore = (*RedisRevocationStore)(nil)
	_ domain.RevocationStore = (*MemoryRevocationStore)(nil)
)

// RedisRevocationStore keeps one key per signed-out token and lets Redis
// expire it together with the token.
type RedisRevocationStore struct {
	rdb *redis.Client
}

func NewRedisRevocationStore(rdb *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{rdb: rdb}
}

func revocationKey(tokenID string) string {
	return fmt.Sprintf("revoked:%s", tokenID)
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, revocationKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("cache: revoke token: %w", err)
	}
	return nil
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revocationKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("cache: check revocation: %w", err)
	}
	return n > 0, nil
}

// MemoryRevocationStore is used when no Redis is configured. Entries are
// pruned lazily on lookup.
type MemoryRevocationStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[tokenID] = s.now().Add(ttl)
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expires, ok := s.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expires) {
		delete(s.entries, tokenID)
		return false, nil
	}
	return true, nil
}
