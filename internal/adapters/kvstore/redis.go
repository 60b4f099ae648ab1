package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/screenaware/screenaware/internal/core/domain"
)

var _ domain.KeyValueStore = (*RedisStore)(nil)

// RedisStore namespaces every key under a per-device prefix so several
// clients can share one Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore builds the store; a zero ttl keeps values forever.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(k string) string {
	return fmt.Sprintf("kv:%s:%s", s.prefix, k)
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("kvstore: redis get failed: %w", err)
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("kvstore: redis set failed: %w", err)
	}
	return nil
}
