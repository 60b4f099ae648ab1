package kvstore

import (
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/screenaware/screenaware/internal/core/domain"
)

const (
	EngineMemory = "memory"
	EngineSQLite = "sqlite"
	EngineRedis  = "redis"
)

// Options carries what each engine needs; fields an engine does not use are ignored.
type Options struct {
	Path        string
	RedisClient *redis.Client
	RedisPrefix string
}

// NewByEngine opens the store selected by engine. The returned close func is
// never nil.
func NewByEngine(engine string, opts Options) (domain.KeyValueStore, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineSQLite:
		st, err := NewSQLiteStore(opts.Path)
		if err != nil {
			return nil, noop, err
		}
		return st, st.Close, nil
	case EngineMemory:
		return NewMemoryStore(), noop, nil
	case EngineRedis:
		if opts.RedisClient == nil {
			return nil, noop, errors.New("redis key store requires a redis client")
		}
		return NewRedisStore(opts.RedisClient, opts.RedisPrefix, 0), noop, nil
	default:
		return nil, noop, errors.New("unsupported key store engine: " + engine)
	}
}
