package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Options struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (o Options) Addr() string {
	return fmt.Sprintf("%s:%s", o.Host, o.Port)
}

// NewRedisClient connects and pings; the caller decides whether a failure
// is fatal or just disables caching.
func NewRedisClient(opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr(),
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr(), err)
	}

	return rdb, nil
}
