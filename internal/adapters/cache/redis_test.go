package cache

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testOptions() Options {
	_ = godotenv.Load("../../../.env")
	return Options{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       1,
	}
}

func TestOptions_Addr(t *testing.T) {
	assert.Equal(t, "cache.internal:6380", Options{Host: "cache.internal", Port: "6380"}.Addr())
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient(Options{Host: "127.0.0.1", Port: "1"})
	assert.ErrorContains(t, err, "127.0.0.1:1")
}

func TestRedisClient_Integration(t *testing.T) {
	rdb, err := NewRedisClient(testOptions())
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()

	ctx := context.Background()

	t.Run("Set and Get Value", func(t *testing.T) {
		key := "screenaware:test:setget"

		require.NoError(t, rdb.Set(ctx, key, "hello redis", time.Minute).Err())

		val, err := rdb.Get(ctx, key).Result()
		assert.NoError(t, err)
		assert.Equal(t, "hello redis", val)

		rdb.Del(ctx, key)
	})

	t.Run("Expire Check", func(t *testing.T) {
		key := "screenaware:test:expire"
		require.NoError(t, rdb.Set(ctx, key, "expire_me", time.Second).Err())

		time.Sleep(1100 * time.Millisecond)

		_, err := rdb.Get(ctx, key).Result()
		assert.ErrorIs(t, err, redis.Nil, "Errors need to be of type 'redis.Nil'")
	})

	t.Run("Concurrent Access", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				key := fmt.Sprintf("screenaware:test:concurrent:%d", id)
				assert.NoError(t, rdb.Set(ctx, key, "val", 10*time.Second).Err())

				_, err := rdb.Get(ctx, key).Result()
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()
	})
}
