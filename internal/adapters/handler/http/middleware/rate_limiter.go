package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit"

// RateLimiterMiddleware allows limit requests per client IP per window using a
// fixed-window counter in Redis. Any Redis failure lets the request through.
func RateLimiterMiddleware(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", rateLimitPrefix, c.ClientIP())

		count, ttl, err := hit(c.Request.Context(), rdb, key, window)
		if err != nil {
			log.Printf("[RATELIMIT] Redis error, request allowed: %v", err)
			c.Next()
			return
		}

		if ttl <= 0 {
			ttl = window
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(limit)-count), 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "too many requests",
				"retry_in_s": int(ttl.Seconds()),
			})
			return
		}

		c.Next()
	}
}

// hit increments the counter and arms its expiry in one round trip. ExpireNX
// only sets the TTL on the first hit of a window.
func hit(ctx context.Context, rdb *redis.Client, key string, window time.Duration) (int64, time.Duration, error) {
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return incr.Val(), ttl.Val(), nil
}
