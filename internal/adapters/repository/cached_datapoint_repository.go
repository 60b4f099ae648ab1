package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/screenaware/screenaware/internal/adapters/observability"
	"github.com/screenaware/screenaware/internal/core/domain"
)

var _ domain.DataPointRepository = (*CachedDataPointRepository)(nil)

const latestTTL = 30 * time.Minute

// CachedDataPointRepository keeps each user's latest data point in Redis.
// Writes invalidate; range queries always go to the next repository.
type CachedDataPointRepository struct {
	next    domain.DataPointRepository
	cache   *redis.Client
	metrics *observability.Metrics
}

func NewCachedDataPointRepository(next domain.DataPointRepository, cache *redis.Client, metrics *observability.Metrics) *CachedDataPointRepository {
	return &CachedDataPointRepository{
		next:    next,
		cache:   cache,
		metrics: metrics,
	}
}

func (r *CachedDataPointRepository) cacheKey(userID string) string {
	return fmt.Sprintf("datapoints:latest:%s", userID)
}

func (r *CachedDataPointRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate for user %s: %v", userID, err)
	}
}

func (r *CachedDataPointRepository) Create(ctx context.Context, point *domain.DataPoint) error {
	if err := r.next.Create(ctx, point); err != nil {
		return err
	}
	r.invalidate(ctx, point.UserID)
	return nil
}

func (r *CachedDataPointRepository) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]*domain.DataPoint, error) {
	return r.next.ListByUserSince(ctx, userID, since)
}

func (r *CachedDataPointRepository) Latest(ctx context.Context, userID string) (*domain.DataPoint, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		var point domain.DataPoint
		if err := json.Unmarshal(val, &point); err == nil {
			r.metrics.CacheHit()
			return &point, nil
		}

		log.Printf("[CACHE] Corrupted data for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[CACHE] Redis read error: %v", err)
	}
	r.metrics.CacheMiss()

	point, err := r.next.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(point); err == nil {
		if setErr := r.cache.Set(ctx, key, data, latestTTL).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return point, nil
}
