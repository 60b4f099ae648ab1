package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/screenaware/screenaware/internal/core/domain"
)

var (
	_ domain.UserRepository      = (*InMemoryUserRepository)(nil)
	_ domain.DataPointRepository = (*InMemoryDataPointRepository)(nil)
)

type InMemoryUserRepository struct {
	store   map[string]*domain.User
	byEmail map[string]string

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store:   make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return domain.ErrEmailAlreadyExists
	}
	r.store[user.ID] = user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.store[id], nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

type InMemoryDataPointRepository struct {
	byUser map[string][]*domain.DataPoint

	mu sync.RWMutex
}

func NewInMemoryDataPointRepository() *InMemoryDataPointRepository {
	return &InMemoryDataPointRepository{
		byUser: make(map[string][]*domain.DataPoint),
	}
}

func (r *InMemoryDataPointRepository) Create(ctx context.Context, point *domain.DataPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byUser[point.UserID] = append(r.byUser[point.UserID], point)
	return nil
}

func (r *InMemoryDataPointRepository) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]*domain.DataPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	points := make([]*domain.DataPoint, 0)
	for _, p := range r.byUser[userID] {
		if !p.Timestamp.Before(since) {
			points = append(points, p)
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.After(points[j].Timestamp)
	})

	return points, nil
}

func (r *InMemoryDataPointRepository) Latest(ctx context.Context, userID string) (*domain.DataPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.DataPoint
	for _, p := range r.byUser[userID] {
		// on equal timestamps the later insert wins
		if latest == nil || !p.Timestamp.Before(latest.Timestamp) {
			latest = p
		}
	}
	if latest == nil {
		return nil, domain.ErrNoData
	}
	return latest, nil
}
