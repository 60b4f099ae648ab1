package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/screenaware/screenaware/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDataPointRepository struct {
	mock.Mock
}

func (m *MockDataPointRepository) Create(ctx context.Context, point *domain.DataPoint) error {
	return m.Called(ctx, point).Error(0)
}

func (m *MockDataPointRepository) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]*domain.DataPoint, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DataPoint), args.Error(1)
}

func (m *MockDataPointRepository) Latest(ctx context.Context, userID string) (*domain.DataPoint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DataPoint), args.Error(1)
}

type recordingQueue struct {
	points []*domain.DataPoint
}

func (q *recordingQueue) Enqueue(point *domain.DataPoint) {
	q.points = append(q.points, point)
}

var analyticsNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestAnalyticsService(repo domain.DataPointRepository, queue DataPointQueue) *AnalyticsService {
	s := NewAnalyticsService(repo, queue)
	s.now = func() time.Time { return analyticsNow }
	return s
}

func point(daysAgo int, screen, mood, sleep float64, risk, cluster string) *domain.DataPoint {
	return &domain.DataPoint{
		UserID:    "user-1",
		Timestamp: analyticsNow.AddDate(0, 0, -daysAgo),
		HabitInput: domain.HabitInput{
			DailyScreenTimeHours: screen,
			SleepDurationHours:   sleep,
			StressLevel:          3,
			SleepQuality:         3,
			SocialMediaHours:     screen / 2,
			GamingHours:          1,
		},
		RiskLevel:    risk,
		MoodRating:   mood,
		ClusterLabel: cluster,
	}
}

func TestAnalyticsService_Record(t *testing.T) {
	ctx := context.Background()
	input := RecordInput{
		HabitInput:   domain.HabitInput{DailyScreenTimeHours: 5, SleepDurationHours: 7, StressLevel: 2, SleepQuality: 4},
		RiskLevel:    "Moderate",
		MoodRating:   4,
		ClusterLabel: "",
	}

	t.Run("Success: Should store and enqueue the point", func(t *testing.T) {
		repo := new(MockDataPointRepository)
		queue := &recordingQueue{}
		service := newTestAnalyticsService(repo, queue)

		repo.On("Create", ctx, mock.AnythingOfType("*domain.DataPoint")).Return(nil)

		p, err := service.Record(ctx, "user-1", input)

		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "user-1", p.UserID)
		assert.Equal(t, analyticsNow, p.Timestamp)
		assert.Equal(t, domain.Unknown, p.ClusterLabel)
		require.Len(t, queue.points, 1)
		assert.Same(t, p, queue.points[0])
		repo.AssertExpectations(t)
	})

	t.Run("Fail: Should reject invalid ratings before storing", func(t *testing.T) {
		repo := new(MockDataPointRepository)
		service := newTestAnalyticsService(repo, nil)
		bad := input
		bad.StressLevel = 9

		_, err := service.Record(ctx, "user-1", bad)

		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Fail: Should not enqueue when storing fails", func(t *testing.T) {
		repo := new(MockDataPointRepository)
		queue := &recordingQueue{}
		service := newTestAnalyticsService(repo, queue)

		repo.On("Create", ctx, mock.Anything).Return(errors.New("db down"))

		_, err := service.Record(ctx, "user-1", input)

		assert.Error(t, err)
		assert.Empty(t, queue.points)
	})
}

func TestAnalyticsService_Overview(t *testing.T) {
	ctx := context.Background()
	since := analyticsNow.Add(-analyticsWindow)

	t.Run("Should aggregate the window", func(t *testing.T) {
		repo := new(MockDataPointRepository)
		service := newTestAnalyticsService(repo, nil)

		points := []*domain.DataPoint{
			point(0, 8, 2, 6, "High", "Social Media Heavy"),
			point(1, 4, 4, 8, "Low", "Balanced Lifestyle"),
			point(2, 6, 3, 7, "High", "Social Media Heavy"),
		}
		repo.On("ListByUserSince", ctx, "user-1", since).Return(points, nil)

		overview, err := service.Overview(ctx, "user-1")

		require.NoError(t, err)
		assert.InDelta(t, 6.0, overview.AverageScreenTime, 1e-9)
		assert.InDelta(t, 3.0, overview.AverageMood, 1e-9)
		assert.InDelta(t, 7.0, overview.AverageSleep, 1e-9)
		assert.Equal(t, map[string]int{"High": 2, "Low": 1}, overview.RiskLevelDistribution)
		assert.Equal(t, "Social Media Heavy", overview.MostCommonCluster)
		assert.InDelta(t, 3.0, overview.CategoryDistribution.SocialMedia, 1e-9)
		assert.InDelta(t, 1.0, overview.CategoryDistribution.Gaming, 1e-9)

		require.Len(t, overview.ScreenTimeTrend, 3)
		assert.Equal(t, 6.0, overview.ScreenTimeTrend[0].DailyScreenTimeHours, "trend is oldest first")
		assert.Equal(t, 8.0, overview.ScreenTimeTrend[2].DailyScreenTimeHours)
	})

	t.Run("Should keep only the last seven trend points", func(t *testing.T) {
		repo := new(MockDataPointRepository)
		service := newTestAnalyticsService(repo, nil)

		var points []*domain.DataPoint
		for i := 0; i < 10; i++ {
			points = append(points, point(i, float64(i), 3, 7, "Low", "Moderate Usage"))
		}
		repo.On("ListByUserSince", ctx, "user-1", since).Return(points, nil)

		overview, err := service.Overview(ctx, "user-1")

		require.NoError(t, err)
		require.Len(t, overview.ScreenTimeTrend, 7)
		assert.Equal(t, 6.0, overview.ScreenTimeTrend[0].DailyScreenTimeHours)
		assert.Equal(t, 0.0, overview.ScreenTimeTrend[6].DailyScreenTimeHours)
	})

	t.Run("Should break cluster ties alphabetically", func(t *testing.T) {
		repo := new(MockDataPointRepository)
		service := newTestAnalyticsService(repo, nil)

		repo.On("ListByUserSince", ctx, "user-1", since).Return([]*domain.DataPoint{
			point(0, 1, 3, 7, "Low", "Moderate Usage"),
			point(1, 1, 3, 7, "Low", "Gaming Focused"),
		}, nil)

		overview, err := service.Overview(ctx, "user-1")

		require.NoError(t, err)
		assert.Equal(t, "Gaming Focused", overview.MostCommonCluster)
	})

	t.Run("Fail: Should report missing data", func(t *testing.T) {
		repo := new(MockDataPointRepository)
		service := newTestAnalyticsService(repo, nil)

		repo.On("ListByUserSince", ctx, "user-1", since).Return([]*domain.DataPoint{}, nil)

		_, err := service.Overview(ctx, "user-1")

		assert.ErrorIs(t, err, domain.ErrNoData)
	})
}

func TestAnalyticsService_Detailed(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDataPointRepository)
	service := newTestAnalyticsService(repo, nil)

	// 2025-03-10 is a Monday (ISO week 11); 2025-02-28 is in week 9.
	points := []*domain.DataPoint{
		point(0, 8, 2, 6, "High", "x"),
		point(1, 4, 4, 8, "Low", "x"),
		point(10, 2, 5, 9, "Low", "x"),
	}
	repo.On("ListByUserSince", ctx, "user-1", analyticsNow.Add(-analyticsWindow)).Return(points, nil)

	detailed, err := service.Detailed(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, points, detailed.DailyData)

	require.Len(t, detailed.WeeklyAverages, 3)
	assert.Equal(t, "2025-W09", detailed.WeeklyAverages[0].Period)
	assert.Equal(t, "2025-W10", detailed.WeeklyAverages[1].Period)
	assert.Equal(t, "2025-W11", detailed.WeeklyAverages[2].Period)

	require.Len(t, detailed.MonthlyAverages, 2)
	assert.Equal(t, "2025-02", detailed.MonthlyAverages[0].Period)
	assert.Equal(t, "2025-03", detailed.MonthlyAverages[1].Period)
	assert.Equal(t, 2, detailed.MonthlyAverages[1].Samples)
	assert.InDelta(t, 6.0, detailed.MonthlyAverages[1].DailyScreenTimeHours, 1e-9)
	assert.InDelta(t, 3.0, detailed.MonthlyAverages[1].MoodRating, 1e-9)
}

func TestAnalyticsService_Latest(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDataPointRepository)
	service := newTestAnalyticsService(repo, nil)

	repo.On("Latest", ctx, "nobody").Return(nil, domain.ErrNoData)

	_, err := service.Latest(ctx, "nobody")

	assert.ErrorIs(t, err, domain.ErrNoData)
}
