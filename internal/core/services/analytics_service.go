package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/screenaware/screenaware/internal/core/domain"
)

const (
	analyticsWindow = 30 * 24 * time.Hour
	trendLength     = 7
)

// DataPointQueue hands recorded points to the background publisher.
type DataPointQueue interface {
	Enqueue(point *domain.DataPoint)
}

type RecordInput struct {
	domain.HabitInput
	RiskLevel    string
	MoodRating   float64
	ClusterLabel string
}

type AnalyticsService struct {
	repo  domain.DataPointRepository
	queue DataPointQueue
	now   func() time.Time
}

// NewAnalyticsService wires the data point store. queue may be nil when no
// event stream is configured.
func NewAnalyticsService(repo domain.DataPointRepository, queue DataPointQueue) *AnalyticsService {
	return &AnalyticsService{
		repo:  repo,
		queue: queue,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *AnalyticsService) Record(ctx context.Context, userID string, input RecordInput) (*domain.DataPoint, error) {
	point, err := domain.NewDataPoint(uuid.NewString(), userID, input.HabitInput, input.RiskLevel, input.MoodRating, input.ClusterLabel)
	if err != nil {
		return nil, err
	}
	point.Timestamp = s.now()

	if err := s.repo.Create(ctx, point); err != nil {
		return nil, fmt.Errorf("analytics service: failed to store data point: %w", err)
	}

	if s.queue != nil {
		s.queue.Enqueue(point)
	}

	return point, nil
}

func (s *AnalyticsService) Latest(ctx context.Context, userID string) (*domain.DataPoint, error) {
	return s.repo.Latest(ctx, userID)
}

// Overview summarises the last 30 days.
func (s *AnalyticsService) Overview(ctx context.Context, userID string) (*domain.AnalyticsOverview, error) {
	points, err := s.window(ctx, userID)
	if err != nil {
		return nil, err
	}

	n := float64(len(points))
	overview := &domain.AnalyticsOverview{
		RiskLevelDistribution: make(map[string]int),
	}
	clusters := make(map[string]int)

	for _, p := range points {
		overview.AverageScreenTime += p.DailyScreenTimeHours
		overview.AverageMood += p.MoodRating
		overview.AverageSleep += p.SleepDurationHours
		overview.CategoryDistribution.SocialMedia += p.SocialMediaHours
		overview.CategoryDistribution.Gaming += p.GamingHours
		overview.CategoryDistribution.Entertainment += p.EntertainmentHours
		overview.CategoryDistribution.Work += p.WorkRelatedHours
		overview.RiskLevelDistribution[p.RiskLevel]++
		clusters[p.ClusterLabel]++
	}

	overview.AverageScreenTime /= n
	overview.AverageMood /= n
	overview.AverageSleep /= n
	overview.CategoryDistribution.SocialMedia /= n
	overview.CategoryDistribution.Gaming /= n
	overview.CategoryDistribution.Entertainment /= n
	overview.CategoryDistribution.Work /= n
	overview.MostCommonCluster = mode(clusters)
	overview.ScreenTimeTrend = screenTimeTrend(points)

	return overview, nil
}

// Detailed returns the raw points of the last 30 days with ISO-week and
// calendar-month averages, both in ascending period order.
func (s *AnalyticsService) Detailed(ctx context.Context, userID string) (*domain.DetailedAnalytics, error) {
	points, err := s.window(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.DetailedAnalytics{
		DailyData: points,
		WeeklyAverages: averageBy(points, func(t time.Time) string {
			year, week := t.ISOWeek()
			return fmt.Sprintf("%04d-W%02d", year, week)
		}),
		MonthlyAverages: averageBy(points, func(t time.Time) string {
			return t.Format("2006-01")
		}),
	}, nil
}

func (s *AnalyticsService) window(ctx context.Context, userID string) ([]*domain.DataPoint, error) {
	points, err := s.repo.ListByUserSince(ctx, userID, s.now().Add(-analyticsWindow))
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, domain.ErrNoData
	}
	return points, nil
}

// mode returns the most frequent key; ties go to the lexically smallest.
func mode(counts map[string]int) string {
	best, bestCount := "", 0
	for key, count := range counts {
		if count > bestCount || (count == bestCount && key < best) {
			best, bestCount = key, count
		}
	}
	return best
}

func screenTimeTrend(points []*domain.DataPoint) []domain.TrendPoint {
	sorted := make([]*domain.DataPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	if len(sorted) > trendLength {
		sorted = sorted[len(sorted)-trendLength:]
	}

	trend := make([]domain.TrendPoint, 0, len(sorted))
	for _, p := range sorted {
		trend = append(trend, domain.TrendPoint{
			Timestamp:            p.Timestamp,
			DailyScreenTimeHours: p.DailyScreenTimeHours,
		})
	}
	return trend
}

func averageBy(points []*domain.DataPoint, period func(time.Time) string) []domain.PeriodAverage {
	groups := make(map[string]*domain.PeriodAverage)
	for _, p := range points {
		key := period(p.Timestamp.UTC())
		g, ok := groups[key]
		if !ok {
			g = &domain.PeriodAverage{Period: key}
			groups[key] = g
		}
		g.DailyScreenTimeHours += p.DailyScreenTimeHours
		g.MoodRating += p.MoodRating
		g.SleepDurationHours += p.SleepDurationHours
		g.Samples++
	}

	averages := make([]domain.PeriodAverage, 0, len(groups))
	for _, g := range groups {
		n := float64(g.Samples)
		g.DailyScreenTimeHours /= n
		g.MoodRating /= n
		g.SleepDurationHours /= n
		averages = append(averages, *g)
	}
	sort.Slice(averages, func(i, j int) bool {
		return averages[i].Period < averages[j].Period
	})
	return averages
}
