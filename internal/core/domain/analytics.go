package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNoData = errors.New("no data found for user")
)

// DataPoint is one logged day of habits together with the scores it produced.
type DataPoint struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Timestamp time.Time `json:"timestamp" db:"recorded_at"`
	HabitInput
	RiskLevel    string  `json:"risk_level" db:"risk_level"`
	MoodRating   float64 `json:"mood_rating" db:"mood_rating"`
	ClusterLabel string  `json:"cluster_label" db:"cluster_label"`
}

func NewDataPoint(id, userID string, in HabitInput, riskLevel string, mood float64, cluster string) (*DataPoint, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, &ValidationError{Field: "user_id", Message: "is required"}
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if mood < MinRating || mood > MaxRating {
		return nil, &ValidationError{Field: "mood_rating", Message: "must be between 1 and 5"}
	}
	if strings.TrimSpace(riskLevel) == "" {
		riskLevel = Unknown
	}
	if strings.TrimSpace(cluster) == "" {
		cluster = Unknown
	}

	return &DataPoint{
		ID:           id,
		UserID:       userID,
		Timestamp:    time.Now().UTC(),
		HabitInput:   in,
		RiskLevel:    riskLevel,
		MoodRating:   mood,
		ClusterLabel: cluster,
	}, nil
}

type DataPointRepository interface {
	Create(ctx context.Context, point *DataPoint) error

	// ListByUserSince returns points recorded at or after since, newest first.
	ListByUserSince(ctx context.Context, userID string, since time.Time) ([]*DataPoint, error)

	// Latest returns ErrNoData when the user has never logged anything.
	Latest(ctx context.Context, userID string) (*DataPoint, error)
}

// EventPublisher fans data point events out to downstream consumers.
type EventPublisher interface {
	PublishDataPoint(ctx context.Context, point *DataPoint) error
}

type TrendPoint struct {
	Timestamp            time.Time `json:"timestamp"`
	DailyScreenTimeHours float64   `json:"daily_screen_time_hours"`
}

type CategoryDistribution struct {
	SocialMedia   float64 `json:"social_media"`
	Gaming        float64 `json:"gaming"`
	Entertainment float64 `json:"entertainment"`
	Work          float64 `json:"work"`
}

type AnalyticsOverview struct {
	AverageScreenTime     float64              `json:"average_screen_time"`
	AverageMood           float64              `json:"average_mood"`
	AverageSleep          float64              `json:"average_sleep"`
	RiskLevelDistribution map[string]int       `json:"risk_level_distribution"`
	MostCommonCluster     string               `json:"most_common_cluster"`
	ScreenTimeTrend       []TrendPoint         `json:"screen_time_trend"`
	CategoryDistribution  CategoryDistribution `json:"category_distribution"`
}

type PeriodAverage struct {
	Period               string  `json:"period"`
	DailyScreenTimeHours float64 `json:"daily_screen_time_hours"`
	MoodRating           float64 `json:"mood_rating"`
	SleepDurationHours   float64 `json:"sleep_duration_hours"`
	Samples              int     `json:"samples"`
}

type DetailedAnalytics struct {
	DailyData       []*DataPoint    `json:"daily_data"`
	WeeklyAverages  []PeriodAverage `json:"weekly_averages"`
	MonthlyAverages []PeriodAverage `json:"monthly_averages"`
}
