package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/screenaware/screenaware/internal/core/domain"
)

var _ domain.DataPointRepository = (*PostgresDataPointRepository)(nil)

const dataPointColumns = `
	id, user_id, recorded_at,
	daily_screen_time_hours, sleep_duration_hours, stress_level, sleep_quality,
	physical_activity_hours_per_week, social_media_hours, gaming_hours,
	entertainment_hours, work_related_hours,
	risk_level, mood_rating, cluster_label`

type PostgresDataPointRepository struct {
	db *sqlx.DB
}

func NewPostgresDataPointRepository(db *sqlx.DB) *PostgresDataPointRepository {
	return &PostgresDataPointRepository{db: db}
}

func (r *PostgresDataPointRepository) Create(ctx context.Context, p *domain.DataPoint) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
        INSERT INTO user_data (` + dataPointColumns + `)
        VALUES (
            :id, :user_id, :recorded_at,
            :daily_screen_time_hours, :sleep_duration_hours, :stress_level, :sleep_quality,
            :physical_activity_hours_per_week, :social_media_hours, :gaming_hours,
            :entertainment_hours, :work_related_hours,
            :risk_level, :mood_rating, :cluster_label
        )`

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("failed to insert data point: %w", err)
	}
	return nil
}

func (r *PostgresDataPointRepository) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]*domain.DataPoint, error) {
	query := `
        SELECT ` + dataPointColumns + `
        FROM user_data
        WHERE user_id = $1 AND recorded_at >= $2
        ORDER BY recorded_at DESC`

	points := make([]*domain.DataPoint, 0)
	if err := r.db.SelectContext(ctx, &points, query, userID, since); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return points, nil
}

func (r *PostgresDataPointRepository) Latest(ctx context.Context, userID string) (*domain.DataPoint, error) {
	query := `
        SELECT ` + dataPointColumns + `
        FROM user_data
        WHERE user_id = $1
        ORDER BY recorded_at DESC
        LIMIT 1`

	var p domain.DataPoint
	if err := r.db.GetContext(ctx, &p, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoData
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &p, nil
}
