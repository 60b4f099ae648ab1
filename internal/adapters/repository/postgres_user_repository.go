package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/screenaware/screenaware/internal/core/domain"
)

var _ domain.UserRepository = (*PostgresUserRepository)(nil)

const userColumns = `id, email, password_hash, first_name, last_name, provider, created_at, updated_at`

type PostgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (:id, :email, :password_hash, :first_name, :last_name, :provider, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("repository: create user failed: %w", err)
	}

	return nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email", email)
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, "id", id)
}

func (r *PostgresUserRepository) getOne(ctx context.Context, column, value string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: get user by %s failed: %w", column, err)
	}

	return &user, nil
}

// isUniqueViolation recognises 23505 from either driver: lib/pq when the pool
// was opened as "postgres", pgx when opened as "pgx".
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
