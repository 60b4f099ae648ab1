package repository

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "screenaware"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "screenaware_test"),
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}
	require.NoError(t, Migrate(context.Background(), db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", getEnv("REDIS_HOST", "localhost"), getEnv("REDIS_PORT", "6379")),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       1,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		t.Skipf("Skipping integration test (Redis down): %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}
