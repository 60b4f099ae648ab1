package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/screenaware/screenaware/internal/core/domain"

	_ "modernc.org/sqlite"
)

var _ domain.KeyValueStore = (*SQLiteStore)(nil)

// SQLiteStore is the durable on-device store: one row per key.
type SQLiteStore struct {
	db *sqlx.DB
}

func NewSQLiteStore(filePath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, err
	}
	db, err := sqlx.Open("sqlite", filePath)
	if err != nil {
		return nil, err
	}
	// a single writer avoids SQLITE_BUSY between goroutines
	db.SetMaxOpenConns(1)

	st := &SQLiteStore{db: db}
	if err := st.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kvstore: sqlite get failed: %w", err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("kvstore: sqlite set failed: %w", err)
	}
	return nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		PRAGMA journal_mode=WAL;
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);
	`)
	return err
}
