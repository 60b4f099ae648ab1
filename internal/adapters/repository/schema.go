package repository

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schema string

// Migrate creates the tables when they do not exist yet. It is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("repository: migration failed: %w", err)
	}
	return nil
}
