package store

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// Migrate applies all pending schema migrations
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close() //nolint:errcheck // closing the wrapper does not close the pool

	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}

	return nil
}

// MigrationVersion returns the current schema version
func MigrationVersion(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close() //nolint:errcheck // closing the wrapper does not close the pool

	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}

	return goose.GetDBVersionContext(ctx, db)
}
