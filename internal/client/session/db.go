package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/marmota/failboard/internal/client/migrations"
	"github.com/marmota/failboard/internal/client/repositories/metadata"

	_ "modernc.org/sqlite"
)

// RunMigrations brings the local database schema up to date.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate session db: %w", err)
	}
	return nil
}

// OpenDatabase opens (creating if needed) the SQLite file at dsn and applies
// migrations.
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	// one writer; also keeps ":memory:" on a single database
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Open returns a persistent Store backed by the database at dsn. The caller
// closes the returned *sql.DB.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, *sql.DB, error) {
	db, err := OpenDatabase(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return New(metadata.NewSQLiteRepository(db), opts...), db, nil
}
