// Package storage bootstraps the local sqlite database that backs offline
// reads: the last successfully fetched cow list and donation history. The
// coordinator's in-memory caches stay authoritative while online; these
// repositories only serve reads when the backend is unreachable.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/storage/cows"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/storage/donations"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/storage/migrations"
	"github.com/pressly/goose/v3"
)

// Repositories bundles the cache repositories sharing one database.
type Repositories struct {
	Cows      cows.Repository
	Donations donations.Repository
	DB        *sql.DB
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the cache database at dsn,
// applies migrations, and returns the repositories.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Cows:      cows.NewSQLiteRepository(db),
		Donations: donations.NewSQLiteRepository(db),
		DB:        db,
	}, nil
}
