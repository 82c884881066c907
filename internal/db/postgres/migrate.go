package postgres

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/kailas-cloud/plagcheck/internal/db"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies all pending up-migrations. ErrNoChange is not an error.
func Migrate(conn *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("source: %w", err)}
	}

	driver, err := migratepg.WithInstance(conn, &migratepg.Config{})
	if err != nil {
		return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("driver: %w", err)}
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return &db.Error{Op: db.OpMigrate, Err: err}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return &db.Error{Op: db.OpMigrate, Err: err}
	}
	return nil
}
