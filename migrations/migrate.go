package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

// Migrate applies all pending schema migrations for the given driver.
// Each backend has its own migration directory because the DDL dialects
// differ (AUTOINCREMENT vs BIGSERIAL, REAL vs DOUBLE PRECISION).
func Migrate(db *sql.DB, driver string) error {
	if db == nil {
		return fmt.Errorf("migration error: db is nil")
	}

	goose.SetBaseFS(embedMigrations)

	var dialect, dir string
	switch driver {
	case "pgx":
		dialect, dir = "pgx", "postgres"
	case "sqlite3":
		dialect, dir = "sqlite3", "sqlite"
	default:
		return fmt.Errorf("migration error: unsupported driver %q", driver)
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
