package store

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"moneykeeper/internal/config"
	"moneykeeper/internal/logger"
	"moneykeeper/migrations"
)

// Driver names accepted by [DB] and the migration runner.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// DB wraps a database/sql connection with everything the repositories need
// to stay backend-agnostic: the driver name, a squirrel statement builder
// pre-configured with the driver's placeholder format, and an error
// classificator for retry decisions.
type DB struct {
	*sql.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens a database connection for the given DSN. A DSN starting
// with "postgres://" or "postgresql://" selects the PostgreSQL backend;
// anything else is treated as a SQLite file path.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if isPostgresDSN(cfg.DSN) {
		return NewConnectPostgres(ctx, cfg, log)
	}

	return NewConnectSQLite(ctx, cfg, log)
}

// Migrate applies all pending schema migrations for the connected backend.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// Driver returns the database/sql driver name the connection was opened with.
func (db *DB) Driver() string {
	return db.driver
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
