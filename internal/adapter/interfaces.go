// Package adapter provides transport-layer abstractions for communicating
// with the moneykeeper server.
//
// The primary abstraction is [ServerAdapter], which decouples client code
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"moneykeeper/models"
)

// RecordKind selects which record collection an operation targets. Its value
// is the path segment of the corresponding API group.
type RecordKind string

const (
	// KindExpense targets the /api/expenses collection.
	KindExpense RecordKind = "expenses"
	// KindIncome targets the /api/income collection.
	KindIncome RecordKind = "income"
)

// ServerAdapter defines transport-agnostic communication with the moneykeeper
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register sends a registration request to the server with the provided
	// user credentials. On success it stores the returned bearer token via
	// SetToken and returns the user value with the server-assigned ID filled
	// in from the token claims.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the user with the server. On success it stores the
	// returned bearer token via SetToken and returns the token together with
	// the user ID extracted from its claims.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// CreateRecord creates a new record in the given collection and returns
	// the stored row as the server materialised it.
	CreateRecord(ctx context.Context, kind RecordKind, record models.Record) (models.Record, error)

	// GetRecord fetches a single record by ID. Returns [ErrNotFound]
	// (wrapped) if the record does not exist or belongs to another user.
	GetRecord(ctx context.Context, kind RecordKind, id int64) (models.Record, error)

	// ListRecords fetches the records matching filter, newest first.
	ListRecords(ctx context.Context, kind RecordKind, filter models.RecordFilter) ([]models.Record, error)

	// UpdateRecord applies a partial update to the record with the given ID
	// and returns the updated row.
	UpdateRecord(ctx context.Context, kind RecordKind, id int64, update models.RecordUpdate) (models.Record, error)

	// DeleteRecord removes the record with the given ID. Returns
	// [ErrNotFound] (wrapped) if the record does not exist.
	DeleteRecord(ctx context.Context, kind RecordKind, id int64) error

	// RecordStats returns the total amount for the collection, optionally
	// constrained to a month (1-12) and year. Zero values mean "all time".
	RecordStats(ctx context.Context, kind RecordKind, month, year int) (float64, error)

	// RecordsByCategory returns per-category totals for the collection,
	// largest first, optionally constrained to a month (1-12) and year.
	RecordsByCategory(ctx context.Context, kind RecordKind, month, year int) ([]models.CategoryAmount, error)

	// RecordsMonthly returns per-month totals for the given year. Only months
	// with at least one record appear in the result.
	RecordsMonthly(ctx context.Context, kind RecordKind, year int) ([]models.MonthlyAmount, error)

	// ExportCSV downloads the collection as CSV and returns the raw document.
	ExportCSV(ctx context.Context, kind RecordKind) ([]byte, error)

	// DashboardStats fetches the aggregate dashboard summary: balance,
	// lifetime totals, current-month expense, and the recent transaction
	// feed.
	DashboardStats(ctx context.Context) (models.DashboardStats, error)

	// ExpenseTrend fetches the sparse per-month expense series for the given
	// year. A zero year means the current year.
	ExpenseTrend(ctx context.Context, year int) ([]models.MonthlyAmount, error)

	// IncomeVsExpense fetches the dense twelve-month income/expense
	// comparison for the given year. A zero year means the current year.
	IncomeVsExpense(ctx context.Context, year int) ([]models.MonthlyComparison, error)

	// Version returns the server build version string.
	Version(ctx context.Context) (string, error)
}
