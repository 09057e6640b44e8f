// Package service contains the business logic layer of the application.
//
// Services sit between the HTTP handlers and the store: they validate input,
// enforce ownership and authentication rules, and translate storage errors
// into domain errors. Handlers depend on the interfaces declared here, never
// on concrete implementations.
package service

import (
	"context"

	"moneykeeper/models"
)

// AuthService manages user accounts and JWT token lifecycle.
type AuthService interface {

	// Register creates a new user account from a registration request
	// carrying Username, Email and a plaintext Password. The password is
	// bcrypt-hashed before persistence and never stored in plain form.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login verifies the supplied credentials against the stored bcrypt
	// hash and returns the account on success.
	Login(ctx context.Context, user models.User) (models.User, error)

	// CreateToken issues a signed JWT for the given user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw JWT string and extracts its claims.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// RecordService manages one class of financial records (expenses or income).
// Two instances of the same implementation serve the two record tables.
// Every operation is scoped to the owning user.
type RecordService interface {

	// Create validates and persists a new record for the user.
	Create(ctx context.Context, record models.Record) (models.Record, error)

	// Get retrieves a single record owned by the user.
	Get(ctx context.Context, userID, id int64) (models.Record, error)

	// List retrieves the user's records matching the filter, newest first.
	List(ctx context.Context, userID int64, filter models.RecordFilter) ([]models.Record, error)

	// Update applies a partial update to the user's record and returns the
	// updated row.
	Update(ctx context.Context, userID, id int64, update models.RecordUpdate) (models.Record, error)

	// Delete removes the user's record.
	Delete(ctx context.Context, userID, id int64) error

	// Stats totals the user's records, optionally narrowed to a month
	// (1..12) and/or year. Zero means "no constraint".
	Stats(ctx context.Context, userID int64, month, year int) (float64, error)

	// ByCategory groups the user's records by category, optionally narrowed
	// to a month and/or year.
	ByCategory(ctx context.Context, userID int64, month, year int) ([]models.CategoryAmount, error)

	// Monthly groups the user's records by calendar month, optionally
	// narrowed to a year. The series is sparse.
	Monthly(ctx context.Context, userID int64, year int) ([]models.MonthlyAmount, error)

	// Export retrieves the user's records for CSV export, newest first.
	Export(ctx context.Context, userID int64) ([]models.Record, error)
}

// DashboardService aggregates expense and income data into the read models
// behind the dashboard endpoints.
type DashboardService interface {

	// Stats computes the user's overall totals, the current-month expense
	// total and the merged recent-activity feed.
	Stats(ctx context.Context, userID int64) (models.DashboardStats, error)

	// ExpenseTrend returns the sparse per-month expense series, optionally
	// narrowed to a year. Without a year the same calendar month of
	// different years is summed together.
	ExpenseTrend(ctx context.Context, userID int64, year int) ([]models.MonthlyAmount, error)

	// IncomeVsExpense returns the dense twelve-entry per-month comparison
	// of income and expense totals for the given year (current year when
	// zero).
	IncomeVsExpense(ctx context.Context, userID int64, year int) ([]models.MonthlyComparison, error)
}
