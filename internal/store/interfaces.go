package store

import (
	"context"

	"moneykeeper/models"
)

// UserRepository persists and looks up user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// RecordRepository persists and aggregates one table of financial records.
// The expenses and income tables each get their own instance; everything a
// handler or service does with either table goes through this interface, so
// backends can be swapped without touching the layers above.
type RecordRepository interface {
	Create(ctx context.Context, record models.Record) (models.Record, error)
	GetByID(ctx context.Context, userID, id int64) (models.Record, error)
	List(ctx context.Context, userID int64, filter models.RecordFilter) ([]models.Record, error)
	Update(ctx context.Context, userID, id int64, update models.RecordUpdate) (models.Record, error)
	Delete(ctx context.Context, userID, id int64) error

	SumAmount(ctx context.Context, userID int64, month, year int) (float64, error)
	SumByCategory(ctx context.Context, userID int64, month, year int) ([]models.CategoryAmount, error)
	SumByMonth(ctx context.Context, userID int64, year int) ([]models.MonthlyAmount, error)
	ListRecent(ctx context.Context, userID int64, limit uint64) ([]models.Record, error)
	ListAll(ctx context.Context, userID int64, limit uint64) ([]models.Record, error)
}
