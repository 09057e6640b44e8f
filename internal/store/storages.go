package store

import (
	"moneykeeper/internal/logger"
)

// Storages bundles all repositories behind a single handle that the service
// layer receives at construction time.
type Storages struct {
	UserRepository    UserRepository
	ExpenseRepository RecordRepository
	IncomeRepository  RecordRepository
}

// NewStorages wires every repository to the given database connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		ExpenseRepository: NewExpenseRepository(db, log),
		IncomeRepository:  NewIncomeRepository(db, log),
	}
}
