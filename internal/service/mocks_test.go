package service

import (
	"context"

	"moneykeeper/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn         func(ctx context.Context, user models.User) (models.User, error)
	findUserByUsernameFn func(ctx context.Context, username string) (models.User, error)
	findUserByIDFn       func(ctx context.Context, userID int64) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	if m.findUserByUsernameFn != nil {
		return m.findUserByUsernameFn(ctx, username)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findUserByIDFn != nil {
		return m.findUserByIDFn(ctx, userID)
	}
	return models.User{}, nil
}

// ─────────────────────────────────────────────
// Mock: store.RecordRepository
// ─────────────────────────────────────────────

type mockRecordRepository struct {
	createFn        func(ctx context.Context, record models.Record) (models.Record, error)
	getByIDFn       func(ctx context.Context, userID, id int64) (models.Record, error)
	listFn          func(ctx context.Context, userID int64, filter models.RecordFilter) ([]models.Record, error)
	updateFn        func(ctx context.Context, userID, id int64, update models.RecordUpdate) (models.Record, error)
	deleteFn        func(ctx context.Context, userID, id int64) error
	sumAmountFn     func(ctx context.Context, userID int64, month, year int) (float64, error)
	sumByCategoryFn func(ctx context.Context, userID int64, month, year int) ([]models.CategoryAmount, error)
	sumByMonthFn    func(ctx context.Context, userID int64, year int) ([]models.MonthlyAmount, error)
	listRecentFn    func(ctx context.Context, userID int64, limit uint64) ([]models.Record, error)
	listAllFn       func(ctx context.Context, userID int64, limit uint64) ([]models.Record, error)
}

func (m *mockRecordRepository) Create(ctx context.Context, record models.Record) (models.Record, error) {
	if m.createFn != nil {
		return m.createFn(ctx, record)
	}
	return record, nil
}

func (m *mockRecordRepository) GetByID(ctx context.Context, userID, id int64) (models.Record, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, userID, id)
	}
	return models.Record{}, nil
}

func (m *mockRecordRepository) List(ctx context.Context, userID int64, filter models.RecordFilter) ([]models.Record, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, filter)
	}
	return nil, nil
}

func (m *mockRecordRepository) Update(ctx context.Context, userID, id int64, update models.RecordUpdate) (models.Record, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, id, update)
	}
	return models.Record{}, nil
}

func (m *mockRecordRepository) Delete(ctx context.Context, userID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockRecordRepository) SumAmount(ctx context.Context, userID int64, month, year int) (float64, error) {
	if m.sumAmountFn != nil {
		return m.sumAmountFn(ctx, userID, month, year)
	}
	return 0, nil
}

func (m *mockRecordRepository) SumByCategory(ctx context.Context, userID int64, month, year int) ([]models.CategoryAmount, error) {
	if m.sumByCategoryFn != nil {
		return m.sumByCategoryFn(ctx, userID, month, year)
	}
	return nil, nil
}

func (m *mockRecordRepository) SumByMonth(ctx context.Context, userID int64, year int) ([]models.MonthlyAmount, error) {
	if m.sumByMonthFn != nil {
		return m.sumByMonthFn(ctx, userID, year)
	}
	return nil, nil
}

func (m *mockRecordRepository) ListRecent(ctx context.Context, userID int64, limit uint64) ([]models.Record, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockRecordRepository) ListAll(ctx context.Context, userID int64, limit uint64) ([]models.Record, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx, userID, limit)
	}
	return nil, nil
}
