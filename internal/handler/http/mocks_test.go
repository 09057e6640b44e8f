package http

import (
	"context"

	"moneykeeper/internal/service"
	"moneykeeper/models"
)

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	registerFn    func(ctx context.Context, user models.User) (models.User, error)
	loginFn       func(ctx context.Context, user models.User) (models.User, error)
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Register(ctx context.Context, user models.User) (models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, user)
	}
	return user, nil
}

func (m *mockAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, user)
	}
	return user, nil
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, user)
	}
	return models.Token{SignedString: "test-token"}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	return models.Token{UserID: 42}, nil
}

// ─────────────────────────────────────────────
// Mock: service.RecordService
// ─────────────────────────────────────────────

type mockRecordService struct {
	createFn     func(ctx context.Context, record models.Record) (models.Record, error)
	getFn        func(ctx context.Context, userID, id int64) (models.Record, error)
	listFn       func(ctx context.Context, userID int64, filter models.RecordFilter) ([]models.Record, error)
	updateFn     func(ctx context.Context, userID, id int64, update models.RecordUpdate) (models.Record, error)
	deleteFn     func(ctx context.Context, userID, id int64) error
	statsFn      func(ctx context.Context, userID int64, month, year int) (float64, error)
	byCategoryFn func(ctx context.Context, userID int64, month, year int) ([]models.CategoryAmount, error)
	monthlyFn    func(ctx context.Context, userID int64, year int) ([]models.MonthlyAmount, error)
	exportFn     func(ctx context.Context, userID int64) ([]models.Record, error)
}

func (m *mockRecordService) Create(ctx context.Context, record models.Record) (models.Record, error) {
	if m.createFn != nil {
		return m.createFn(ctx, record)
	}
	return record, nil
}

func (m *mockRecordService) Get(ctx context.Context, userID, id int64) (models.Record, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return models.Record{}, nil
}

func (m *mockRecordService) List(ctx context.Context, userID int64, filter models.RecordFilter) ([]models.Record, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, filter)
	}
	return nil, nil
}

func (m *mockRecordService) Update(ctx context.Context, userID, id int64, update models.RecordUpdate) (models.Record, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, id, update)
	}
	return models.Record{}, nil
}

func (m *mockRecordService) Delete(ctx context.Context, userID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockRecordService) Stats(ctx context.Context, userID int64, month, year int) (float64, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, userID, month, year)
	}
	return 0, nil
}

func (m *mockRecordService) ByCategory(ctx context.Context, userID int64, month, year int) ([]models.CategoryAmount, error) {
	if m.byCategoryFn != nil {
		return m.byCategoryFn(ctx, userID, month, year)
	}
	return nil, nil
}

func (m *mockRecordService) Monthly(ctx context.Context, userID int64, year int) ([]models.MonthlyAmount, error) {
	if m.monthlyFn != nil {
		return m.monthlyFn(ctx, userID, year)
	}
	return nil, nil
}

func (m *mockRecordService) Export(ctx context.Context, userID int64) ([]models.Record, error) {
	if m.exportFn != nil {
		return m.exportFn(ctx, userID)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: service.DashboardService
// ─────────────────────────────────────────────

type mockDashboardService struct {
	statsFn           func(ctx context.Context, userID int64) (models.DashboardStats, error)
	expenseTrendFn    func(ctx context.Context, userID int64, year int) ([]models.MonthlyAmount, error)
	incomeVsExpenseFn func(ctx context.Context, userID int64, year int) ([]models.MonthlyComparison, error)
}

func (m *mockDashboardService) Stats(ctx context.Context, userID int64) (models.DashboardStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, userID)
	}
	return models.DashboardStats{}, nil
}

func (m *mockDashboardService) ExpenseTrend(ctx context.Context, userID int64, year int) ([]models.MonthlyAmount, error) {
	if m.expenseTrendFn != nil {
		return m.expenseTrendFn(ctx, userID, year)
	}
	return nil, nil
}

func (m *mockDashboardService) IncomeVsExpense(ctx context.Context, userID int64, year int) ([]models.MonthlyComparison, error) {
	if m.incomeVsExpenseFn != nil {
		return m.incomeVsExpenseFn(ctx, userID, year)
	}
	return nil, nil
}

// testServices assembles a Services container from the given mocks, filling
// absent ones with permissive defaults.
func testServices(auth *mockAuthService, expenses, income *mockRecordService, dashboard *mockDashboardService) *service.Services {
	if auth == nil {
		auth = &mockAuthService{}
	}
	if expenses == nil {
		expenses = &mockRecordService{}
	}
	if income == nil {
		income = &mockRecordService{}
	}
	if dashboard == nil {
		dashboard = &mockDashboardService{}
	}
	return &service.Services{
		AuthService:      auth,
		ExpenseService:   expenses,
		IncomeService:    income,
		DashboardService: dashboard,
	}
}
