package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"moneykeeper/internal/logger"
	"moneykeeper/internal/store"
	"moneykeeper/models"
)

// recentFeedPerTable is how many newest rows each record table contributes
// to the merged recent-activity feed before the merge is truncated.
const (
	recentFeedPerTable = 5
	recentFeedLimit    = 10
	monthsInYear       = 12
)

// dashboardService is the concrete implementation of DashboardService.
// It reads from both record repositories and never writes.
type dashboardService struct {
	expenses store.RecordRepository
	income   store.RecordRepository
	logger   *logger.Logger

	// now supplies the current time for "current month" and "current year"
	// defaults. Calendar boundaries are evaluated in UTC.
	now func() time.Time
}

// NewDashboardService constructs a DashboardService over the two record
// repositories.
func NewDashboardService(expenses, income store.RecordRepository, logger *logger.Logger) DashboardService {
	return &dashboardService{
		expenses: expenses,
		income:   income,
		logger:   logger,
		now:      time.Now,
	}
}

// Stats computes the dashboard summary for the user: lifetime income and
// expense totals, the balance, the expense total of the current UTC calendar
// month, and the merged recent-activity feed.
//
// Any failing read fails the whole call; the dashboard never shows partial
// numbers.
func (s *dashboardService) Stats(ctx context.Context, userID int64) (models.DashboardStats, error) {
	log := logger.FromContext(ctx)

	totalExpense, err := s.expenses.SumAmount(ctx, userID, 0, 0)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("total expense read failed")
		return models.DashboardStats{}, fmt.Errorf("total expense read failed: %w", err)
	}

	totalIncome, err := s.income.SumAmount(ctx, userID, 0, 0)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("total income read failed")
		return models.DashboardStats{}, fmt.Errorf("total income read failed: %w", err)
	}

	nowUTC := s.now().UTC()
	monthlyExpense, err := s.expenses.SumAmount(ctx, userID, int(nowUTC.Month()), nowUTC.Year())
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("monthly expense read failed")
		return models.DashboardStats{}, fmt.Errorf("monthly expense read failed: %w", err)
	}

	recent, err := s.recentTransactions(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("recent transactions read failed")
		return models.DashboardStats{}, fmt.Errorf("recent transactions read failed: %w", err)
	}

	return models.DashboardStats{
		TotalBalance:       totalIncome - totalExpense,
		TotalIncome:        totalIncome,
		TotalExpense:       totalExpense,
		MonthlyExpense:     monthlyExpense,
		RecentTransactions: recent,
	}, nil
}

// recentTransactions merges the newest expenses and income rows into one
// feed, newest first. Dates are "YYYY-MM-DD" strings, so lexicographic order
// is chronological order; the stable sort keeps expenses ahead of income on
// equal dates.
func (s *dashboardService) recentTransactions(ctx context.Context, userID int64) ([]models.Transaction, error) {
	recentExpenses, err := s.expenses.ListRecent(ctx, userID, recentFeedPerTable)
	if err != nil {
		return nil, fmt.Errorf("recent expenses read failed: %w", err)
	}

	recentIncome, err := s.income.ListRecent(ctx, userID, recentFeedPerTable)
	if err != nil {
		return nil, fmt.Errorf("recent income read failed: %w", err)
	}

	feed := make([]models.Transaction, 0, len(recentExpenses)+len(recentIncome))
	for _, record := range recentExpenses {
		feed = append(feed, asTransaction(record, models.TransactionExpense))
	}
	for _, record := range recentIncome {
		feed = append(feed, asTransaction(record, models.TransactionIncome))
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date > feed[j].Date
	})

	if len(feed) > recentFeedLimit {
		feed = feed[:recentFeedLimit]
	}

	return feed, nil
}

func asTransaction(record models.Record, transactionType string) models.Transaction {
	return models.Transaction{
		ID:       record.ID,
		Title:    record.Title,
		Amount:   record.Amount,
		Type:     transactionType,
		Date:     record.Date,
		Category: record.Category,
	}
}

// ExpenseTrend returns the sparse per-month expense series. Months without
// expenses are absent; without a year constraint the same calendar month of
// different years is summed together.
func (s *dashboardService) ExpenseTrend(ctx context.Context, userID int64, year int) ([]models.MonthlyAmount, error) {
	trend, err := s.expenses.SumByMonth(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("expense trend read failed: %w", err)
	}

	return trend, nil
}

// IncomeVsExpense returns the dense twelve-entry per-month comparison for
// the given year. A zero year defaults to the current UTC year. Months
// without records carry zero values.
func (s *dashboardService) IncomeVsExpense(ctx context.Context, userID int64, year int) ([]models.MonthlyComparison, error) {
	log := logger.FromContext(ctx)

	if year == 0 {
		year = s.now().UTC().Year()
	}

	expenseByMonth, err := s.expenses.SumByMonth(ctx, userID, year)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Int("year", year).Msg("expense by month read failed")
		return nil, fmt.Errorf("expense by month read failed: %w", err)
	}

	incomeByMonth, err := s.income.SumByMonth(ctx, userID, year)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Int("year", year).Msg("income by month read failed")
		return nil, fmt.Errorf("income by month read failed: %w", err)
	}

	comparison := make([]models.MonthlyComparison, monthsInYear)
	for i := range comparison {
		comparison[i].Month = i + 1
	}
	for _, item := range expenseByMonth {
		if item.Month >= 1 && item.Month <= monthsInYear {
			comparison[item.Month-1].Expense = item.Amount
		}
	}
	for _, item := range incomeByMonth {
		if item.Month >= 1 && item.Month <= monthsInYear {
			comparison[item.Month-1].Income = item.Amount
		}
	}

	return comparison, nil
}
