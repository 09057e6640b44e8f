package models

// Transaction types used to tag entries of the merged recent-activity feed.
const (
	TransactionExpense = "expense"
	TransactionIncome  = "income"
)

// Transaction is one entry of the dashboard's merged recent-activity feed:
// a Record reduced to its display fields and tagged with the table it
// came from.
type Transaction struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
}

// DashboardStats is the response body of the dashboard stats endpoint.
//
// TotalBalance is always TotalIncome - TotalExpense and may be negative.
// MonthlyExpense covers the current calendar month evaluated in UTC.
// RecentTransactions holds at most 10 entries sorted descending by date.
type DashboardStats struct {
	TotalBalance       float64       `json:"total_balance"`
	TotalIncome        float64       `json:"total_income"`
	TotalExpense       float64       `json:"total_expense"`
	MonthlyExpense     float64       `json:"monthly_expense"`
	RecentTransactions []Transaction `json:"recent_transactions"`
}

// MonthlyAmount is one point of a sparse monthly series: a calendar month
// (1..12) that has at least one matching record, with the summed amount.
type MonthlyAmount struct {
	Month  int     `json:"month"`
	Amount float64 `json:"amount"`
}

// MonthlyComparison is one point of the dense income-vs-expense series.
// The series always contains twelve entries, one per calendar month, with
// zero values for months that have no records.
type MonthlyComparison struct {
	Month   int     `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// CategoryAmount is one slice of the category breakdown: a category label
// present in the filtered expense set and its summed amount.
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}
