package store

import (
	"errors"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"

	"moneykeeper/models"
)

// Dates are stored as TEXT in "YYYY-MM-DD" form, so month and year filters
// are plain substring comparisons. substr() works identically in SQLite and
// PostgreSQL, which keeps every query portable across both backends.
const (
	monthExpr = "substr(date, 6, 2)"
	yearExpr  = "substr(date, 1, 4)"
)

var errEmptyUpdate = errors.New("no fields to update")

// recordColumns returns the full column list for a record table. The income
// table has no payment_method column.
func recordColumns(withPayment bool) []string {
	cols := []string{"id", "title", "amount", "category", "date", "description"}
	if withPayment {
		cols = append(cols, "payment_method")
	}
	return append(cols, "user_id", "created_at")
}

// padMonth normalises a month filter value to two digits (3 -> "03") so it
// matches the "MM" part of stored dates.
func padMonth(month int) string {
	return fmt.Sprintf("%02d", month)
}

func buildInsertRecordQuery(sb sq.StatementBuilderType, table string, withPayment bool, record models.Record, returningID bool) (string, []any, error) {
	cols := []string{"title", "amount", "category", "date", "description"}
	vals := []any{record.Title, record.Amount, record.Category, record.Date, record.Description}
	if withPayment {
		cols = append(cols, "payment_method")
		vals = append(vals, record.PaymentMethod)
	}
	cols = append(cols, "user_id")
	vals = append(vals, record.UserID)

	q := sb.Insert(table).Columns(cols...).Values(vals...)
	if returningID {
		q = q.Suffix("RETURNING id")
	}

	return q.ToSql()
}

func buildGetRecordQuery(sb sq.StatementBuilderType, table string, withPayment bool, userID, id int64) (string, []any, error) {
	return sb.Select(recordColumns(withPayment)...).
		From(table).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
}

func buildListRecordsQuery(sb sq.StatementBuilderType, table string, withPayment bool, userID int64, filter models.RecordFilter) (string, []any, error) {
	q := sb.Select(recordColumns(withPayment)...).
		From(table).
		Where(sq.Eq{"user_id": userID})

	if filter.Category != "" {
		q = q.Where(sq.Eq{"category": filter.Category})
	}
	if filter.Month != 0 {
		q = q.Where(sq.Eq{monthExpr: padMonth(filter.Month)})
	}
	if filter.Year != 0 {
		q = q.Where(sq.Eq{yearExpr: strconv.Itoa(filter.Year)})
	}
	if filter.StartDate != "" {
		q = q.Where(sq.GtOrEq{"date": filter.StartDate})
	}
	if filter.EndDate != "" {
		q = q.Where(sq.LtOrEq{"date": filter.EndDate})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(sq.Or{
			sq.Like{"title": pattern},
			sq.Like{"category": pattern},
		})
	}

	return q.OrderBy("date DESC").Limit(100).ToSql()
}

func buildUpdateRecordQuery(sb sq.StatementBuilderType, table string, withPayment bool, userID, id int64, update models.RecordUpdate) (string, []any, error) {
	if update.Empty() {
		return "", nil, errEmptyUpdate
	}

	q := sb.Update(table)

	if update.Title != nil {
		q = q.Set("title", *update.Title)
	}
	if update.Amount != nil {
		q = q.Set("amount", *update.Amount)
	}
	if update.Category != nil {
		q = q.Set("category", *update.Category)
	}
	if update.Date != nil {
		q = q.Set("date", *update.Date)
	}
	if update.Description != nil {
		q = q.Set("description", *update.Description)
	}
	if withPayment && update.PaymentMethod != nil {
		q = q.Set("payment_method", *update.PaymentMethod)
	}

	return q.Where(sq.Eq{"id": id, "user_id": userID}).ToSql()
}

func buildDeleteRecordQuery(sb sq.StatementBuilderType, table string, userID, id int64) (string, []any, error) {
	return sb.Delete(table).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
}

// buildSumAmountQuery totals a user's records, optionally narrowed to a
// month and/or year. COALESCE keeps the result at zero for empty sets
// instead of NULL.
func buildSumAmountQuery(sb sq.StatementBuilderType, table string, userID int64, month, year int) (string, []any, error) {
	q := sb.Select("COALESCE(SUM(amount), 0)").
		From(table).
		Where(sq.Eq{"user_id": userID})

	if month != 0 {
		q = q.Where(sq.Eq{monthExpr: padMonth(month)})
	}
	if year != 0 {
		q = q.Where(sq.Eq{yearExpr: strconv.Itoa(year)})
	}

	return q.ToSql()
}

func buildCategorySumQuery(sb sq.StatementBuilderType, table string, userID int64, month, year int) (string, []any, error) {
	q := sb.Select("category", "COALESCE(SUM(amount), 0) AS amount").
		From(table).
		Where(sq.Eq{"user_id": userID})

	if month != 0 {
		q = q.Where(sq.Eq{monthExpr: padMonth(month)})
	}
	if year != 0 {
		q = q.Where(sq.Eq{yearExpr: strconv.Itoa(year)})
	}

	return q.GroupBy("category").ToSql()
}

// buildMonthlySumQuery groups a user's records by calendar month. Without a
// year filter the same month of different years is summed together, matching
// the ungrouped-by-year trend behaviour.
func buildMonthlySumQuery(sb sq.StatementBuilderType, table string, userID int64, year int) (string, []any, error) {
	q := sb.Select(monthExpr+" AS month", "COALESCE(SUM(amount), 0) AS amount").
		From(table).
		Where(sq.Eq{"user_id": userID})

	if year != 0 {
		q = q.Where(sq.Eq{yearExpr: strconv.Itoa(year)})
	}

	return q.GroupBy(monthExpr).OrderBy("month").ToSql()
}

// buildRecentRecordsQuery selects the newest records for the dashboard feed.
// The id tie-breaker keeps ordering stable for same-day records.
func buildRecentRecordsQuery(sb sq.StatementBuilderType, table string, userID int64, limit uint64) (string, []any, error) {
	return sb.Select("id", "title", "amount", "category", "date").
		From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date DESC", "id DESC").
		Limit(limit).
		ToSql()
}

// buildExportRecordsQuery selects full rows for CSV export, newest first.
func buildExportRecordsQuery(sb sq.StatementBuilderType, table string, withPayment bool, userID int64, limit uint64) (string, []any, error) {
	return sb.Select(recordColumns(withPayment)...).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date DESC").
		Limit(limit).
		ToSql()
}

func buildCreateUserQuery(sb sq.StatementBuilderType, user models.User, returningID bool) (string, []any, error) {
	q := sb.Insert(models.User{}.TableName()).
		Columns("username", "email", "password_hash").
		Values(user.Username, user.Email, user.PasswordHash)
	if returningID {
		q = q.Suffix("RETURNING id")
	}

	return q.ToSql()
}

func buildFindUserByUsernameQuery(sb sq.StatementBuilderType, username string) (string, []any, error) {
	return sb.Select("id", "username", "email", "password_hash", "created_at").
		From(models.User{}.TableName()).
		Where(sq.Eq{"username": username}).
		ToSql()
}

func buildFindUserByIDQuery(sb sq.StatementBuilderType, userID int64) (string, []any, error) {
	return sb.Select("id", "username", "email", "password_hash", "created_at").
		From(models.User{}.TableName()).
		Where(sq.Eq{"id": userID}).
		ToSql()
}
