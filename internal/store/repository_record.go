package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"moneykeeper/internal/logger"
	"moneykeeper/models"
)

// Record table names.
const (
	TableExpenses = "expenses"
	TableIncome   = "income"
)

// recordRepository is the SQL-backed implementation of [RecordRepository].
// One instance serves one record table; the expenses and income tables share
// the same shape except for the payment_method column, so the repository is
// parameterised by table name and the withPayment flag instead of being
// written twice.
type recordRepository struct {
	table       string
	withPayment bool
	db          *DB
	logger      *logger.Logger
}

// NewExpenseRepository constructs a [RecordRepository] over the expenses table.
func NewExpenseRepository(db *DB, logger *logger.Logger) RecordRepository {
	logger.Debug().Msg("creating expense repository")
	return &recordRepository{
		table:       TableExpenses,
		withPayment: true,
		db:          db,
		logger:      logger,
	}
}

// NewIncomeRepository constructs a [RecordRepository] over the income table.
func NewIncomeRepository(db *DB, logger *logger.Logger) RecordRepository {
	logger.Debug().Msg("creating income repository")
	return &recordRepository{
		table:       TableIncome,
		withPayment: false,
		db:          db,
		logger:      logger,
	}
}

// Create persists a new record and returns the fully populated [models.Record]
// with server-assigned fields (ID, CreatedAt).
//
// The new row id comes from a RETURNING clause on PostgreSQL and from
// LastInsertId on SQLite; the canonical row is then re-read so the caller
// always receives the database representation of the record.
func (r *recordRepository) Create(ctx context.Context, record models.Record) (models.Record, error) {
	log := logger.FromContext(ctx)

	returningID := r.db.driver == DriverPostgres
	query, args, err := buildInsertRecordQuery(r.db.builder, r.table, r.withPayment, record, returningID)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.Create").Str("table", r.table).Msg("failed to create query")
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var recordID int64
	if returningID {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&recordID)
	} else {
		var result sql.Result
		result, err = r.db.ExecContext(ctx, query, args...)
		if err == nil {
			recordID, err = result.LastInsertId()
		}
	}
	if err != nil {
		log.Err(err).
			Str("func", "*recordRepository.Create").
			Str("table", r.table).
			Int64("user_id", record.UserID).
			Msg("failed to insert record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return r.GetByID(ctx, record.UserID, recordID)
}

// GetByID retrieves a single record owned by the given user.
//
// Returns [ErrRecordNotFound] when no row matches both id and user_id, which
// also covers the case of a record owned by a different user.
func (r *recordRepository) GetByID(ctx context.Context, userID, id int64) (models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetRecordQuery(r.db.builder, r.table, r.withPayment, userID, id)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.GetByID").Str("table", r.table).Msg("failed to create query")
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var record models.Record
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := r.scanRecord(row.Scan, &record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, ErrRecordNotFound
		}

		log.Err(err).
			Str("func", "*recordRepository.GetByID").
			Str("table", r.table).
			Int64("user_id", userID).
			Int64("id", id).
			Msg("failed to scan record row")
		return models.Record{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

// List retrieves the user's records matching the given filter, newest first,
// capped at 100 rows.
//
// Returns an empty slice when nothing matches.
func (r *recordRepository) List(ctx context.Context, userID int64, filter models.RecordFilter) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRecordsQuery(r.db.builder, r.table, r.withPayment, userID, filter)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.List").Str("table", r.table).Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryRecords(ctx, query, args)
}

// Update applies the non-nil fields of update to the record identified by id
// and user_id, then returns the canonical updated row.
//
// An empty update is a no-op that returns the current row unchanged.
// Returns [ErrRecordNotFound] when the UPDATE affects no rows.
func (r *recordRepository) Update(ctx context.Context, userID, id int64, update models.RecordUpdate) (models.Record, error) {
	log := logger.FromContext(ctx)

	if update.Empty() {
		return r.GetByID(ctx, userID, id)
	}

	query, args, err := buildUpdateRecordQuery(r.db.builder, r.table, r.withPayment, userID, id, update)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.Update").Str("table", r.table).Msg("failed to create query")
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*recordRepository.Update").
			Str("table", r.table).
			Int64("user_id", userID).
			Int64("id", id).
			Msg("failed to execute update")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.Record{}, ErrRecordNotFound
	}

	return r.GetByID(ctx, userID, id)
}

// Delete removes the record identified by id and user_id.
//
// Returns [ErrRecordNotFound] when the DELETE affects no rows.
func (r *recordRepository) Delete(ctx context.Context, userID, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteRecordQuery(r.db.builder, r.table, userID, id)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.Delete").Str("table", r.table).Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*recordRepository.Delete").
			Str("table", r.table).
			Int64("user_id", userID).
			Int64("id", id).
			Msg("failed to execute delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// SumAmount totals the user's records, optionally narrowed to a month
// (1..12) and/or year. Zero arguments mean "no constraint".
//
// An empty result set yields 0, not an error.
func (r *recordRepository) SumAmount(ctx context.Context, userID int64, month, year int) (float64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSumAmountQuery(r.db.builder, r.table, userID, month, year)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.SumAmount").Str("table", r.table).Msg("failed to create query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total float64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		log.Err(err).
			Str("func", "*recordRepository.SumAmount").
			Str("table", r.table).
			Int64("user_id", userID).
			Msg("failed to execute sum query")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return total, nil
}

// SumByCategory groups the user's records by category, optionally narrowed
// to a month and/or year. Only categories with at least one matching record
// appear in the result.
func (r *recordRepository) SumByCategory(ctx context.Context, userID int64, month, year int) ([]models.CategoryAmount, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCategorySumQuery(r.db.builder, r.table, userID, month, year)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.SumByCategory").Str("table", r.table).Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*recordRepository.SumByCategory").
			Str("table", r.table).
			Int64("user_id", userID).
			Msg("failed to execute category sum query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.CategoryAmount, 0, 10)
	for rows.Next() {
		var item models.CategoryAmount
		if scanErr := rows.Scan(&item.Category, &item.Amount); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// SumByMonth groups the user's records by calendar month, optionally
// narrowed to a year, ordered by month ascending. Months with no records are
// absent from the result; without a year filter the same month of different
// years is summed together.
func (r *recordRepository) SumByMonth(ctx context.Context, userID int64, year int) ([]models.MonthlyAmount, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildMonthlySumQuery(r.db.builder, r.table, userID, year)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.SumByMonth").Str("table", r.table).Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*recordRepository.SumByMonth").
			Str("table", r.table).
			Int64("user_id", userID).
			Msg("failed to execute monthly sum query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.MonthlyAmount, 0, 12)
	for rows.Next() {
		var item models.MonthlyAmount
		if scanErr := rows.Scan(&item.Month, &item.Amount); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// ListRecent retrieves the user's newest records reduced to their display
// fields (id, title, amount, category, date), for the dashboard feed.
func (r *recordRepository) ListRecent(ctx context.Context, userID int64, limit uint64) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRecentRecordsQuery(r.db.builder, r.table, userID, limit)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.ListRecent").Str("table", r.table).Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*recordRepository.ListRecent").
			Str("table", r.table).
			Int64("user_id", userID).
			Msg("failed to execute recent records query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Record, 0, limit)
	for rows.Next() {
		var record models.Record
		if scanErr := rows.Scan(&record.ID, &record.Title, &record.Amount, &record.Category, &record.Date); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		record.UserID = userID
		results = append(results, record)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// ListAll retrieves up to limit full rows for the user, newest first.
// Used by the CSV export.
func (r *recordRepository) ListAll(ctx context.Context, userID int64, limit uint64) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildExportRecordsQuery(r.db.builder, r.table, r.withPayment, userID, limit)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.ListAll").Str("table", r.table).Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryRecords(ctx, query, args)
}

func (r *recordRepository) queryRecords(ctx context.Context, query string, args []any) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*recordRepository.queryRecords").
			Str("table", r.table).
			Msg("failed to execute records query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Record, 0, 50)
	for rows.Next() {
		var record models.Record
		if scanErr := r.scanRecord(rows.Scan, &record); scanErr != nil {
			log.Err(scanErr).
				Str("func", "*recordRepository.queryRecords").
				Str("table", r.table).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, record)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*recordRepository.queryRecords").
			Str("table", r.table).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// scanRecord scans one full row into record. The destination list must stay
// in sync with recordColumns.
func (r *recordRepository) scanRecord(scan func(dest ...any) error, record *models.Record) error {
	dest := []any{&record.ID, &record.Title, &record.Amount, &record.Category, &record.Date, &record.Description}
	if r.withPayment {
		dest = append(dest, &record.PaymentMethod)
	}
	dest = append(dest, &record.UserID, &record.CreatedAt)

	return scan(dest...)
}
