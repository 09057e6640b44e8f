package service

import (
	"context"
	"fmt"

	"moneykeeper/internal/logger"
	"moneykeeper/internal/store"
	"moneykeeper/internal/validators"
	"moneykeeper/models"
)

// exportLimit caps the number of rows a single CSV export may pull.
const exportLimit = 10000

// recordService is the concrete implementation of RecordService. The same
// implementation serves expenses and income; the difference between the two
// lives entirely in the injected repository.
type recordService struct {
	repository store.RecordRepository
	validator  validators.Validator
	logger     *logger.Logger
}

// NewRecordService constructs a RecordService over the given repository.
func NewRecordService(repository store.RecordRepository, logger *logger.Logger) RecordService {
	return &recordService{
		repository: repository,
		validator:  validators.NewRecordValidator(),
		logger:     logger,
	}
}

// Create validates the record and persists it for the user.
//
// Returns ErrInvalidDataProvided wrapping the specific validation error, or
// a wrapped storage error.
func (s *recordService) Create(ctx context.Context, record models.Record) (models.Record, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, record); err != nil {
		log.Err(err).Int64("user_id", record.UserID).Msg("invalid record data provided")
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	created, err := s.repository.Create(ctx, record)
	if err != nil {
		log.Err(err).Int64("user_id", record.UserID).Msg("record creation ended with error")
		return models.Record{}, fmt.Errorf("record creation ended with error: %w", err)
	}

	return created, nil
}

// Get retrieves a single record owned by the user. Storage errors, including
// store.ErrRecordNotFound, pass through wrapped.
func (s *recordService) Get(ctx context.Context, userID, id int64) (models.Record, error) {
	record, err := s.repository.GetByID(ctx, userID, id)
	if err != nil {
		return models.Record{}, fmt.Errorf("record lookup ended with error: %w", err)
	}

	return record, nil
}

// List retrieves the user's records matching the filter. The filter dates
// are validated before the query runs.
func (s *recordService) List(ctx context.Context, userID int64, filter models.RecordFilter) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, filter); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("invalid record filter provided")
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	records, err := s.repository.List(ctx, userID, filter)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("record listing ended with error")
		return nil, fmt.Errorf("record listing ended with error: %w", err)
	}

	return records, nil
}

// Update validates the carried fields and applies the partial update.
//
// An update with no fields at all is rejected at the transport layer by
// JSON decoding into RecordUpdate; here it degrades to a read of the current
// row, matching the repository contract.
func (s *recordService) Update(ctx context.Context, userID, id int64, update models.RecordUpdate) (models.Record, error) {
	log := logger.FromContext(ctx)

	if !update.Empty() {
		if err := s.validator.Validate(ctx, update); err != nil {
			log.Err(err).Int64("user_id", userID).Int64("id", id).Msg("invalid record update provided")
			return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
	}

	updated, err := s.repository.Update(ctx, userID, id, update)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Int64("id", id).Msg("record update ended with error")
		return models.Record{}, fmt.Errorf("record update ended with error: %w", err)
	}

	return updated, nil
}

// Delete removes the user's record. store.ErrRecordNotFound passes through
// wrapped when nothing was deleted.
func (s *recordService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repository.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("record deletion ended with error: %w", err)
	}

	return nil
}

// Stats totals the user's records for the optional month/year constraint.
func (s *recordService) Stats(ctx context.Context, userID int64, month, year int) (float64, error) {
	total, err := s.repository.SumAmount(ctx, userID, month, year)
	if err != nil {
		return 0, fmt.Errorf("record stats ended with error: %w", err)
	}

	return total, nil
}

// ByCategory groups the user's records by category for the optional
// month/year constraint.
func (s *recordService) ByCategory(ctx context.Context, userID int64, month, year int) ([]models.CategoryAmount, error) {
	results, err := s.repository.SumByCategory(ctx, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("category breakdown ended with error: %w", err)
	}

	return results, nil
}

// Monthly groups the user's records by calendar month for the optional year
// constraint.
func (s *recordService) Monthly(ctx context.Context, userID int64, year int) ([]models.MonthlyAmount, error) {
	results, err := s.repository.SumByMonth(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("monthly aggregation ended with error: %w", err)
	}

	return results, nil
}

// Export retrieves up to exportLimit full rows for the user, newest first.
func (s *recordService) Export(ctx context.Context, userID int64) ([]models.Record, error) {
	records, err := s.repository.ListAll(ctx, userID, exportLimit)
	if err != nil {
		return nil, fmt.Errorf("record export ended with error: %w", err)
	}

	return records, nil
}
