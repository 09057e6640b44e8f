package validators

import (
	"context"
	"time"

	"moneykeeper/models"
)

const (
	FieldTitle     = "title"
	FieldAmount    = "amount"
	FieldCategory  = "category"
	FieldDate      = "date"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldDateRange = "date_range"
)

// dateLayout is the only accepted date form. Records carry calendar days,
// not instants.
const dateLayout = "2006-01-02"

func isValidDate(date string) bool {
	_, err := time.Parse(dateLayout, date)
	return err == nil
}

type RecordValidator struct {
}

func NewRecordValidator() Validator {
	return &RecordValidator{}
}

func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Record:
		return v.validateRecord(ctx, value, fields...)
	case *models.Record:
		return v.validateRecord(ctx, *value, fields...)

	case models.RecordUpdate:
		return v.validateRecordUpdate(ctx, value, fields...)
	case *models.RecordUpdate:
		return v.validateRecordUpdate(ctx, *value, fields...)

	case models.RecordFilter:
		return v.validateRecordFilter(ctx, value, fields...)
	case *models.RecordFilter:
		return v.validateRecordFilter(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateRecord(_ context.Context, record models.Record, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldAmount, FieldCategory, FieldDate}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if record.Title == "" {
				return ErrEmptyTitle
			}
		case FieldAmount:
			if record.Amount < 0 {
				return ErrInvalidAmount
			}
		case FieldCategory:
			if record.Category == "" {
				return ErrEmptyCategory
			}
		case FieldDate:
			if !isValidDate(record.Date) {
				return ErrInvalidDate
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateRecordUpdate checks only the fields the update actually carries:
// a nil pointer means "leave as is" and is always acceptable, an empty update
// as a whole is rejected.
func (v *RecordValidator) validateRecordUpdate(_ context.Context, update models.RecordUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldAmount, FieldCategory, FieldDate}
	}

	if update.Empty() {
		return ErrNoFieldsToUpdate
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if update.Title != nil && *update.Title == "" {
				return ErrEmptyTitle
			}
		case FieldAmount:
			if update.Amount != nil && *update.Amount < 0 {
				return ErrInvalidAmount
			}
		case FieldCategory:
			if update.Category != nil && *update.Category == "" {
				return ErrEmptyCategory
			}
		case FieldDate:
			if update.Date != nil && !isValidDate(*update.Date) {
				return ErrInvalidDate
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateRecordFilter(_ context.Context, filter models.RecordFilter, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldStartDate, FieldEndDate, FieldDateRange}
	}

	for _, f := range fields {
		switch f {
		case FieldStartDate:
			if filter.StartDate != "" && !isValidDate(filter.StartDate) {
				return ErrInvalidFilterDate
			}
		case FieldEndDate:
			if filter.EndDate != "" && !isValidDate(filter.EndDate) {
				return ErrInvalidFilterDate
			}
		case FieldDateRange:
			if filter.StartDate != "" && filter.EndDate != "" && filter.StartDate > filter.EndDate {
				return ErrInvalidDateRange
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
