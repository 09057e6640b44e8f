package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"moneykeeper/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func ptrStr(s string) *string     { return &s }
func ptrFloat(f float64) *float64 { return &f }

func validRecord() models.Record {
	return models.Record{
		Title:    "Groceries",
		Amount:   42.5,
		Category: "Food",
		Date:     "2024-01-15",
		UserID:   1,
	}
}

// ---------------------------------------------------------------------------
// TestNewRecordValidator
// ---------------------------------------------------------------------------

func TestNewRecordValidator(t *testing.T) {
	v := NewRecordValidator()
	require.NotNil(t, v)
}

// ---------------------------------------------------------------------------
// TestRecordValidator_Dispatch
// ---------------------------------------------------------------------------

func TestRecordValidator_Dispatch(t *testing.T) {
	v := NewRecordValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		err := v.Validate(ctx, 42)
		require.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("Record value", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, validRecord()))
	})

	t.Run("Record pointer", func(t *testing.T) {
		r := validRecord()
		require.NoError(t, v.Validate(ctx, &r))
	})

	t.Run("RecordUpdate pointer", func(t *testing.T) {
		u := models.RecordUpdate{Title: ptrStr("New title")}
		require.NoError(t, v.Validate(ctx, &u))
	})

	t.Run("RecordFilter value", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, models.RecordFilter{}))
	})
}

// ---------------------------------------------------------------------------
// TestValidateRecord
// ---------------------------------------------------------------------------

func TestValidateRecord(t *testing.T) {
	v := NewRecordValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *models.Record)
		wantErr error
	}{
		{"valid", func(r *models.Record) {}, nil},
		{"empty title", func(r *models.Record) { r.Title = "" }, ErrEmptyTitle},
		{"negative amount", func(r *models.Record) { r.Amount = -1 }, ErrInvalidAmount},
		{"zero amount is allowed", func(r *models.Record) { r.Amount = 0 }, nil},
		{"empty category", func(r *models.Record) { r.Category = "" }, ErrEmptyCategory},
		{"empty date", func(r *models.Record) { r.Date = "" }, ErrInvalidDate},
		{"malformed date", func(r *models.Record) { r.Date = "15.01.2024" }, ErrInvalidDate},
		{"impossible date", func(r *models.Record) { r.Date = "2024-13-45" }, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)

			err := v.Validate(ctx, r)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRecord_FieldScoped(t *testing.T) {
	v := NewRecordValidator()
	ctx := context.Background()

	r := validRecord()
	r.Title = ""

	// only the date field is requested, so the empty title passes
	require.NoError(t, v.Validate(ctx, r, FieldDate))
	require.ErrorIs(t, v.Validate(ctx, r, FieldTitle), ErrEmptyTitle)
	require.ErrorIs(t, v.Validate(ctx, r, "no_such_field"), ErrUnknownField)
}

// ---------------------------------------------------------------------------
// TestValidateRecordUpdate
// ---------------------------------------------------------------------------

func TestValidateRecordUpdate(t *testing.T) {
	v := NewRecordValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		update  models.RecordUpdate
		wantErr error
	}{
		{"empty update", models.RecordUpdate{}, ErrNoFieldsToUpdate},
		{"title only", models.RecordUpdate{Title: ptrStr("Rent")}, nil},
		{"blank title", models.RecordUpdate{Title: ptrStr("")}, ErrEmptyTitle},
		{"negative amount", models.RecordUpdate{Amount: ptrFloat(-5)}, ErrInvalidAmount},
		{"blank category", models.RecordUpdate{Category: ptrStr("")}, ErrEmptyCategory},
		{"bad date", models.RecordUpdate{Date: ptrStr("yesterday")}, ErrInvalidDate},
		{
			"all fields valid",
			models.RecordUpdate{
				Title:    ptrStr("Rent"),
				Amount:   ptrFloat(800),
				Category: ptrStr("Housing"),
				Date:     ptrStr("2024-02-01"),
			},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.update)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateRecordFilter
// ---------------------------------------------------------------------------

func TestValidateRecordFilter(t *testing.T) {
	v := NewRecordValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		filter  models.RecordFilter
		wantErr error
	}{
		{"empty filter", models.RecordFilter{}, nil},
		{"valid range", models.RecordFilter{StartDate: "2024-01-01", EndDate: "2024-01-31"}, nil},
		{"bad start date", models.RecordFilter{StartDate: "01-01-2024"}, ErrInvalidFilterDate},
		{"bad end date", models.RecordFilter{EndDate: "Jan 31"}, ErrInvalidFilterDate},
		{"inverted range", models.RecordFilter{StartDate: "2024-02-01", EndDate: "2024-01-01"}, ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.filter)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
