package models

import "time"

// Record is a single financial entry owned by one user. The same shape backs
// both the expenses and the income tables; income records never carry a
// payment method, which is why the field is omitted from JSON when empty.
//
// Date is stored and transported as a plain "YYYY-MM-DD" string: the calendar
// day is the only precision the domain has, and the textual form makes
// month/year filtering and descending-date ordering trivial in SQL.
type Record struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	Date          string  `json:"date"`
	Description   string  `json:"description,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`

	// UserID references the owning user. Every query against record tables
	// is scoped by this value.
	UserID int64 `json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
}

// RecordUpdate describes a partial update of a Record. Nil fields are left
// untouched; non-nil fields are written as-is. The dynamic UPDATE statement
// is assembled from exactly the non-nil members.
type RecordUpdate struct {
	Title         *string  `json:"title"`
	Amount        *float64 `json:"amount"`
	Category      *string  `json:"category"`
	Date          *string  `json:"date"`
	Description   *string  `json:"description"`
	PaymentMethod *string  `json:"payment_method"`
}

// Empty reports whether the update contains no fields to apply.
func (u RecordUpdate) Empty() bool {
	return u.Title == nil && u.Amount == nil && u.Category == nil &&
		u.Date == nil && u.Description == nil && u.PaymentMethod == nil
}

// RecordFilter narrows record queries. Zero values mean "no constraint".
//
// Month and Year are matched against the textual "MM" and "YYYY" components
// of the stored date (the month is zero-padded to two digits before
// comparison). StartDate and EndDate are inclusive "YYYY-MM-DD" bounds.
// Search matches title or category with a substring LIKE.
type RecordFilter struct {
	Category  string
	Month     int
	Year      int
	StartDate string
	EndDate   string
	Search    string
}
