package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername = errors.New("username must be at least 3 characters long")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidPassword = errors.New("password must be at least 6 characters long")

	ErrEmptyTitle        = errors.New("title is required")
	ErrEmptyCategory     = errors.New("category is required")
	ErrInvalidAmount     = errors.New("amount must be a non-negative number")
	ErrInvalidDate       = errors.New("date must be in YYYY-MM-DD format")
	ErrNoFieldsToUpdate  = errors.New("at least one field must be provided for update")
	ErrInvalidDateRange  = errors.New("start date must not be after end date")
	ErrInvalidFilterDate = errors.New("filter dates must be in YYYY-MM-DD format")
)
