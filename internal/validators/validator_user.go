package validators

import (
	"context"
	"net/mail"
	"unicode/utf8"

	"moneykeeper/models"
)

const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

type UserValidator struct {
}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateUser(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if utf8.RuneCountInString(user.Username) < minUsernameLength {
				return ErrInvalidUsername
			}
		case FieldEmail:
			if _, err := mail.ParseAddress(user.Email); err != nil || user.Email == "" {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if utf8.RuneCountInString(user.Password) < minPasswordLength {
				return ErrInvalidPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
