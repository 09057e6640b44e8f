package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique login identifier used during authentication.
	Username string `json:"username"`

	// Email is the unique contact address supplied at registration.
	Email string `json:"email"`

	// Password carries the plaintext password on inbound register and login
	// requests only. It is never persisted and never serialized in responses.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored in the database.
	// It is never exposed via JSON.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
