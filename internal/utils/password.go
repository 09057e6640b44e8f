package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt hash from the given plaintext password.
//
// The cost parameter controls the work factor; values outside the range
// supported by bcrypt fall back to bcrypt.DefaultCost. The generated hash
// embeds its own random salt, so no separate salt storage is needed.
//
// Returns the hash in bcrypt's standard string encoding, or an error if the
// password exceeds bcrypt's 72-byte limit.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// bcrypt hash. A false result means the credentials do not match; it is not
// an error condition.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
