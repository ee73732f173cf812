// Package password hashes and verifies account passwords with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinLength is the shortest password accepted at signup.
const MinLength = 6

// MaxLength is the bcrypt input limit in bytes.
const MaxLength = 72

var ErrTooLong = errors.New("password exceeds 72 bytes")

// Hash returns a bcrypt hash of password using the default cost.
func Hash(password string) (string, error) {
	if len(password) > MaxLength {
		return "", ErrTooLong
	}
	sum, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(sum), nil
}

// Verify reports whether password matches hash. A malformed hash is an error;
// a plain mismatch is (false, nil).
func Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("verify password: %w", err)
	}
}
