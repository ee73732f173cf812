package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("access forbidden")
)

// ValidationErrorf builds an error that matches ErrValidation with errors.Is.
func ValidationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
