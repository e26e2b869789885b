package services

import (
	"errors"

	"poultry-books/internal/validation"
)

// ErrNotFound signals a lookup by id that matched no row. Handlers translate
// it into a 404; it is not a failure of the store.
var ErrNotFound = errors.New("record not found")

// ConflictError reports a duplicate unique key (dc_number, invoice_number).
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string { return e.Field + "_already_exists" }

// ValidationError reports malformed input rejected before any write.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string { return "validation_failed" }
