package ride

import (
	"errors"
	"fmt"
)

// ErrRidesNotFound is returned when a listing window is empty or no ride has the requested ID
var ErrRidesNotFound = errors.New("could not find any rides")

// ValidationError reports client input that violates a field constraint
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError wraps a failure of the underlying store
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("ride storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is, or wraps, a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err is, or wraps, a StorageError
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
