package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gocomet/rides-api/internal/domain/ride"
)

// Error codes returned in the error_code field
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeServer        = "SERVER_ERROR"
	CodeRidesNotFound = "RIDES_NOT_FOUND_ERROR"
	CodeInProgress    = "REQUEST_IN_PROGRESS"
	CodeKeyReused     = "IDEMPOTENCY_KEY_REUSED"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Validation creates a 400 error echoing the failed rule
func Validation(message string, err error) *AppError {
	return NewAppError(CodeValidation, message, http.StatusBadRequest, err)
}

// RidesNotFound creates a 404 error
func RidesNotFound(err error) *AppError {
	return NewAppError(CodeRidesNotFound, "Could not find any rides", http.StatusNotFound, err)
}

// Server creates a 500 error. The cause is kept for logging only.
func Server(err error) *AppError {
	return NewAppError(CodeServer, "Unknown error", http.StatusInternalServerError, err)
}

// InProgress creates a 409 error for a request whose Idempotency-Key is
// still being processed
func InProgress() *AppError {
	return NewAppError(CodeInProgress, "A request with this Idempotency-Key is already in progress", http.StatusConflict, nil)
}

// KeyReused creates a 422 error for an Idempotency-Key sent with a different body
func KeyReused() *AppError {
	return NewAppError(CodeKeyReused, "Idempotency-Key was already used with a different request body", http.StatusUnprocessableEntity, nil)
}

// FromError maps domain errors to their transport form. Anything unrecognised
// becomes a server error.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var ve *ride.ValidationError
	switch {
	case errors.As(err, &ve):
		return Validation(ve.Message, err)
	case errors.Is(err, ride.ErrRidesNotFound):
		return RidesNotFound(err)
	default:
		return Server(err)
	}
}
