package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gocomet/rides-api/internal/domain/ride"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    string
		status  int
		message string
	}{
		{
			name:    "validation error echoes rule",
			err:     &ride.ValidationError{Field: "rider_name", Message: "Rider name must be a non empty string"},
			code:    CodeValidation,
			status:  http.StatusBadRequest,
			message: "Rider name must be a non empty string",
		},
		{
			name:    "wrapped not found",
			err:     fmt.Errorf("list rides: %w", ride.ErrRidesNotFound),
			code:    CodeRidesNotFound,
			status:  http.StatusNotFound,
			message: "Could not find any rides",
		},
		{
			name:    "storage error is opaque",
			err:     &ride.StorageError{Op: "insert", Err: errors.New("pq: password authentication failed")},
			code:    CodeServer,
			status:  http.StatusInternalServerError,
			message: "Unknown error",
		},
		{
			name:    "unknown error",
			err:     errors.New("boom"),
			code:    CodeServer,
			status:  http.StatusInternalServerError,
			message: "Unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromError(tt.err)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, appErr.Status)
			assert.Equal(t, tt.message, appErr.Message)
			assert.ErrorIs(t, appErr, tt.err)
		})
	}
}

func TestFromError_PassesThroughAppError(t *testing.T) {
	orig := Validation("bad body", nil)
	assert.Same(t, orig, FromError(fmt.Errorf("decode: %w", orig)))
}

func TestIdempotencyErrors(t *testing.T) {
	assert.Equal(t, http.StatusConflict, InProgress().Status)
	assert.Equal(t, CodeInProgress, InProgress().Code)
	assert.Equal(t, http.StatusUnprocessableEntity, KeyReused().Status)
	assert.Equal(t, CodeKeyReused, KeyReused().Code)
}
