package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-agency/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps its status and code", func(t *testing.T) {
		got := apperror.ToHTTP(apperror.ErrForbidden)
		assert.Equal(t, http.StatusForbidden, got.Status)
		assert.Equal(t, apperror.CodeForbidden, got.Code)
	})

	t.Run("wrapped app error is unwrapped", func(t *testing.T) {
		err := fmt.Errorf("approve: %w", apperror.ErrNotFound)
		got := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusNotFound, got.Status)
		assert.Equal(t, "Resource not found", got.Message)
	})

	t.Run("unknown error hides its message", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("dial tcp: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, "INTERNAL_ERROR", got.Code)
		assert.Equal(t, "Internal server error", got.Message)
	})
}

func TestAppError_WithCause(t *testing.T) {
	cause := errors.New("could not obtain lock")
	err := apperror.ErrConflict.WithCause(cause)

	assert.True(t, errors.Is(err, apperror.ErrConflict))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "could not obtain lock")
}
