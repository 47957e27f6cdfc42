package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-hris-leave/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestAppError_WithDetails(t *testing.T) {
	sentinel := apperror.New("INSUFFICIENT_BALANCE", "insufficient leave balance", http.StatusUnprocessableEntity)

	derived := sentinel.WithDetails("insufficient Vacation balance: 5 available, 11 requested", map[string]any{"available": "5"})

	assert.True(t, errors.Is(derived, sentinel))
	assert.True(t, errors.Is(fmt.Errorf("submit: %w", derived), sentinel))
	assert.False(t, errors.Is(sentinel, derived))
	assert.Equal(t, "insufficient Vacation balance: 5 available, 11 requested", derived.Error())
	assert.Equal(t, sentinel.Code, derived.Code)
	assert.Equal(t, sentinel.HTTPStatus, derived.HTTPStatus)

	again := derived.WithDetails("other", nil)
	assert.True(t, errors.Is(again, sentinel))
}

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps code and details", func(t *testing.T) {
		err := apperror.New(apperror.CodeConflict, "leave overlaps", http.StatusConflict).
			WithDetails("leave overlaps an existing request", map[string]any{"id": "x"})

		httpErr := apperror.ToHTTP(fmt.Errorf("wrapped: %w", err))

		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Equal(t, apperror.CodeConflict, httpErr.Code)
		assert.Equal(t, "leave overlaps an existing request", httpErr.Message)
		assert.Equal(t, map[string]any{"id": "x"}, httpErr.Details)
	})

	t.Run("unknown error hides message", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.Equal(t, "Internal server error", httpErr.Message)
		assert.Nil(t, httpErr.Details)
	})
}

func TestMapValidationError_NonValidatorError(t *testing.T) {
	err := apperror.MapValidationError(errors.New("EOF"))

	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, apperror.CodeInvalidInput, httpErr.Code)
}
