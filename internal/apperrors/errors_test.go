package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", NewNotFoundError("payment", "p1"), http.StatusNotFound},
		{"validation", fmt.Errorf("%w: reason required", ErrValidation), http.StatusUnprocessableEntity},
		{"forbidden", fmt.Errorf("%w: role 2", ErrForbidden), http.StatusForbidden},
		{"invalid state", fmt.Errorf("%w: schedule cancelled", ErrInvalidState), http.StatusForbidden},
		{"invalid transition", fmt.Errorf("%w: approve from draft", ErrInvalidTransition), http.StatusBadRequest},
		{"already generated", ErrAlreadyGenerated, http.StatusBadRequest},
		{"conflict", NewConflictError("invoice", "i1"), http.StatusConflict},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"app error code", NewAppError(http.StatusServiceUnavailable, "db down", errors.New("dial")), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("%w: missing row", ErrNotFound)
	err := NewAppError(http.StatusInternalServerError, "failed to load", inner)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "failed to load: resource not found: missing row", err.Error())
	assert.Equal(t, "plain", NewAppError(500, "plain", nil).Error())
}
