package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that no authenticated actor is attached to the request.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the actor's role does not permit the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates that the resource changed since it was read (stale version).
var ErrConflict = errors.New("conflict")

// ErrInvalidTransition indicates that the entity is not in a state from which the action is legal.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrInvalidState indicates a business rule blocks the operation in the entity's current state.
var ErrInvalidState = errors.New("invalid state")

// ErrAlreadyGenerated indicates that installments were already generated for a schedule.
var ErrAlreadyGenerated = errors.New("installments already generated")

// AppError carries an HTTP status code alongside a wrapped infrastructure error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an error wrapping ErrNotFound for the named entity.
func NewNotFoundError(entity, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
}

// NewConflictError returns an error wrapping ErrConflict for the named entity.
func NewConflictError(entity, id string) error {
	return fmt.Errorf("%w: %s %s was modified concurrently", ErrConflict, entity, id)
}

// HTTPStatus maps an error chain to the status code the API answers with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrInvalidState):
		return http.StatusForbidden
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrAlreadyGenerated):
		return http.StatusBadRequest
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
