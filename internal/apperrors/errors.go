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

// ErrForbidden indicates that the actor is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates that no authenticated actor is available.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict indicates that the request conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict")

// AppError carries an HTTP-ish status code and a human readable message
// alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationFailedError returns an error matching ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewNotFoundError returns an error matching ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// NewConflictError returns an error matching ErrConflict.
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrConflict)
}

// NewDuplicateError returns an error matching ErrDuplicate.
func NewDuplicateError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrDuplicate)
}

// NewForbiddenError returns an error matching ErrForbidden.
func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

// NewUnauthorizedError returns an error matching ErrUnauthorized.
func NewUnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

// StatusCode maps an error to the status code the HTTP layer should use.
func StatusCode(err error) int {
	var appErr *AppError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.As(err, &appErr) && appErr.Code != 0:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user facing part of err.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
