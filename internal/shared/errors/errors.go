// Package errors provides application-level error types and utilities.
// Entitlement denials (no active subscription, quota exceeded) are NOT
// errors in this codebase; they are decision values. Only genuine
// failures flow through this package.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation_error"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeInternal     ErrorType = "internal_error"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newAppError(errType ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

// GetAppError unwraps err looking for an *AppError, returning nil when
// there is none in the chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsNotFound reports whether err carries a not-found AppError.
func IsNotFound(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeNotFound
}

// IsConflict reports whether err carries a conflict AppError.
func IsConflict(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeConflict
}
