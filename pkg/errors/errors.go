// Package errors holds the typed failures shared across services. Each type
// embeds AppError, so callers can log Code and Context uniformly.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

const (
	CodeAPIError   = "API_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeCache      = "CACHE_ERROR"
	CodeService    = "SERVICE_ERROR"
)

type AppError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func newAppError(code string, status int, message string, context map[string]any, cause error) *AppError {
	return &AppError{
		Message:    message,
		Code:       code,
		StatusCode: status,
		Context:    context,
		Cause:      cause,
	}
}

// APIError is a failed call to an upstream HTTP API.
type APIError struct {
	*AppError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{AppError: newAppError(CodeAPIError, statusCode, message, context, nil)}
}

// WithCause attaches the underlying failure and keeps the APIError type.
func (e *APIError) WithCause(cause error) *APIError {
	e.Cause = cause
	return e
}

// ValidationError rejects client input. It is expected traffic, not a fault.
type ValidationError struct {
	*AppError
	Field string
	Value any
}

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		AppError: newAppError(CodeValidation, http.StatusBadRequest, message,
			map[string]any{"field": field, "value": value}, nil),
		Field: field,
		Value: value,
	}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return stderrors.As(err, &target)
}

type CacheError struct {
	*AppError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		AppError: newAppError(CodeCache, http.StatusInternalServerError, message,
			map[string]any{"operation": operation, "key": key}, cause),
		Operation: operation,
		Key:       key,
	}
}

type ServiceError struct {
	*AppError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		AppError: newAppError(CodeService, http.StatusInternalServerError, message,
			map[string]any{"service": service, "operation": operation}, cause),
		Service:   service,
		Operation: operation,
	}
}
