// Package errors provides application-level error types carrying the wire
// error codes returned to agents and dashboards.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the class of error
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation_error"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeRateLimited  ErrorType = "rate_limited"
	ErrorTypeInternal     ErrorType = "internal_error"
)

// Wire codes. Every error response carries exactly one of these.
const (
	CodeMissingFields      = "MISSING_FIELDS"
	CodeMissingKey         = "MISSING_KEY"
	CodeMissingLicense     = "MISSING_LICENSE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeLicenseNotFound    = "LICENSE_NOT_FOUND"
	CodeExpired            = "EXPIRED"
	CodeHWIDMismatch       = "HWID_MISMATCH"
	CodeInvalidIdentifiers = "INVALID_IDENTIFIERS"
	CodeInvalidImageData   = "INVALID_IMAGE_DATA"
	CodeUploadFailed       = "UPLOAD_FAILED"
	CodePublicURLFailed    = "PUBLIC_URL_FAILED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeConflict           = "CONFLICT"
	CodeRateLimited        = "RATE_LIMITED"
	CodeDBError            = "DB_ERROR"
	CodeServerError        = "SERVER_ERROR"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Status  int       `json:"-"`
	Err     error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newAppError(t ErrorType, status int, code, message string) *AppError {
	return &AppError{
		Type:    t,
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// NewValidationError reports missing or malformed client input (400).
func NewValidationError(code, message string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, code, message)
}

// NewNotFoundError reports a referenced entity that does not exist (404).
func NewNotFoundError(code, message string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, code, message)
}

// NewConflictError reports a uniqueness violation (409).
func NewConflictError(message string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, CodeConflict, message)
}

// NewUnauthorizedError reports an absent or unresolvable credential (401).
func NewUnauthorizedError(code, message string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, code, message)
}

// NewForbiddenError reports a credential resolved to the wrong tenant (403).
func NewForbiddenError(message string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, CodeForbidden, message)
}

// NewRateLimitedError reports a throttled client (429).
func NewRateLimitedError(message string) *AppError {
	return newAppError(ErrorTypeRateLimited, http.StatusTooManyRequests, CodeRateLimited, message)
}

// NewInternalError reports a failed required side effect (500). cause is
// kept for logs and never rendered to clients.
func NewInternalError(code, message string, cause error) *AppError {
	e := newAppError(ErrorTypeInternal, http.StatusInternalServerError, code, message)
	e.Err = cause
	return e
}

// NewDBError wraps a failed required store operation.
func NewDBError(message string, cause error) *AppError {
	return NewInternalError(CodeDBError, message, cause)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

func IsNotFoundError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeNotFound
}

func IsValidationError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeValidation
}
