package plume

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeParse        ErrorType = "parse"
	ErrorTypeTransport    ErrorType = "transport"
	ErrorTypeTimeout      ErrorType = "timeout"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeInternal     ErrorType = "internal"
)

// Error codes consolidated from all modules
const (
	// Validation errors raised by the schema compiler and form sessions
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodeRequiredFieldMissing = "REQUIRED_FIELD_MISSING"
	ErrCodeTypeMismatch         = "TYPE_MISMATCH"
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeInvalidJSONArray     = "INVALID_JSON_ARRAY"
	ErrCodeConstraintViolation  = "CONSTRAINT_VIOLATION"
	ErrCodeInvalidFieldName     = "INVALID_FIELD_NAME"
	ErrCodeInvalidFormat        = "INVALID_FORMAT"

	// Transport errors raised by the API client
	ErrCodeRequestFailed      = "REQUEST_FAILED"
	ErrCodeRequestTimeout     = "REQUEST_TIMEOUT"
	ErrCodeUnauthorizedAccess = "UNAUTHORIZED_ACCESS"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeServerError        = "SERVER_ERROR"
	ErrCodeDecodeFailed       = "DECODE_FAILED"

	// Cache errors
	ErrCodeCacheMiss          = "CACHE_MISS"
	ErrCodeTentativeNotFound  = "TENTATIVE_NOT_FOUND"
	ErrCodeDuplicateTentative = "DUPLICATE_TENTATIVE"

	// Internal errors
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Error is the structured error of this module. Type categorizes, Code
// identifies the precise condition, and Field names the failing field for
// validation errors so forms can attach messages to the right widget.
type Error struct {
	Type    ErrorType      `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Field   string         `json:"field,omitempty"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s:%s] field '%s': %s", e.Type, e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithField adds field context to the error
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// WithCause adds an underlying cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail adds a single detail to the error
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges details into the error
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// NewError creates a new structured error
func NewError(errorType ErrorType, code, message string) *Error {
	return &Error{
		Type:    errorType,
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error attached to a field
func NewValidationError(field, message string) *Error {
	return &Error{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeValidationFailed,
		Message: message,
		Field:   field,
	}
}

// NewRequiredError creates the required-field error for a field
func NewRequiredError(field string) *Error {
	return &Error{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeRequiredFieldMissing,
		Message: "This field is required",
		Field:   field,
	}
}

// NewTypeMismatchError creates a type mismatch validation error
func NewTypeMismatchError(field, message string) *Error {
	return &Error{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeTypeMismatch,
		Message: message,
		Field:   field,
	}
}

// NewInvalidJSONError creates the invalid-JSON validation error for a field
func NewInvalidJSONError(field string) *Error {
	return &Error{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeInvalidJSON,
		Message: "Invalid JSON format",
		Field:   field,
	}
}

// NewInvalidJSONArrayError creates the invalid-array validation error for a field
func NewInvalidJSONArrayError(field string) *Error {
	return &Error{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeInvalidJSONArray,
		Message: "Must be a valid JSON array",
		Field:   field,
	}
}

// NewConstraintError creates a constraint violation error for a field
func NewConstraintError(field, message string) *Error {
	return &Error{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeConstraintViolation,
		Message: message,
		Field:   field,
	}
}

// NewTransportError creates a transport error
func NewTransportError(code, message string, cause error) *Error {
	return &Error{
		Type:    ErrorTypeTransport,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewTimeoutError creates a request timeout error
func NewTimeoutError(message string, cause error) *Error {
	return &Error{
		Type:    ErrorTypeTimeout,
		Code:    ErrCodeRequestTimeout,
		Message: message,
		Cause:   cause,
	}
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(message string) *Error {
	return &Error{
		Type:    ErrorTypeNotFound,
		Code:    ErrCodeNotFound,
		Message: message,
	}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *Error {
	return &Error{
		Type:    ErrorTypeUnauthorized,
		Code:    ErrCodeUnauthorizedAccess,
		Message: message,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *Error {
	return &Error{
		Type:    ErrorTypeInternal,
		Code:    ErrCodeInternalError,
		Message: message,
		Cause:   cause,
	}
}

// ============================================================================
// ValidationErrors
// ============================================================================

// ValidationErrors collects per-field validation errors for one form pass.
type ValidationErrors struct {
	Errors []*Error `json:"errors"`
}

// NewValidationErrors creates an empty ValidationErrors instance
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]*Error, 0),
	}
}

// Error implements the error interface for ValidationErrors
func (ve *ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return "no validation errors"
	}
	if len(ve.Errors) == 1 {
		return ve.Errors[0].Error()
	}
	return fmt.Sprintf("multiple validation errors: %d errors found", len(ve.Errors))
}

// Add adds a new error to the collection
func (ve *ValidationErrors) Add(err *Error) {
	ve.Errors = append(ve.Errors, err)
}

// HasErrors returns true if there are any errors
func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

// Remove drops every error recorded for the given field.
func (ve *ValidationErrors) Remove(field string) {
	kept := ve.Errors[:0]
	for _, err := range ve.Errors {
		if err.Field != field {
			kept = append(kept, err)
		}
	}
	ve.Errors = kept
}

// ByField returns the first error recorded for the given field, or nil.
func (ve *ValidationErrors) ByField(field string) *Error {
	for _, err := range ve.Errors {
		if err.Field == field {
			return err
		}
	}
	return nil
}

// ToError returns the collection as an error when non-empty, nil otherwise
func (ve *ValidationErrors) ToError() error {
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ============================================================================
// Error checking utilities
// ============================================================================

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == ErrorTypeValidation
	}
	var ve *ValidationErrors
	return errors.As(err, &ve)
}

// IsNotFoundError checks if an error is a not-found error
func IsNotFoundError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == ErrorTypeNotFound
	}
	return false
}

// IsUnauthorizedError checks if an error is an unauthorized error
func IsUnauthorizedError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == ErrorTypeUnauthorized
	}
	return false
}

// IsTimeoutError checks if an error is a timeout error
func IsTimeoutError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == ErrorTypeTimeout
	}
	return false
}

// IsTransportError checks if an error is a transport error
func IsTransportError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == ErrorTypeTransport
	}
	return false
}

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == ErrorTypeInternal
	}
	return false
}
