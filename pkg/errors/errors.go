// Package errors provides structured error types for the diary tools.
//
// Line-level parse failures are recoverable: the parser records them and
// moves on to the next line. Everything else (I/O, configuration, taxonomy
// construction) is fatal to the command that hit it.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error identifier for categorization.
type ErrorCode string

// Error codes used throughout the diary tools.
const (
	// Parse errors
	CodeHeaderDateInvalid ErrorCode = "HEADER_DATE_INVALID"
	CodeSetDataMalformed  ErrorCode = "SET_DATA_MALFORMED"
	CodeLineFailed        ErrorCode = "LINE_FAILED"

	// Taxonomy errors
	CodeDuplicateExercise ErrorCode = "DUPLICATE_EXERCISE"
	CodeTaxonomyInvalid   ErrorCode = "TAXONOMY_INVALID"

	// Infrastructure errors
	CodeEncodingError ErrorCode = "ENCODING_ERROR"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeStorageError  ErrorCode = "STORAGE_ERROR"

	// General errors
	CodeValidationError ErrorCode = "VALIDATION_ERROR"
	CodeInternalError   ErrorCode = "INTERNAL_ERROR"
)

// DiaryError is the base error type for the diary tools.
// It carries an error code, whether processing may continue past it,
// and contextual metadata such as the offending line.
type DiaryError struct {
	Code        ErrorCode         // Unique error code for categorization
	Message     string            // Human-readable error message
	Cause       error             // Underlying error (if any)
	Recoverable bool              // Whether the caller may skip and continue
	Metadata    map[string]string // Additional context
}

// Error implements the error interface.
func (e *DiaryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *DiaryError) Unwrap() error {
	return e.Cause
}

// Is matches on error code so wrapped copies of a sentinel still compare equal.
func (e *DiaryError) Is(target error) bool {
	var t *DiaryError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithCause wraps an underlying error.
func (e *DiaryError) WithCause(cause error) *DiaryError {
	return &DiaryError{
		Code:        e.Code,
		Message:     e.Message,
		Cause:       cause,
		Recoverable: e.Recoverable,
		Metadata:    e.Metadata,
	}
}

// WithMessage adds a custom message.
func (e *DiaryError) WithMessage(msg string) *DiaryError {
	return &DiaryError{
		Code:        e.Code,
		Message:     msg,
		Cause:       e.Cause,
		Recoverable: e.Recoverable,
		Metadata:    e.Metadata,
	}
}

// WithMetadata adds contextual metadata.
func (e *DiaryError) WithMetadata(key, value string) *DiaryError {
	meta := make(map[string]string, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		meta[k] = v
	}
	meta[key] = value
	return &DiaryError{
		Code:        e.Code,
		Message:     e.Message,
		Cause:       e.Cause,
		Recoverable: e.Recoverable,
		Metadata:    meta,
	}
}

// Pre-defined sentinel errors for common cases.
// Use these with errors.Is() or derive from them with .WithCause().
var (
	// Parse errors
	ErrHeaderDateInvalid = &DiaryError{Code: CodeHeaderDateInvalid, Message: "header date could not be parsed", Recoverable: true}
	ErrSetDataMalformed  = &DiaryError{Code: CodeSetDataMalformed, Message: "malformed set data", Recoverable: true}
	ErrLineFailed        = &DiaryError{Code: CodeLineFailed, Message: "line could not be processed", Recoverable: true}

	// Taxonomy errors
	ErrDuplicateExercise = &DiaryError{Code: CodeDuplicateExercise, Message: "exercise registered twice", Recoverable: false}
	ErrTaxonomyInvalid   = &DiaryError{Code: CodeTaxonomyInvalid, Message: "invalid taxonomy", Recoverable: false}

	// Infrastructure errors
	ErrEncoding     = &DiaryError{Code: CodeEncodingError, Message: "input decoding failed", Recoverable: false}
	ErrNotFound     = &DiaryError{Code: CodeNotFound, Message: "not found", Recoverable: false}
	ErrStorageError = &DiaryError{Code: CodeStorageError, Message: "storage error", Recoverable: false}

	// General errors
	ErrValidation = &DiaryError{Code: CodeValidationError, Message: "validation error", Recoverable: false}
	ErrInternal   = &DiaryError{Code: CodeInternalError, Message: "internal error", Recoverable: false}
)

// New creates a new DiaryError with the given code and message.
func New(code ErrorCode, message string) *DiaryError {
	return &DiaryError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with a DiaryError.
func Wrap(cause error, code ErrorCode, message string) *DiaryError {
	return &DiaryError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsRecoverable reports whether err (or anything it wraps) is a recoverable DiaryError.
func IsRecoverable(err error) bool {
	var de *DiaryError
	if errors.As(err, &de) {
		return de.Recoverable
	}
	return false
}

// GetCode extracts the error code from an error, if available.
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var de *DiaryError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternalError
}
