// Package errors provides consistent error types for the hydrate CLI.
// It defines the storage error pair (StorageReadError, StorageWriteError),
// ValidationError for rejected input, and the general UserError and
// SystemError categories used when printing errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	ErrInvalidInterval  = errors.New("interval must be a positive whole number of minutes")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidConfigKey = errors.New("unknown configuration key")
	ErrInvalidNotifier  = errors.New("unknown notifier")
	ErrDiskFull         = errors.New("disk full")
	ErrLockHeld         = errors.New("intake log locked by another process")
	ErrPermissionDenied = errors.New("permission denied")
	ErrTerminated       = errors.New("reminder loop terminated")
	ErrNotDue           = errors.New("no reminder is due")
	ErrPromptFailed     = errors.New("reminder prompt failed")
)

// StorageReadError is returned when the intake store exists but cannot be
// read. Individual malformed lines never produce this error.
type StorageReadError struct {
	Path string
	Err  error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("cannot read intake log %s: %v", e.Path, e.Err)
}

func (e *StorageReadError) Unwrap() error {
	return e.Err
}

// NewStorageReadError creates a new StorageReadError.
func NewStorageReadError(path string, err error) *StorageReadError {
	return &StorageReadError{Path: path, Err: err}
}

// StorageWriteError is returned when an intake record could not be appended.
// The record must be treated as not written.
type StorageWriteError struct {
	Path string
	Err  error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("cannot write intake log %s: %v", e.Path, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}

// NewStorageWriteError creates a new StorageWriteError.
func NewStorageWriteError(path string, err error) *StorageWriteError {
	return &StorageWriteError{Path: path, Err: err}
}

// ValidationError reports rejected user input. The operation that returned
// it has left all state unchanged.
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Err     error // sentinel describing the rule, optional
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, value, message string, sentinel error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     sentinel,
	}
}

// UserError represents an error that the user can fix.
// Examples: invalid input, missing required arguments, incorrect format.
type UserError struct {
	Message    string // What happened
	Suggestion string // How to fix it
	Field      string // The field/input that caused the error (optional)
	Value      string // The invalid value (optional)
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Field != "" && e.Value != "" {
		msg = fmt.Sprintf("%s: '%s'", e.Message, e.Value)
	}
	return msg
}

// NewUserError creates a new UserError.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewUserErrorWithField creates a new UserError with field context.
func NewUserErrorWithField(field, value, message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Field:      field,
		Value:      value,
		Suggestion: suggestion,
	}
}

// SystemError represents a system-level error that the user cannot directly fix.
type SystemError struct {
	Message string // What happened
	Cause   error  // The underlying error
	Op      string // The operation that failed (optional)
}

func (e *SystemError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s during %s", e.Message, e.Op)
	}
	return e.Message
}

func (e *SystemError) Unwrap() error {
	return e.Cause
}

// NewSystemError creates a new SystemError.
func NewSystemError(message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
	}
}

// NewSystemErrorWithOp creates a new SystemError with operation context.
func NewSystemErrorWithOp(op, message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
		Op:      op,
	}
}

// IsStorageReadError checks if an error is a StorageReadError.
func IsStorageReadError(err error) bool {
	var se *StorageReadError
	return errors.As(err, &se)
}

// IsStorageWriteError checks if an error is a StorageWriteError.
func IsStorageWriteError(err error) bool {
	var se *StorageWriteError
	return errors.As(err, &se)
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsUserError checks if an error is a UserError.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// IsSystemError checks if an error is a SystemError.
func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}

// AsValidationError extracts a ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// AsUserError extracts a UserError from an error chain.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	ok := errors.As(err, &ue)
	return ue, ok
}

// Is is re-exported from the standard errors package for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is re-exported from the standard errors package for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
