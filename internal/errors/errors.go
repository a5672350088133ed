// Package errors provides centralized error definitions and error handling utilities
// for the post office simulation. It defines the three failure classes a run can
// end with, semantic error types, and classification helpers.
//
// # Error Types
//
// Domain-specific errors follow the run's failure taxonomy:
//   - ConfigError: bad argument count, type or range; reported before any actor starts
//   - ResourceError: the journal or another resource could not be created or written
//   - ProtocolError: a synchronization invariant was broken or a journal failed verification
//
// Semantic errors represent common error conditions:
//   - ValidationError: invalid configuration value
//
// # Usage
//
//	err := errors.NewConfigError("NZ must be greater than 0", errors.ErrArgOutOfRange).
//		WithArg("NZ").WithValue(0)
//
//	if errors.Is(err, errors.ErrArgOutOfRange) { ... }
//
//	var cfgErr *errors.ConfigError
//	if errors.As(err, &cfgErr) { ... }
//
// None of the errors produced by the simulation are retryable: the protocol either
// completes and produces a well-ordered journal, or the run is aborted.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityWarning is for errors caused by the caller, such as bad input.
	SeverityWarning Severity = iota
	// SeverityError is for errors that abort a run.
	SeverityError
	// SeverityCritical is for broken invariants; they indicate a bug.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Configuration sentinel errors
var (
	// ErrInvalidArgs indicates the wrong number of positional arguments.
	ErrInvalidArgs = New("invalid number of arguments")
	// ErrArgNotInteger indicates an argument that is not a base-10 integer.
	ErrArgNotInteger = New("argument is not an integer")
	// ErrArgOutOfRange indicates an integer argument outside its allowed range.
	ErrArgOutOfRange = New("argument out of range")
)

// Resource sentinel errors
var (
	// ErrJournalOpen indicates the journal file could not be created.
	ErrJournalOpen = New("failed to open journal")
	// ErrJournalWrite indicates a journal line could not be written.
	ErrJournalWrite = New("failed to write journal")
	// ErrJournalClosed indicates a write to a journal that was already closed.
	ErrJournalClosed = New("journal is closed")
)

// Protocol sentinel errors
var (
	// ErrProtocolViolation indicates a broken synchronization invariant.
	ErrProtocolViolation = New("protocol violation")
	// ErrMalformedLine indicates a journal line that does not parse.
	ErrMalformedLine = New("malformed journal line")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// PostOfficeError is the base interface for all errors produced by this module.
type PostOfficeError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users as-is.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// format renders "prefix [k=v, ...]: message: cause".
func (e *baseError) format(prefix string, parts []string) string {
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", prefix, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ConfigError represents a rejected command line or configuration.
//
// Example:
//
//	err := errors.NewConfigError("TU must be in range 0..100", errors.ErrArgOutOfRange).WithArg("TU")
//	fmt.Println(err) // "config error [arg=TU]: TU must be in range 0..100: argument out of range"
type ConfigError struct {
	baseError
	Arg   string
	Value any
}

// NewConfigError creates a new ConfigError.
func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithArg names the offending argument.
func (e *ConfigError) WithArg(arg string) *ConfigError {
	e.Arg = arg
	return e
}

// WithValue records the offending value.
func (e *ConfigError) WithValue(v any) *ConfigError {
	e.Value = v
	return e
}

// Error returns the formatted error message.
func (e *ConfigError) Error() string {
	var parts []string
	if e.Arg != "" {
		parts = append(parts, "arg="+e.Arg)
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	return e.format("config error", parts)
}

// Is checks if this error matches the target.
func (e *ConfigError) Is(target error) bool {
	if _, ok := target.(*ConfigError); ok {
		return true
	}
	return target == ErrInvalidInput
}

// ResourceError represents a failure to acquire or use a run resource such as
// the journal file.
type ResourceError struct {
	baseError
	Resource string
}

// NewResourceError creates a new ResourceError.
func NewResourceError(message string, cause error) *ResourceError {
	return &ResourceError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithResource names the resource, usually a path.
func (e *ResourceError) WithResource(name string) *ResourceError {
	e.Resource = name
	return e
}

// Error returns the formatted error message.
func (e *ResourceError) Error() string {
	var parts []string
	if e.Resource != "" {
		parts = append(parts, "resource="+e.Resource)
	}
	return e.format("resource error", parts)
}

// Is checks if this error matches the target.
func (e *ResourceError) Is(target error) bool {
	_, ok := target.(*ResourceError)
	return ok
}

// ProtocolError represents a broken synchronization invariant or a journal
// that does not satisfy the run's ordering guarantees.
type ProtocolError struct {
	baseError
	Actor string
	Line  uint64
}

// NewProtocolError creates a new ProtocolError.
func NewProtocolError(message string, cause error) *ProtocolError {
	if cause == nil {
		cause = ErrProtocolViolation
	}
	return &ProtocolError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityCritical,
			userFacing: false,
		},
	}
}

// WithActor names the actor, e.g. "Z 3" or "U 1".
func (e *ProtocolError) WithActor(actor string) *ProtocolError {
	e.Actor = actor
	return e
}

// WithLine records the journal line where the violation was observed.
func (e *ProtocolError) WithLine(line uint64) *ProtocolError {
	e.Line = line
	return e
}

// Error returns the formatted error message.
func (e *ProtocolError) Error() string {
	var parts []string
	if e.Actor != "" {
		parts = append(parts, "actor="+e.Actor)
	}
	if e.Line != 0 {
		parts = append(parts, fmt.Sprintf("line=%d", e.Line))
	}
	return e.format("protocol error", parts)
}

// Is checks if this error matches the target.
func (e *ProtocolError) Is(target error) bool {
	_, ok := target.(*ProtocolError)
	return ok
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents an invalid configuration value.
//
// Example:
//
//	err := errors.NewValidationError("must be positive").WithField("simulation.clients").WithValue(0)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, "field="+e.Field)
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	return e.format("validation error", parts)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return target == ErrInvalidInput
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	var poErr PostOfficeError
	if As(err, &poErr) {
		return poErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement PostOfficeError.
func GetSeverity(err error) Severity {
	var poErr PostOfficeError
	if As(err, &poErr) {
		return poErr.Severity()
	}
	return SeverityError
}

// IsConfigError reports whether err is, or wraps, a ConfigError or ValidationError.
// Both match ErrInvalidInput.
func IsConfigError(err error) bool {
	return Is(err, ErrInvalidInput)
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
// Unlike fmt.Errorf with %w, this returns nil for a nil error.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
