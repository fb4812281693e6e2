// Package errors provides a lightweight structured error type (MetricsGateError)
// for category-based classification across the registry, backends, and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a MetricsGate error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig ErrorCategory = "config"

	// Capability / authorization errors
	CategoryCapability ErrorCategory = "capability"

	// Backend and export-sink errors
	CategoryBackend ErrorCategory = "backend"

	// Runtime and infrastructure errors
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// MetricsGateError is a structured error with category, severity, and context
type MetricsGateError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for MetricsGateError
type ContextFields map[string]any

// Error implements the error interface
func (e *MetricsGateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *MetricsGateError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *MetricsGateError) WithContext(key string, value any) *MetricsGateError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new MetricsGateError
func New(category ErrorCategory, severity ErrorSeverity, message string) *MetricsGateError {
	return &MetricsGateError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new MetricsGateError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *MetricsGateError {
	return &MetricsGateError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if mge, ok := err.(*MetricsGateError); ok {
		return mge.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal
// if not a MetricsGateError
func GetCategory(err error) ErrorCategory {
	if mge, ok := err.(*MetricsGateError); ok {
		return mge.Category
	}
	return CategoryInternal
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return IsCategory(err, CategoryConfig) }

// IsCapabilityDenied reports whether err is a capability denial. A denial is
// recoverable (SeverityWarning); a failed capability check is
// CategoryCapability at SeverityError and is not a denial.
func IsCapabilityDenied(err error) bool {
	mge, ok := err.(*MetricsGateError)
	return ok && mge.Category == CategoryCapability && mge.Severity == SeverityWarning
}

// IsBackend reports whether err is a backend/export-sink error.
func IsBackend(err error) bool { return IsCategory(err, CategoryBackend) }
