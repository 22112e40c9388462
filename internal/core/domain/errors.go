// Package domain defines the core data model for crash-state analysis.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents an analysis error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "PR-IDX-4000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithDetailsf is WithDetails with fmt.Sprintf formatting.
func (e *DomainError) WithDetailsf(format string, args ...any) *DomainError {
	return e.WithDetails(fmt.Sprintf(format, args...))
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Index Errors (IDX)
// ============================================================================

var (
	// ErrMalformedIndex indicates an index file does not have the expected mapping/array shape.
	ErrMalformedIndex = NewDomainError("PR-IDX-4000", "malformed index")

	// ErrIndexNotFound indicates a required index file is missing.
	ErrIndexNotFound = NewDomainError("PR-IDX-4040", "index file not found")
)

// ============================================================================
// Hybrid Hash Errors (HYB)
// ============================================================================

var (
	// ErrInvalidHybridHashFormat indicates a hybrid hash is not "<pmem>_<nvme>".
	ErrInvalidHybridHashFormat = NewDomainError("PR-HYB-4001", "invalid hybrid hash format")

	// ErrUnknownTierHash indicates a states index entry references a tier hash
	// that never appears in that tier's index.
	ErrUnknownTierHash = NewDomainError("PR-HYB-4040", "unknown tier hash")
)

// ============================================================================
// Checkpoint Errors (CKP)
// ============================================================================

var (
	// ErrEmptyCheckpointSet indicates fewer than two checkpoints, so no interval exists.
	ErrEmptyCheckpointSet = NewDomainError("PR-CKP-4000", "fewer than 2 checkpoints")
)

// ============================================================================
// History Errors (HIS)
// ============================================================================

var (
	// ErrReportNotFound indicates no stored report has the requested run ID.
	ErrReportNotFound = NewDomainError("PR-HIS-4040", "report not found")

	// ErrHistoryDisabled indicates a history command ran without a history directory.
	ErrHistoryDisabled = NewDomainError("PR-HIS-4000", "report history is disabled")
)
