package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "error without details",
			err:      NewDomainError("PR-TEST-1000", "test message"),
			expected: "[PR-TEST-1000] test message",
		},
		{
			name:     "error with details",
			err:      NewDomainError("PR-TEST-1001", "test message").WithDetails("extra info"),
			expected: "[PR-TEST-1001] test message: extra info",
		},
		{
			name:     "error with formatted details",
			err:      NewDomainError("PR-TEST-1002", "test message").WithDetailsf("file %s key %q", "pmem.index", "7"),
			expected: `[PR-TEST-1002] test message: file pmem.index key "7"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err1 := NewDomainError("PR-TEST-1000", "message 1")
	err2 := NewDomainError("PR-TEST-1000", "message 2") // Same code, different message
	err3 := NewDomainError("PR-TEST-1001", "message 1") // Different code

	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error code")
	}
	if errors.Is(err1, err3) {
		t.Error("errors.Is should return false for different error code")
	}
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should return false for non-DomainError")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := NewDomainError("PR-TEST-1000", "wrapper").WithCause(cause)

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	errNoCause := NewDomainError("PR-TEST-1000", "no cause")
	if errors.Unwrap(errNoCause) != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestDomainError_WithDetails(t *testing.T) {
	original := NewDomainError("PR-TEST-1000", "original message")
	withDetails := original.WithDetails("additional details")

	if original.Details != "" {
		t.Error("WithDetails should not modify original error")
	}
	if withDetails.Details != "additional details" {
		t.Errorf("Details = %q, want %q", withDetails.Details, "additional details")
	}
	if withDetails.Code != original.Code {
		t.Errorf("Code = %q, want %q", withDetails.Code, original.Code)
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"domain error", ErrMalformedIndex, "PR-IDX-4000"},
		{"wrapped domain error", fmt.Errorf("load: %w", ErrEmptyCheckpointSet), "PR-CKP-4000"},
		{"regular error", fmt.Errorf("regular error"), ""},
		{"nil error", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		err  *DomainError
		code string
	}{
		{ErrMalformedIndex, "PR-IDX-4000"},
		{ErrIndexNotFound, "PR-IDX-4040"},
		{ErrInvalidHybridHashFormat, "PR-HYB-4001"},
		{ErrUnknownTierHash, "PR-HYB-4040"},
		{ErrEmptyCheckpointSet, "PR-CKP-4000"},
		{ErrReportNotFound, "PR-HIS-4040"},
		{ErrHistoryDisabled, "PR-HIS-4000"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Error code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.Message == "" {
				t.Error("Error message should not be empty")
			}
		})
	}
}
