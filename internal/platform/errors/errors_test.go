package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "error with cause",
			err: Wrap(KindGateway, "transcribe", "transcription request failed",
				errors.New("connection refused")),
			contains: []string{"[gateway:transcribe]", "transcription request failed", "connection refused"},
		},
		{
			name:     "error without cause",
			err:      New(KindState, "start-listening", "already active"),
			contains: []string{"[state:start-listening]", "already active"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(errStr, substr) {
					t.Errorf("error string %q does not contain %q", errStr, substr)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	wrappedErr := Wrap(KindDevice, "open", "open capture stream", ErrDeviceBusy)

	if !errors.Is(wrappedErr, ErrDeviceBusy) {
		t.Error("Unwrap should surface the sentinel cause")
	}
}

func TestIsKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		expected bool
	}{
		{
			name:     "direct error kind match",
			err:      New(KindConfig, "load", "message"),
			kind:     KindConfig,
			expected: true,
		},
		{
			name:     "wrapped error kind match",
			err:      Wrap(KindGateway, "synthesize", "message", errors.New("cause")),
			kind:     KindGateway,
			expected: true,
		},
		{
			name:     "error kind mismatch",
			err:      New(KindDevice, "open", "message"),
			kind:     KindGateway,
			expected: false,
		},
		{
			name:     "non-typed error",
			err:      errors.New("plain error"),
			kind:     KindDevice,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsKind(tt.err, tt.kind)
			if result != tt.expected {
				t.Errorf("IsKind() = %v, expected %v", result, tt.expected)
			}
		})
	}
}
