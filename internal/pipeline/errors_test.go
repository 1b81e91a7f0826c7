package pipeline

import (
	"errors"
	"fmt"
	"testing"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"too large", &ValidationError{Reason: ErrFileTooLarge, Limit: 5 << 20}, "File size must be less than 5MB"},
		{"odd limit", &ValidationError{Reason: ErrFileTooLarge, Limit: 1500}, "File size must be less than 1500 bytes"},
		{"wrong type", &ValidationError{Reason: ErrUnsupportedFileType}, "Only Word documents (.docx) are currently supported"},
		{"wrapped validation", fmt.Errorf("upload: %w", &ValidationError{Reason: ErrUnsupportedFileType}), "Only Word documents (.docx) are currently supported"},
		{"conversion", &ConversionError{Stage: "parse", Err: errors.New("boom")}, GenericFailureMessage},
		{"other", errors.New("disk on fire"), GenericFailureMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestConversionError_Unwrap(t *testing.T) {
	inner := errors.New("bad zip")
	err := &ConversionError{Stage: "convert", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to expose the cause")
	}
	if err.Error() != "convert: bad zip" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
