package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// ValidationError rejects an upload before conversion is attempted.
type ValidationError struct {
	Reason error
	Limit  int64 // size limit in bytes, set for ErrFileTooLarge
}

func (e *ValidationError) Error() string {
	switch {
	case errors.Is(e.Reason, ErrFileTooLarge):
		return "File size must be less than " + formatLimit(e.Limit)
	case errors.Is(e.Reason, ErrUnsupportedFileType):
		return "Only Word documents (.docx) are currently supported"
	}
	return e.Reason.Error()
}

func (e *ValidationError) Unwrap() error { return e.Reason }

// ConversionError means the converter or the HTML parser rejected the input.
type ConversionError struct {
	Stage string // "convert" or "parse"
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// GenericFailureMessage is shown for every failure that is not a validation error.
const GenericFailureMessage = "Failed to process document"

// UserMessage maps err to the single message shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return GenericFailureMessage
}

func formatLimit(n int64) string {
	const mib = 1 << 20
	if n >= mib && n%mib == 0 {
		return fmt.Sprintf("%dMB", n/mib)
	}
	return fmt.Sprintf("%d bytes", n)
}
