package export

import "fmt"

// Op names the export step that failed.
type Op string

const (
	OpDownload  Op = "download"
	OpClipboard Op = "clipboard"
	OpMarkdown  Op = "markdown"
	OpPDF       Op = "pdf"
	OpCompare   Op = "compare"
)

// ExportError reports a failed export. The processed result is unaffected
// and the export can be retried on its own.
type ExportError struct {
	Op  Op
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Op, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// UserMessage is the text shown to the user for this failure.
func (e *ExportError) UserMessage() string {
	switch e.Op {
	case OpClipboard:
		return "Failed to copy to clipboard"
	case OpDownload:
		return "Failed to download the formatted document"
	}
	return fmt.Sprintf("Failed to export the document as %s", e.Op)
}
