package export

import (
	"errors"

	"github.com/atotto/clipboard"
)

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// CopyHTML copies the formatted HTML verbatim.
func CopyHTML(cb Clipboard, formattedHTML string) error {
	if err := cb.WriteAll(formattedHTML); err != nil {
		return &ExportError{Op: OpClipboard, Err: err}
	}
	return nil
}
