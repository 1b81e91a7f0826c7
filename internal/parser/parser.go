package parser

import (
	"path/filepath"
	"strings"
)

// Conversion is the result of turning a document into HTML.
type Conversion struct {
	HTML     string   // HTML fragment, no <html> or <body> wrapper
	RawText  string   // Paragraph text, each paragraph followed by a blank line
	Messages []string // Non-fatal warnings raised during conversion
}

// Converter converts raw document bytes into HTML plus a plain-text
// extraction. styleMap adjusts how named paragraph styles are rendered.
type Converter interface {
	Convert(data []byte, styleMap []StyleMapping) (*Conversion, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".docx": true,
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// StripExtension removes a trailing .docx extension, ignoring case.
func StripExtension(filename string) string {
	if ext := filepath.Ext(filename); strings.EqualFold(ext, ".docx") {
		return filename[:len(filename)-len(ext)]
	}
	return filename
}
