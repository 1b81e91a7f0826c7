package export

import (
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// ToMarkdown converts a formatted fragment to Markdown.
func ToMarkdown(fragment string) (string, error) {
	md, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return "", &ExportError{Op: OpMarkdown, Err: err}
	}
	return md, nil
}
