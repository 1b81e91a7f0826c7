package export

import (
	"strings"

	"github.com/dgallion1/docfmt/internal/parser"
	"golang.org/x/net/html"
)

// Stylesheet is embedded in every exported page.
const Stylesheet = `body { font-family: Arial, sans-serif; line-height: 1.5; }
h2 { font-size: 1.5em; margin-top: 1.5em; margin-bottom: 0.5em; font-weight: normal; }
h3 { font-size: 1.3em; margin-top: 1.3em; margin-bottom: 0.5em; font-weight: normal; }
h4 { font-size: 1.1em; margin-top: 1.1em; margin-bottom: 0.5em; font-weight: normal; }
pre { background-color: #f5f5f5; padding: 1em; border-radius: 4px; overflow: auto; }
.code-block-label { background-color: #e0e0e0; padding: 0.5em; border-top-left-radius: 4px; border-top-right-radius: 4px; font-size: 0.9em; }
img { max-width: 100%; }
.processed-footer { text-align: center; margin-top: 2em; color: #888; font-size: 0.8em; }
`

// FooterText closes every exported page and PDF.
const FooterText = "Processed with Document Formatter"

// FormattedFileName is the download name for a processed upload.
func FormattedFileName(fileName string) string {
	return parser.StripExtension(fileName) + "_formatted.html"
}

// StandalonePage wraps a formatted fragment in a complete HTML document.
func StandalonePage(fragment, fileName string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + html.EscapeString(fileName) + "</title>\n")
	b.WriteString("<style>\n" + Stylesheet + "</style>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString(fragment)
	b.WriteString("\n<div class=\"processed-footer\">" + FooterText + "</div>\n")
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
