package doctree

import "github.com/andybalholm/cascadia"

// Pre-compiled selectors shared by the analyzer and rewriter. Headings also
// matches elements carrying a conversion marker class.
var (
	Body         = cascadia.MustCompile("body")
	Headings     = cascadia.MustCompile("h1, h2, h3, h4, h5, h6, .converted-h1, .converted-h5, .converted-h6")
	TitleHeading = cascadia.MustCompile("h1, h2")
	Images       = cascadia.MustCompile("img")
	Anchor       = cascadia.MustCompile("a")
	Paragraph    = cascadia.MustCompile("p")
	LineBreak    = cascadia.MustCompile("br")
	CodeElements = cascadia.MustCompile("pre, code")
	Pre          = cascadia.MustCompile("pre")
)

// Marker classes set by the converter's style map when it changes a
// heading's level.
const (
	ClassConvertedH1 = "converted-h1"
	ClassConvertedH5 = "converted-h5"
	ClassConvertedH6 = "converted-h6"
)
