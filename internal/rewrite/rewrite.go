package rewrite

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dgallion1/docfmt/internal/doctree"
	"github.com/dgallion1/docfmt/internal/parser"
	"github.com/dgallion1/docfmt/internal/textfmt"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	CaptionPrefix     = "Fig:"
	ClassCodeLabel    = "code-block-label"
	ClassFormattedPre = "formatted-code-block"
)

// Stats counts the changes made by one Rewrite call.
type Stats struct {
	TextNodesCleaned  int `json:"textNodesCleaned"`
	NodesRemoved      int `json:"nodesRemoved"`
	HeadingsRewritten int `json:"headingsRewritten"`
	CaptionsPrefixed  int `json:"captionsPrefixed"`
	CodeBlocksLabeled int `json:"codeBlocksLabeled"`
}

// Rewriter applies the formatting rules to a parsed document.
type Rewriter struct {
	normalizer *textfmt.Normalizer
}

func New(normalizer *textfmt.Normalizer) *Rewriter {
	if normalizer == nil {
		normalizer = textfmt.NewNormalizer(nil)
	}
	return &Rewriter{normalizer: normalizer}
}

// Rewrite mutates doc in place. fileName supplies the code block title when
// the document has no h1 or h2.
func (rw *Rewriter) Rewrite(doc *doctree.Document, opts Options, fileName string) Stats {
	var st Stats

	// Structural rules see the tree as converted; the cleanups below may
	// remove nodes they look at.
	if opts.StandardizeHeadings {
		st.HeadingsRewritten = rw.rewriteHeadings(doc)
	}
	if opts.AddCaptionPrefix {
		st.CaptionsPrefixed = prefixCaptions(doc)
	}
	if opts.PreserveCodeBlocks {
		st.CodeBlocksLabeled = labelCodeBlocks(doc, fileName)
	}

	if opts.StandardizeQuotes || opts.FixSpacing {
		st.TextNodesCleaned = cleanText(doc, opts)
	}
	if opts.RemoveExtraLineBreaks {
		st.NodesRemoved = removeExtraLineBreaks(doc)
	}
	return st
}

// rewriteHeadings drops inline markup from every heading and replaces it
// with its sentence-cased text.
func (rw *Rewriter) rewriteHeadings(doc *doctree.Document) int {
	n := 0
	doc.Find(doctree.Headings).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		s.SetText(rw.normalizer.ToSentenceCase(text))
		n++
	})
	return n
}

// prefixCaptions treats the paragraph right after an image's containing
// block as its caption.
func prefixCaptions(doc *doctree.Document) int {
	n := 0
	doc.Find(doctree.Images).Each(func(_ int, img *goquery.Selection) {
		next := img.Parent().Next()
		if next.Length() == 0 || !next.IsMatcher(doctree.Paragraph) {
			return
		}
		caption := next.Text()
		if caption == "" || strings.HasPrefix(caption, CaptionPrefix) {
			return
		}
		next.SetText(CaptionPrefix + " " + textfmt.UpperFirst(caption))
		n++
	})
	return n
}

// labelCodeBlocks inserts a numbered label before every pre element. The
// numbering starts at 1 on each call.
func labelCodeBlocks(doc *doctree.Document, fileName string) int {
	title := doc.Title()
	if title == "" {
		title = parser.StripExtension(fileName)
	}

	count := 0
	doc.Find(doctree.Pre).Each(func(_ int, pre *goquery.Selection) {
		count++
		label := fmt.Sprintf("%s Code Block %d", title, count)
		if lang := textfmt.IdentifyCodeLanguage(pre.Text()); lang != textfmt.PlainLanguage {
			label += " (" + lang + ")"
		}
		pre.BeforeNodes(labelNode(label))
		pre.AddClass(ClassFormattedPre)
	})
	return count
}

func labelNode(text string) *html.Node {
	div := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "class", Val: ClassCodeLabel}},
	}
	div.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return div
}
