package doctree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a parsed HTML tree produced from converter output. It is owned
// by one pipeline invocation and is not safe for concurrent mutation.
type Document struct {
	dom  *goquery.Document
	body *goquery.Selection
}

// Parse builds a Document from an HTML fragment or page.
func Parse(src string) (*Document, error) {
	dom, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	body := dom.FindMatcher(Body).First()
	if body.Length() == 0 {
		return nil, errors.New("parse html: no body element")
	}
	return &Document{dom: dom, body: body}, nil
}

// Body returns the selection holding the document's content.
func (d *Document) Body() *goquery.Selection {
	return d.body
}

// Find returns all body descendants matching m, in document order.
func (d *Document) Find(m goquery.Matcher) *goquery.Selection {
	return d.body.FindMatcher(m)
}

// HTML serializes the body's children.
func (d *Document) HTML() (string, error) {
	out, err := d.body.Html()
	if err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return out, nil
}

// Title returns the trimmed text of the first h1 or h2, or "" if there is none.
func (d *Document) Title() string {
	return strings.TrimSpace(d.Find(TitleHeading).First().Text())
}

// Text extracts plain text, one block element per paragraph, separated by
// blank lines.
func (d *Document) Text() string {
	var blocks []string
	var cur strings.Builder

	flush := func() {
		if t := strings.TrimSpace(cur.String()); t != "" {
			blocks = append(blocks, t)
		}
		cur.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			cur.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				return
			case "br":
				cur.WriteString("\n")
				return
			}
			if blockElements[n.Data] {
				flush()
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c)
				}
				flush()
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range d.body.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	flush()

	return strings.Join(blocks, "\n\n")
}

var blockElements = map[string]bool{
	"p": true, "div": true, "pre": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true,
	"table": true, "tr": true, "td": true, "th": true,
}

// HeadingLevel returns 1-6 for heading tags and 0 otherwise.
func HeadingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// TextContent concatenates all text below n, trimmed.
func TextContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}
