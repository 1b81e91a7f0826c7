package rewrite

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dgallion1/docfmt/internal/doctree"
	"golang.org/x/net/html"
)

var quoteReplacer = strings.NewReplacer(
	"‘", "'", "’", "'", "‚", "'", "′", "'",
	"“", `"`, "”", `"`, "„", `"`, "″", `"`,
)

var (
	repeatedSpaces   = regexp.MustCompile(`[ \t]{2,}`)
	spaceBeforePunct = regexp.MustCompile(`[ \t]+([,.;:!?])`)
)

// cleanText normalizes quotes and spacing in every text node outside code.
func cleanText(doc *doctree.Document, opts Options) int {
	n := 0
	for _, root := range doc.Body().Nodes {
		eachProseText(root, func(t *html.Node) {
			s := t.Data
			if opts.StandardizeQuotes {
				s = quoteReplacer.Replace(s)
			}
			if opts.FixSpacing {
				s = repeatedSpaces.ReplaceAllString(s, " ")
				s = spaceBeforePunct.ReplaceAllString(s, "$1")
			}
			if s != t.Data {
				t.Data = s
				n++
			}
		})
	}
	return n
}

// eachProseText calls fn for every text node below n that is not inside a
// pre, code, script or style element.
func eachProseText(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			fn(c)
		case html.ElementNode:
			switch c.Data {
			case "pre", "code", "script", "style":
				continue
			}
			eachProseText(c, fn)
		}
	}
}

// removeExtraLineBreaks drops paragraphs with no content and every <br> that
// directly follows another <br>.
func removeExtraLineBreaks(doc *doctree.Document) int {
	n := 0

	doc.Find(doctree.Paragraph).Each(func(_ int, p *goquery.Selection) {
		if strings.TrimSpace(p.Text()) != "" {
			return
		}
		if p.Children().NotMatcher(doctree.LineBreak).Length() > 0 {
			return
		}
		p.Remove()
		n++
	})

	doc.Find(doctree.LineBreak).Each(func(_ int, br *goquery.Selection) {
		node := br.Get(0)
		if node.Parent == nil {
			return
		}
		if prev := previousNonBlank(node); prev != nil && prev.Type == html.ElementNode && prev.Data == "br" {
			br.Remove()
			n++
		}
	})

	return n
}

func previousNonBlank(n *html.Node) *html.Node {
	for p := n.PrevSibling; p != nil; p = p.PrevSibling {
		if p.Type == html.TextNode && strings.TrimSpace(p.Data) == "" {
			continue
		}
		return p
	}
	return nil
}
