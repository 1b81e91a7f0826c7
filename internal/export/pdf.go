package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/docfmt/internal/doctree"
	"github.com/dgallion1/docfmt/internal/rewrite"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/net/html"
)

var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}

// ToPDF renders a formatted fragment as an A4 PDF. Images are not rendered.
func ToPDF(w io.Writer, fragment, title string) error {
	doc, err := doctree.Parse(fragment)
	if err != nil {
		return &ExportError{Op: OpPDF, Err: err}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(title, true)
	r := &pdfRenderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(136, 136, 136)
		pdf.CellFormat(0, 6, r.tr(fmt.Sprintf("%s - %d", FooterText, pdf.PageNo())), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})
	pdf.AddPage()

	for _, n := range doc.Body().Nodes {
		r.children(n)
	}

	if err := pdf.Output(w); err != nil {
		return &ExportError{Op: OpPDF, Err: err}
	}
	return nil
}

type pdfRenderer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (r *pdfRenderer) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.node(c)
	}
}

func (r *pdfRenderer) node(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if t := strings.TrimSpace(n.Data); t != "" {
			r.paragraph(t)
		}
		return
	case html.ElementNode:
	default:
		return
	}

	if level := doctree.HeadingLevel(n.Data); level > 0 {
		r.heading(inlineText(n), level)
		return
	}

	switch n.Data {
	case "p":
		if t := inlineText(n); t != "" {
			r.paragraph(t)
		}
	case "pre":
		r.code(doctree.TextContent(n))
	case "div":
		if hasClass(n, rewrite.ClassCodeLabel) {
			r.label(inlineText(n))
			return
		}
		r.children(n)
	case "ul", "ol":
		r.list(n, n.Data == "ol")
		r.pdf.Ln(2)
	case "table":
		r.table(n)
	case "img", "script", "style":
	default:
		r.children(n)
	}
}

func (r *pdfRenderer) heading(text string, level int) {
	size := headingSizes[level]
	r.pdf.Ln(4)
	r.pdf.SetFont("Helvetica", "B", size)
	r.pdf.MultiCell(0, size*0.6, r.tr(text), "", "L", false)
	r.pdf.Ln(2)
}

func (r *pdfRenderer) paragraph(text string) {
	r.pdf.SetFont("Helvetica", "", 10)
	r.pdf.MultiCell(0, 5, r.tr(text), "", "L", false)
	r.pdf.Ln(2)
}

func (r *pdfRenderer) label(text string) {
	r.pdf.SetFont("Helvetica", "I", 9)
	r.pdf.SetFillColor(224, 224, 224)
	r.pdf.SetTextColor(68, 68, 68)
	r.pdf.MultiCell(0, 6, r.tr(text), "", "L", true)
	r.pdf.SetTextColor(0, 0, 0)
}

func (r *pdfRenderer) code(text string) {
	r.pdf.SetFont("Courier", "", 9)
	r.pdf.SetFillColor(245, 245, 245)
	for _, line := range strings.Split(text, "\n") {
		r.pdf.MultiCell(0, 4.5, r.tr(strings.ReplaceAll(line, "\t", "    ")), "", "L", true)
	}
	r.pdf.Ln(3)
}

func (r *pdfRenderer) list(n *html.Node, ordered bool) {
	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		i++
		marker := "• "
		if ordered {
			marker = strconv.Itoa(i) + ". "
		}
		r.pdf.SetFont("Helvetica", "", 10)
		r.pdf.MultiCell(0, 5, r.tr(marker+inlineText(c)), "", "L", false)
	}
}

func (r *pdfRenderer) table(n *html.Node) {
	r.pdf.SetFont("Helvetica", "", 10)
	eachElement(n, "tr", func(tr *html.Node) {
		var cells []string
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
				cells = append(cells, inlineText(c))
			}
		}
		r.pdf.MultiCell(0, 5, r.tr(strings.Join(cells, " | ")), "B", "L", false)
	})
	r.pdf.Ln(2)
}

// inlineText flattens n to text, keeping line breaks and collapsing other
// whitespace.
func inlineText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			b.WriteString("\n")
		case n.Type == html.ElementNode && (n.Data == "p" || n.Data == "li" || n.Data == "ul" || n.Data == "ol"):
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			fallthrough
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
	}
	walk(n)

	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func eachElement(n *html.Node, tag string, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data == tag {
			fn(c)
			continue
		}
		eachElement(c, tag, fn)
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}
