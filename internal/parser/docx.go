package parser

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/fumiama/go-docx"
	"golang.org/x/net/html"
)

// builtinStyles maps folded style IDs to the element used when no style
// mapping overrides them.
var builtinStyles = map[string]string{
	"title":    "h1",
	"heading1": "h1",
	"heading2": "h2",
	"heading3": "h3",
	"heading4": "h4",
	"heading5": "h5",
	"heading6": "h6",
}

// codeStyles are rendered as a single <pre> per run of consecutive paragraphs.
var codeStyles = map[string]bool{
	"code":             true,
	"codeblock":        true,
	"sourcecode":       true,
	"htmlpreformatted": true,
}

// silentStyles never produce an unrecognised-style message.
var silentStyles = map[string]bool{
	"":              true,
	"normal":        true,
	"listparagraph": true,
	"bodytext":      true,
}

// DocxConverter converts .docx files with go-docx.
type DocxConverter struct{}

func (c *DocxConverter) Convert(data []byte, styleMap []StyleMapping) (conv *Conversion, err error) {
	// go-docx panics on some malformed packages.
	defer func() {
		if r := recover(); r != nil {
			conv, err = nil, fmt.Errorf("parse docx: %v", r)
		}
	}()

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	r := &docxRenderer{
		doc:    doc,
		styles: make(map[string]StyleMapping, len(styleMap)),
		warned: make(map[string]bool),
	}
	for _, m := range styleMap {
		r.styles[styleKey(m.StyleName)] = m
	}

	for _, item := range doc.Document.Body.Items {
		switch v := item.(type) {
		case *docx.Paragraph:
			r.paragraph(v)
		case *docx.Table:
			r.closeBlocks()
			r.table(v)
		}
	}
	r.closeBlocks()

	return &Conversion{
		HTML:     r.html.String(),
		RawText:  r.text.String(),
		Messages: r.messages,
	}, nil
}

type docxRenderer struct {
	doc    *docx.Docx
	styles map[string]StyleMapping

	html strings.Builder
	text strings.Builder

	inList bool
	code   []string

	messages []string
	warned   map[string]bool
}

func (r *docxRenderer) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if r.warned[msg] {
		return
	}
	r.warned[msg] = true
	r.messages = append(r.messages, msg)
}

func (r *docxRenderer) paragraph(p *docx.Paragraph) {
	inner, text := r.inline(p.Children)
	r.text.WriteString(text)
	r.text.WriteString("\n\n")

	style := paragraphStyle(p)
	key := styleKey(style)

	if codeStyles[key] {
		r.closeList()
		r.code = append(r.code, text)
		return
	}
	if inner == "" {
		return
	}

	if m, ok := r.styles[key]; ok {
		r.closeBlocks()
		r.element(m.Tag, m.Classes, inner)
		return
	}
	if tag, ok := builtinStyles[key]; ok {
		r.closeBlocks()
		r.element(tag, nil, inner)
		return
	}
	if !silentStyles[key] {
		r.warn("unrecognised paragraph style: %s", style)
	}

	if p.Properties != nil && p.Properties.NumProperties != nil {
		r.closeCode()
		if !r.inList {
			r.html.WriteString("<ul>")
			r.inList = true
		}
		r.element("li", nil, inner)
		return
	}

	r.closeBlocks()
	r.element("p", nil, inner)
}

func (r *docxRenderer) element(tag string, classes []string, inner string) {
	r.html.WriteString("<" + tag)
	if len(classes) > 0 {
		r.html.WriteString(` class="` + html.EscapeString(strings.Join(classes, " ")) + `"`)
	}
	r.html.WriteString(">" + inner + "</" + tag + ">")
}

func (r *docxRenderer) closeBlocks() {
	r.closeList()
	r.closeCode()
}

func (r *docxRenderer) closeList() {
	if r.inList {
		r.html.WriteString("</ul>")
		r.inList = false
	}
}

func (r *docxRenderer) closeCode() {
	if len(r.code) == 0 {
		return
	}
	r.html.WriteString("<pre>" + html.EscapeString(strings.Join(r.code, "\n")) + "</pre>")
	r.code = r.code[:0]
}

// inline renders paragraph content, returning its HTML and plain text.
func (r *docxRenderer) inline(children []interface{}) (string, string) {
	var h, t strings.Builder
	for _, child := range children {
		switch v := child.(type) {
		case *docx.Run:
			r.run(v, &h, &t)
		case *docx.Hyperlink:
			var lh, lt strings.Builder
			r.run(&v.Run, &lh, &lt)
			// Links written by go-docx keep their text in instrText.
			if lh.Len() == 0 && v.Run.InstrText != "" {
				lh.WriteString(html.EscapeString(v.Run.InstrText))
				lt.WriteString(v.Run.InstrText)
			}
			if lh.Len() == 0 {
				continue
			}
			if href, ok := r.linkTarget(v.ID); ok {
				fmt.Fprintf(&h, `<a href="%s">%s</a>`, html.EscapeString(href), lh.String())
			} else {
				h.WriteString(lh.String())
			}
			t.WriteString(lt.String())
		}
	}
	return h.String(), t.String()
}

func (r *docxRenderer) run(run *docx.Run, h, t *strings.Builder) {
	var seg strings.Builder
	for _, child := range run.Children {
		switch v := child.(type) {
		case *docx.Text:
			seg.WriteString(html.EscapeString(v.Text))
			t.WriteString(v.Text)
		case *docx.Tab:
			seg.WriteString("\t")
			t.WriteString("\t")
		case *docx.BarterRabbet:
			if v.Type == "" || v.Type == "textWrapping" {
				seg.WriteString("<br />")
				t.WriteString("\n")
			}
		case *docx.Drawing:
			seg.WriteString(r.image(v))
		}
	}
	s := seg.String()
	if s == "" {
		return
	}
	if props := run.RunProperties; props != nil {
		if props.Italic != nil {
			s = "<em>" + s + "</em>"
		}
		if props.Bold != nil {
			s = "<strong>" + s + "</strong>"
		}
	}
	h.WriteString(s)
}

// linkSchemes are the URL schemes kept as links. Relative targets and
// fragments carry no scheme and are always kept.
var linkSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

// linkTarget resolves a relationship ID; bookmark anchors fall through as
// in-page fragments. It reports false when the link should be rendered as
// plain text.
func (r *docxRenderer) linkTarget(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	target, err := r.doc.ReferTarget(id)
	if err != nil {
		return "#" + id, true
	}
	target = strings.TrimSpace(target)
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "" && !linkSchemes[u.Scheme]) {
		r.warn("unsupported link target dropped: %s", target)
		return "", false
	}
	return target, true
}

// image inlines a drawing's picture as a data URI.
func (r *docxRenderer) image(d *docx.Drawing) string {
	var graphic *docx.AGraphic
	switch {
	case d.Inline != nil:
		graphic = d.Inline.Graphic
	case d.Anchor != nil:
		graphic = d.Anchor.Graphic
	}
	if graphic == nil || graphic.GraphicData == nil || graphic.GraphicData.Pic == nil ||
		graphic.GraphicData.Pic.BlipFill == nil {
		return ""
	}
	embed := graphic.GraphicData.Pic.BlipFill.Blip.Embed
	target, err := r.doc.ReferTarget(embed)
	if err != nil {
		r.warn("image relationship not found: %s", embed)
		return ""
	}
	name := target
	if i := strings.Index(target, "media/"); i >= 0 {
		name = target[i+len("media/"):]
	}
	m := r.doc.Media(name)
	if m == nil {
		r.warn("image not found in package: %s", target)
		return ""
	}
	return `<img src="` + dataURI(m.Name, m.Data) + `" />`
}

func dataURI(name string, data []byte) string {
	mt := mime.TypeByExtension(strings.ToLower(path.Ext(name)))
	if !strings.HasPrefix(mt, "image/") {
		mt = http.DetectContentType(data)
	}
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func (r *docxRenderer) table(t *docx.Table) {
	r.html.WriteString("<table>")
	for _, row := range t.TableRows {
		r.html.WriteString("<tr>")
		for _, cell := range row.TableCells {
			r.html.WriteString("<td>")
			for _, p := range cell.Paragraphs {
				inner, text := r.inline(p.Children)
				r.text.WriteString(text)
				r.text.WriteString("\n\n")
				if inner != "" {
					r.element("p", nil, inner)
				}
			}
			for _, nested := range cell.Tables {
				r.table(nested)
			}
			r.html.WriteString("</td>")
		}
		r.html.WriteString("</tr>")
	}
	r.html.WriteString("</table>")
}

func paragraphStyle(p *docx.Paragraph) string {
	if p.Properties == nil || p.Properties.Style == nil {
		return ""
	}
	return p.Properties.Style.Val
}
