package export

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/PuerkitoBio/goquery"
	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/andybalholm/cascadia"
	"github.com/dgallion1/docfmt/internal/analyze"
	"github.com/dgallion1/docfmt/internal/doctree"
	"github.com/dgallion1/docfmt/internal/pipeline"
	"github.com/dgallion1/docfmt/internal/rewrite"
	"github.com/dgallion1/docfmt/internal/textfmt"
	"github.com/yuin/goldmark"
)

// CodeStyle is the chroma style used for highlighted code blocks.
const CodeStyle = "github"

var labeledCode = cascadia.MustCompile("pre." + rewrite.ClassFormattedPre)

var codeFormatter = chromahtml.New(
	chromahtml.WithClasses(true),
	chromahtml.PreventSurroundingPre(true),
)

// chromaLexers maps sniffed language tags to chroma lexer names where they differ.
var chromaLexers = map[string]string{
	"jsx": "react",
	"cpp": "c++",
}

const compareCSS = `.compare { display: grid; grid-template-columns: 1fr 1fr; gap: 1.5em; }
.pane { border: 1px solid #ddd; border-radius: 4px; padding: 1em; overflow: auto; }
.pane > h2.pane-title { font-size: 1.1em; font-weight: bold; margin-top: 0; border-bottom: 1px solid #eee; padding-bottom: 0.5em; }
.analysis { margin-top: 1.5em; border: 1px solid #ddd; border-radius: 4px; padding: 1em; background: #fafafa; }
`

var compareTmpl = template.Must(template.New("compare").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} (comparison)</title>
<style>
{{.CSS}}</style>
</head>
<body>
<div class="compare">
<div class="pane original"><h2 class="pane-title">Original</h2>
{{.Original}}
</div>
<div class="pane formatted"><h2 class="pane-title">Formatted</h2>
{{.Formatted}}
</div>
</div>
<div class="analysis">
{{.Analysis}}
<p>Header ratio (H3+H4 per H2): {{printf "%.1f" .HeaderRatio}}</p>
</div>
<div class="processed-footer">{{.Footer}}</div>
</body>
</html>
`))

type comparePage struct {
	Title       string
	CSS         template.CSS
	Original    template.HTML
	Formatted   template.HTML
	Analysis    template.HTML
	HeaderRatio float64
	Footer      string
}

// ComparisonPage renders the original and formatted versions side by side
// with the analysis panel. Labeled code blocks in the formatted pane are
// syntax highlighted.
func ComparisonPage(res *pipeline.Result) (string, error) {
	formatted, css, err := highlightCode(res.Content.Formatted.HTML)
	if err != nil {
		return "", &ExportError{Op: OpCompare, Err: err}
	}

	var report bytes.Buffer
	if err := goldmark.Convert([]byte(analyze.Report(res.Analysis)), &report); err != nil {
		return "", &ExportError{Op: OpCompare, Err: fmt.Errorf("render analysis: %w", err)}
	}

	page := comparePage{
		Title:       res.Content.FileName,
		CSS:         template.CSS(Stylesheet + compareCSS + css),
		Original:    template.HTML(res.Content.Original.HTML),
		Formatted:   template.HTML(formatted),
		Analysis:    template.HTML(report.String()),
		HeaderRatio: res.Analysis.HeaderRatio(),
		Footer:      FooterText,
	}
	var out bytes.Buffer
	if err := compareTmpl.Execute(&out, page); err != nil {
		return "", &ExportError{Op: OpCompare, Err: err}
	}
	return out.String(), nil
}

// highlightCode replaces the text of every labeled pre with chroma markup
// and returns the rewritten fragment plus the CSS it needs.
func highlightCode(fragment string) (string, string, error) {
	doc, err := doctree.Parse(fragment)
	if err != nil {
		return "", "", err
	}
	style := styles.Get(CodeStyle)

	var ferr error
	doc.Find(labeledCode).EachWithBreak(func(_ int, pre *goquery.Selection) bool {
		code := pre.Text()
		it, err := lexerFor(code).Tokenise(nil, code)
		if err != nil {
			ferr = fmt.Errorf("tokenise code block: %w", err)
			return false
		}
		var buf bytes.Buffer
		if err := codeFormatter.Format(&buf, style, it); err != nil {
			ferr = fmt.Errorf("format code block: %w", err)
			return false
		}
		pre.SetHtml(buf.String())
		pre.AddClass("chroma")
		return true
	})
	if ferr != nil {
		return "", "", ferr
	}

	out, err := doc.HTML()
	if err != nil {
		return "", "", err
	}
	var css bytes.Buffer
	if err := codeFormatter.WriteCSS(&css, style); err != nil {
		return "", "", err
	}
	return out, css.String(), nil
}

func lexerFor(code string) chroma.Lexer {
	lang := textfmt.IdentifyCodeLanguage(code)
	if name, ok := chromaLexers[lang]; ok {
		lang = name
	}
	var lexer chroma.Lexer
	if lang != textfmt.PlainLanguage {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}
