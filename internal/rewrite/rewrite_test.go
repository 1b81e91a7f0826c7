package rewrite

import (
	"testing"

	"github.com/dgallion1/docfmt/internal/doctree"
)

func mustParse(t *testing.T, src string) *doctree.Document {
	t.Helper()
	doc, err := doctree.Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return doc
}

func mustHTML(t *testing.T, doc *doctree.Document) string {
	t.Helper()
	out, err := doc.HTML()
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	return out
}

func only(set func(*Options)) Options {
	var o Options
	set(&o)
	return o
}

func TestRewrite_HeadingsDropMarkup(t *testing.T) {
	doc := mustParse(t, `<h1><strong>HELLO</strong> <em>World</em></h1><p class="converted-h1">MY TITLE</p><h3>javascript BASICS</h3>`)
	st := New(nil).Rewrite(doc, only(func(o *Options) { o.StandardizeHeadings = true }), "doc.docx")

	want := `<h1>Hello world</h1><p class="converted-h1">My title</p><h3>JavaScript basics</h3>`
	if got := mustHTML(t, doc); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if st.HeadingsRewritten != 3 {
		t.Errorf("expected 3 headings rewritten, got %d", st.HeadingsRewritten)
	}
}

func TestRewrite_CaptionPrefix(t *testing.T) {
	doc := mustParse(t, `<p><img src="cat.png"></p><p>a cat sleeping</p>`)
	st := New(nil).Rewrite(doc, only(func(o *Options) { o.AddCaptionPrefix = true }), "doc.docx")

	got := doc.Find(doctree.Paragraph).Eq(1).Text()
	if got != "Fig: A cat sleeping" {
		t.Errorf("expected %q, got %q", "Fig: A cat sleeping", got)
	}
	if st.CaptionsPrefixed != 1 {
		t.Errorf("expected 1 caption, got %d", st.CaptionsPrefixed)
	}
}

func TestRewrite_CaptionAlreadyPrefixedIsNoop(t *testing.T) {
	src := `<p><img src="cat.png"></p><p>Fig: already there</p>`
	doc := mustParse(t, src)
	before := mustHTML(t, doc)
	New(nil).Rewrite(doc, only(func(o *Options) { o.AddCaptionPrefix = true }), "doc.docx")
	if after := mustHTML(t, doc); after != before {
		t.Errorf("expected no change, before=%q after=%q", before, after)
	}
}

func TestRewrite_CaptionIgnoresNonParagraphSibling(t *testing.T) {
	doc := mustParse(t, `<p><img src="a.png"></p><div>not a caption</div><p>later paragraph</p>`)
	New(nil).Rewrite(doc, only(func(o *Options) { o.AddCaptionPrefix = true }), "doc.docx")

	if got := doc.Find(doctree.Paragraph).Eq(1).Text(); got != "later paragraph" {
		t.Errorf("expected paragraph untouched, got %q", got)
	}
}

func TestRewrite_CaptionSharedByTwoImages(t *testing.T) {
	doc := mustParse(t, `<p><img src="a.png"><img src="b.png"></p><p>two pictures</p>`)
	st := New(nil).Rewrite(doc, only(func(o *Options) { o.AddCaptionPrefix = true }), "doc.docx")

	if got := doc.Find(doctree.Paragraph).Eq(1).Text(); got != "Fig: Two pictures" {
		t.Errorf("expected single prefix, got %q", got)
	}
	if st.CaptionsPrefixed != 1 {
		t.Errorf("expected 1 caption, got %d", st.CaptionsPrefixed)
	}
}

func TestRewrite_CaptionUnaffectedByLineBreakCleanup(t *testing.T) {
	src := `<p><img src="x.png"></p><p><br></p><p>a cat sleeping</p>`
	for _, tt := range []struct {
		name string
		opts Options
	}{
		{"captions only", only(func(o *Options) { o.AddCaptionPrefix = true })},
		{"defaults", DefaultOptions()},
	} {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, src)
			st := New(nil).Rewrite(doc, tt.opts, "doc.docx")

			if got := doc.Find(doctree.Paragraph).Last().Text(); got != "a cat sleeping" {
				t.Errorf("expected paragraph untouched, got %q", got)
			}
			if st.CaptionsPrefixed != 0 {
				t.Errorf("expected no captions, got %d", st.CaptionsPrefixed)
			}
		})
	}
}

func TestRewrite_CodeBlockLabels(t *testing.T) {
	doc := mustParse(t, "<h2>Setup guide</h2><pre>package main\nfunc main() {}</pre><p>between</p><pre>plain words</pre>")
	st := New(nil).Rewrite(doc, only(func(o *Options) { o.PreserveCodeBlocks = true }), "doc.docx")

	pres := doc.Find(doctree.Pre)
	if pres.Length() != 2 {
		t.Fatalf("expected 2 pre elements, got %d", pres.Length())
	}
	want := []string{"Setup guide Code Block 1 (go)", "Setup guide Code Block 2"}
	for i, w := range want {
		pre := pres.Eq(i)
		label := pre.Prev()
		if !label.HasClass(ClassCodeLabel) {
			t.Fatalf("pre[%d]: expected preceding label element", i)
		}
		if got := label.Text(); got != w {
			t.Errorf("label[%d]: expected %q, got %q", i, w, got)
		}
		if !pre.HasClass(ClassFormattedPre) {
			t.Errorf("pre[%d]: expected class %q", i, ClassFormattedPre)
		}
	}
	if st.CodeBlocksLabeled != 2 {
		t.Errorf("expected 2 labeled blocks, got %d", st.CodeBlocksLabeled)
	}
}

func TestRewrite_CodeBlockTitleFallsBackToFileName(t *testing.T) {
	doc := mustParse(t, `<h3>not a title</h3><pre>hello</pre>`)
	New(nil).Rewrite(doc, only(func(o *Options) { o.PreserveCodeBlocks = true }), "report.docx")

	if got := doc.Find(doctree.Pre).Prev().Text(); got != "report Code Block 1" {
		t.Errorf("expected %q, got %q", "report Code Block 1", got)
	}
}

func TestRewrite_CodeBlockIndexResetsPerCall(t *testing.T) {
	rw := New(nil)
	opts := only(func(o *Options) { o.PreserveCodeBlocks = true })
	for range 2 {
		doc := mustParse(t, `<pre>a</pre><pre>b</pre>`)
		rw.Rewrite(doc, opts, "x.docx")
		if got := doc.Find(doctree.Pre).First().Prev().Text(); got != "x Code Block 1" {
			t.Errorf("expected numbering to restart, got %q", got)
		}
	}
}

func TestRewrite_TitleUsesRewrittenHeading(t *testing.T) {
	doc := mustParse(t, `<h1>GETTING STARTED</h1><pre>x</pre>`)
	New(nil).Rewrite(doc, DefaultOptions(), "doc.docx")

	if got := doc.Find(doctree.Pre).Prev().Text(); got != "Getting started Code Block 1" {
		t.Errorf("expected %q, got %q", "Getting started Code Block 1", got)
	}
}

func TestRewrite_ZeroOptionsLeaveTreeUntouched(t *testing.T) {
	src := `<h1><b>LOUD</b></h1><p><img src="a.png"></p><p>caption</p><p>“quoted”  ,</p><p></p><pre>code</pre>`
	doc := mustParse(t, src)
	before := mustHTML(t, doc)
	st := New(nil).Rewrite(doc, Options{}, "doc.docx")
	if after := mustHTML(t, doc); after != before {
		t.Errorf("expected no change, before=%q after=%q", before, after)
	}
	if st != (Stats{}) {
		t.Errorf("expected zero stats, got %+v", st)
	}
}

func TestRewrite_QuotesAndSpacingSkipCode(t *testing.T) {
	doc := mustParse(t, `<p>“Hello”  world , ok</p><pre>“keep”  ,</pre><p><code>a  ,</code></p>`)
	New(nil).Rewrite(doc, only(func(o *Options) {
		o.StandardizeQuotes = true
		o.FixSpacing = true
	}), "doc.docx")

	if got := doc.Find(doctree.Paragraph).First().Text(); got != `"Hello" world, ok` {
		t.Errorf("expected cleaned prose, got %q", got)
	}
	if got := doc.Find(doctree.Pre).Text(); got != "“keep”  ," {
		t.Errorf("expected pre untouched, got %q", got)
	}
	if got := doc.Find(doctree.CodeElements).Last().Text(); got != "a  ," {
		t.Errorf("expected inline code untouched, got %q", got)
	}
}

func TestRewrite_RemoveExtraLineBreaks(t *testing.T) {
	doc := mustParse(t, `<p>a<br><br><br>b</p><p> </p><p><img src="x.png"></p>`)
	st := New(nil).Rewrite(doc, only(func(o *Options) { o.RemoveExtraLineBreaks = true }), "doc.docx")

	want := `<p>a<br/>b</p><p><img src="x.png"/></p>`
	if got := mustHTML(t, doc); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if st.NodesRemoved != 3 {
		t.Errorf("expected 3 nodes removed, got %d", st.NodesRemoved)
	}
}

func TestOptions_Set(t *testing.T) {
	o := DefaultOptions()
	for _, name := range OptionNames {
		if !o.Set(name, false) {
			t.Errorf("expected %q to be a known option", name)
		}
	}
	if o != (Options{}) {
		t.Errorf("expected all options disabled, got %+v", o)
	}
	if o.Set("fixBulletLists", true) {
		t.Error("expected unknown option to be rejected")
	}
}
