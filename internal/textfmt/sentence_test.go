package textfmt

import "testing"

func TestToSentenceCase(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"all caps", "HELLO WORLD", "Hello world"},
		{"two sentences", "the QUICK brown fox. it JUMPED!", "The quick brown fox. It jumped!"},
		{"collapses inter-sentence spacing", "One.   two", "One. Two"},
		{"no split without whitespace", "v1.2 RELEASE", "V1.2 release"},
		{"table restores canonical spelling", "javascript TIPS and tricks", "JavaScript tips and tricks"},
		{"table hit in every sentence", "json. json", "JSON. JSON"},
		{"acronym already canonical", "API docs", "API docs"},
		{"acronym in any case", "Api DOCS", "API docs"},
		{"symbol in noun", "c# basics", "C# basics"},
		{"dotted noun", "node.js guide", "Node.js guide"},
		{"weekday", "MONDAY meeting notes", "Monday meeting notes"},
		{"heuristic recapitalizes first word", "the cat and the dog", "The cat and The dog"},
		{"trailing whitespace kept as one space", "done. ", "Done. "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.ToSentenceCase(tt.input)
			if got != tt.want {
				t.Errorf("ToSentenceCase(%q): expected %q, got %q", tt.input, tt.want, got)
			}
		})
	}
}

func TestToSentenceCase_Idempotent(t *testing.T) {
	n := NewNormalizer(nil)
	inputs := []string{
		"HELLO WORLD. GOOD BYE",
		"the cat and the dog",
		"Getting Started With The Tool",
		"why? because!   that is why.",
	}
	for _, in := range inputs {
		once := n.ToSentenceCase(in)
		twice := n.ToSentenceCase(once)
		if once != twice {
			t.Errorf("not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestToSentenceCase_CustomTable(t *testing.T) {
	n := NewNormalizer(NewProperNouns("DocFmt"))
	got := n.ToSentenceCase("DOCFMT RELEASE NOTES")
	if got != "DocFmt release notes" {
		t.Errorf("expected %q, got %q", "DocFmt release notes", got)
	}

	// Built-in entries are not present in a custom table.
	got = n.ToSentenceCase("JAVASCRIPT")
	if got != "Javascript" {
		t.Errorf("expected %q, got %q", "Javascript", got)
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("A. B!  C? D")
	want := []string{"A.", "B!", "C?", "D"}
	if len(got) != len(want) {
		t.Fatalf("expected %d sentences, got %d (%q)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestUpperFirst(t *testing.T) {
	if got := UpperFirst("a cat sleeping"); got != "A cat sleeping" {
		t.Errorf("expected %q, got %q", "A cat sleeping", got)
	}
	if got := UpperFirst(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := UpperFirst("élan"); got != "Élan" {
		t.Errorf("expected %q, got %q", "Élan", got)
	}
}

func TestProperNouns_LookupIgnoresCase(t *testing.T) {
	p := DefaultProperNouns()
	got, ok := p.Lookup("GITHUB")
	if !ok || got != "GitHub" {
		t.Errorf("expected GitHub, got %q (ok=%v)", got, ok)
	}
	if _, ok := p.Lookup("kubernetes"); ok {
		t.Error("expected kubernetes to be absent from the default table")
	}

	clone := p.Clone()
	clone.Add("Kubernetes")
	if _, ok := p.Lookup("kubernetes"); ok {
		t.Error("expected Clone to be independent of the original table")
	}
}
