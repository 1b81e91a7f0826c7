package textfmt

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalizer rewrites free text into sentence case, restoring proper nouns
// from its table.
type Normalizer struct {
	nouns ProperNouns
}

// NewNormalizer returns a Normalizer backed by nouns. A nil table falls back
// to DefaultProperNouns.
func NewNormalizer(nouns ProperNouns) *Normalizer {
	if nouns == nil {
		nouns = DefaultProperNouns()
	}
	return &Normalizer{nouns: nouns}
}

// ProperNouns returns the table the normalizer restores from.
func (n *Normalizer) ProperNouns() ProperNouns {
	return n.nouns
}

// ToSentenceCase splits text into sentences, upper-cases the first letter of
// each, lower-cases the rest and then restores proper nouns. Sentences are
// rejoined with a single space.
func (n *Normalizer) ToSentenceCase(text string) string {
	if text == "" {
		return text
	}

	// cases.Caser is stateful; build one per call so a Normalizer can be shared.
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)

	sentences := splitSentences(text)
	for i, s := range sentences {
		if s != "" {
			r, size := utf8.DecodeRuneInString(s)
			s = upper.String(string(r)) + lower.String(s[size:])
		}
		for _, noun := range n.findProperNouns(s) {
			s = restoreWord(s, noun)
		}
		sentences[i] = s
	}
	return strings.Join(sentences, " ")
}

// splitSentences cuts text at every whitespace run that directly follows
// '.', '!' or '?'. The whitespace itself is dropped.
func splitSentences(text string) []string {
	var out []string
	start := 0
	var prev rune
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) && isSentenceEnd(prev) {
			end := i
			for i < len(text) {
				r, size = utf8.DecodeRuneInString(text[i:])
				if !unicode.IsSpace(r) {
					break
				}
				i += size
			}
			out = append(out, text[start:end])
			start = i
			prev = ' '
			continue
		}
		prev = r
		i += size
	}
	return append(out, text[start:])
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// findProperNouns returns the words of a case-folded sentence that should be
// restored, in order of appearance. Only words starting with an upper-case
// ASCII letter are candidates: table hits yield the canonical spelling, any
// other candidate is kept as written.
func (n *Normalizer) findProperNouns(sentence string) []string {
	var found []string
	for _, word := range strings.Fields(sentence) {
		if utf8.RuneCountInString(word) <= 1 {
			continue
		}
		if c := word[0]; c < 'A' || c > 'Z' {
			continue
		}
		clean := trimTrailingPunct(word)
		if canonical, ok := n.nouns.Lookup(clean); ok {
			found = append(found, canonical)
			continue
		}
		found = append(found, clean)
	}
	return found
}

func trimTrailingPunct(word string) string {
	if word == "" {
		return word
	}
	switch word[len(word)-1] {
	case '.', ',', ';', ':', '!', '?':
		return word[:len(word)-1]
	}
	return word
}

// restoreWord replaces every whole-word, case-insensitive occurrence of noun
// in s with noun. Word boundaries are only enforced on edges where noun
// itself starts or ends with a word character.
func restoreWord(s, noun string) string {
	if noun == "" {
		return s
	}
	first, _ := utf8.DecodeRuneInString(noun)
	last, _ := utf8.DecodeLastRuneInString(noun)

	var pattern strings.Builder
	if isWordChar(first) {
		pattern.WriteString(`\b`)
	}
	pattern.WriteString(`(?i:`)
	pattern.WriteString(regexp.QuoteMeta(noun))
	pattern.WriteString(`)`)
	if isWordChar(last) {
		pattern.WriteString(`\b`)
	}

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return s
	}
	return re.ReplaceAllLiteralString(s, noun)
}

func isWordChar(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// UpperFirst upper-cases the first rune of s.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(string(r)) + s[size:]
}
