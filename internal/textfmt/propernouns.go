package textfmt

import "strings"

// ProperNouns maps the lower-cased form of a word to its canonical spelling.
type ProperNouns map[string]string

// NewProperNouns builds a table from canonical spellings.
func NewProperNouns(words ...string) ProperNouns {
	p := make(ProperNouns, len(words))
	p.Add(words...)
	return p
}

// Add registers canonical spellings, replacing any entry with the same folded form.
func (p ProperNouns) Add(words ...string) {
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		p[strings.ToLower(w)] = w
	}
}

// Lookup returns the canonical spelling for word, ignoring case.
func (p ProperNouns) Lookup(word string) (string, bool) {
	canonical, ok := p[strings.ToLower(word)]
	return canonical, ok
}

// Clone returns an independent copy of the table.
func (p ProperNouns) Clone() ProperNouns {
	out := make(ProperNouns, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

var defaultProperNouns = []string{
	// Days of the week
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
	// Months
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
	// Company suffixes
	"Inc", "Corp", "LLC", "Ltd", "Co",
	// Technical terms
	"API", "HTML", "CSS", "JavaScript", "TypeScript", "React", "Vue", "Angular",
	"Node.js", "Python", "Java", "C#", "PHP", "JSON", "XML", "UI", "UX",
	// Brands
	"Google", "Microsoft", "Apple", "Amazon", "Facebook", "Twitter", "LinkedIn",
	"YouTube", "GitHub", "GitLab", "Contentful", "WordPress",
}

// DefaultProperNouns returns a fresh copy of the built-in table.
func DefaultProperNouns() ProperNouns {
	return NewProperNouns(defaultProperNouns...)
}
