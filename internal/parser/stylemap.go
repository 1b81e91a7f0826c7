package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidStyleMapping is returned for directives that do not follow the
// p[style-name='Name'] => tag.class form.
var ErrInvalidStyleMapping = errors.New("invalid style mapping")

// StyleMapping renders paragraphs whose style is StyleName as Tag with the
// given classes.
type StyleMapping struct {
	StyleName string
	Tag       string
	Classes   []string
}

var directivePattern = regexp.MustCompile(`^\s*p\[style-name=['"]([^'"]+)['"]\]\s*=>\s*([a-zA-Z][a-zA-Z0-9]*)((?:\.[A-Za-z0-9_-]+)*)\s*$`)

// ParseStyleMapping parses a directive such as
// "p[style-name='Heading 1'] => h2.converted-h1".
func ParseStyleMapping(directive string) (StyleMapping, error) {
	m := directivePattern.FindStringSubmatch(directive)
	if m == nil {
		return StyleMapping{}, fmt.Errorf("%w: %q", ErrInvalidStyleMapping, directive)
	}
	sm := StyleMapping{
		StyleName: strings.TrimSpace(m[1]),
		Tag:       strings.ToLower(m[2]),
	}
	if m[3] != "" {
		sm.Classes = strings.Split(strings.TrimPrefix(m[3], "."), ".")
	}
	return sm, nil
}

// ParseStyleMappings parses each directive in order.
func ParseStyleMappings(directives []string) ([]StyleMapping, error) {
	out := make([]StyleMapping, 0, len(directives))
	for _, d := range directives {
		sm, err := ParseStyleMapping(d)
		if err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	return out, nil
}

// String formats m back into directive form.
func (m StyleMapping) String() string {
	target := m.Tag
	for _, c := range m.Classes {
		target += "." + c
	}
	return fmt.Sprintf("p[style-name='%s'] => %s", m.StyleName, target)
}

// DefaultStyleDirectives demote Heading 1 to h2 and promote Heading 5/6 to
// h4, marking each with a class so the analyzer can still count them.
var DefaultStyleDirectives = []string{
	"p[style-name='Heading 1'] => h2.converted-h1",
	"p[style-name='Heading 5'] => h4.converted-h5",
	"p[style-name='Heading 6'] => h4.converted-h6",
}

// DefaultStyleMap returns the parsed DefaultStyleDirectives.
func DefaultStyleMap() []StyleMapping {
	out, err := ParseStyleMappings(DefaultStyleDirectives)
	if err != nil {
		panic(err)
	}
	return out
}

// styleKey folds a style name or style ID into a comparable key, so that
// "Heading 1" matches the ID "Heading1".
func styleKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}
