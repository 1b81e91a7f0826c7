package textfmt

import "strings"

// PlainLanguage is returned when no rule matches.
const PlainLanguage = "plain"

// LanguageRule tags a code snippet when Match reports true. Match receives
// the trimmed, lower-cased snippet.
type LanguageRule struct {
	Tag   string
	Match func(code string) bool
}

// LanguageRules are evaluated in order; the first match wins.
var LanguageRules = []LanguageRule{
	{"jsx", func(c string) bool {
		return containsAny(c, "import react", "react.component", "const [") ||
			containsAll(c, "jsx", "export default")
	}},
	{"go", func(c string) bool {
		return containsAll(c, "func ", "package main")
	}},
	{"python", func(c string) bool {
		return strings.Contains(c, "def ") && containsAny(c, "import ", "print(")
	}},
	{"javascript", func(c string) bool {
		return containsAny(c, "function ", "=>") && containsAny(c, "const ", "let ")
	}},
	{"typescript", func(c string) bool {
		return strings.Contains(c, "interface ") || containsAll(c, "class ", ":")
	}},
	{"java", func(c string) bool {
		return containsAny(c, "public class ", "private ", "protected ")
	}},
	{"c", func(c string) bool {
		return containsAny(c, "#include <", "int main(")
	}},
	{"cpp", func(c string) bool {
		return containsAny(c, "using namespace", "std::")
	}},
	{"php", func(c string) bool {
		return strings.Contains(c, "<?php")
	}},
	{"html", func(c string) bool {
		return containsAny(c, "<html", "<!doctype html")
	}},
	{"css", func(c string) bool {
		return strings.Contains(c, "@media") || containsAll(c, "{", ":", ";")
	}},
}

// IdentifyCodeLanguage guesses the language of a code snippet from keyword
// markers. It returns PlainLanguage when nothing matches.
func IdentifyCodeLanguage(code string) string {
	normalized := strings.ToLower(strings.TrimSpace(code))
	for _, rule := range LanguageRules {
		if rule.Match(normalized) {
			return rule.Tag
		}
	}
	return PlainLanguage
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
