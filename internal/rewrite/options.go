package rewrite

// Options toggles each rewrite independently. The zero value disables
// everything; use DefaultOptions for the normal behaviour.
type Options struct {
	StandardizeHeadings   bool `json:"standardizeHeadings" yaml:"standardizeHeadings"`
	AddCaptionPrefix      bool `json:"addCaptionPrefix" yaml:"addCaptionPrefix"`
	PreserveCodeBlocks    bool `json:"preserveCodeBlocks" yaml:"preserveCodeBlocks"`
	StandardizeQuotes     bool `json:"standardizeQuotes" yaml:"standardizeQuotes"`
	FixSpacing            bool `json:"fixSpacing" yaml:"fixSpacing"`
	RemoveExtraLineBreaks bool `json:"removeExtraLineBreaks" yaml:"removeExtraLineBreaks"`
}

// DefaultOptions enables every rewrite.
func DefaultOptions() Options {
	return Options{
		StandardizeHeadings:   true,
		AddCaptionPrefix:      true,
		PreserveCodeBlocks:    true,
		StandardizeQuotes:     true,
		FixSpacing:            true,
		RemoveExtraLineBreaks: true,
	}
}

// Set enables or disables the option with the given JSON name. It reports
// false for unknown names.
func (o *Options) Set(name string, enabled bool) bool {
	switch name {
	case "standardizeHeadings":
		o.StandardizeHeadings = enabled
	case "addCaptionPrefix":
		o.AddCaptionPrefix = enabled
	case "preserveCodeBlocks":
		o.PreserveCodeBlocks = enabled
	case "standardizeQuotes":
		o.StandardizeQuotes = enabled
	case "fixSpacing":
		o.FixSpacing = enabled
	case "removeExtraLineBreaks":
		o.RemoveExtraLineBreaks = enabled
	default:
		return false
	}
	return true
}

// OptionNames lists the names accepted by Set.
var OptionNames = []string{
	"standardizeHeadings",
	"addCaptionPrefix",
	"preserveCodeBlocks",
	"standardizeQuotes",
	"fixSpacing",
	"removeExtraLineBreaks",
}
