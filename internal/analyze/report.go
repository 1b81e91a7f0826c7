package analyze

import (
	"fmt"
	"strings"
)

// HeaderRatio is the number of h3/h4 headings per h2, or 0 without any h2.
func (r Result) HeaderRatio() float64 {
	if r.HeadingCounts.H2 == 0 {
		return 0
	}
	return float64(r.HeadingCounts.H3+r.HeadingCounts.H4) / float64(r.HeadingCounts.H2)
}

// Report renders r as a Markdown summary.
func Report(r Result) string {
	var b strings.Builder
	c := r.HeadingCounts

	b.WriteString("## Document analysis\n\n")

	b.WriteString("### Headers\n\n")
	fmt.Fprintf(&b, "- H1 → H2: %d\n", c.H1)
	fmt.Fprintf(&b, "- H2: %d\n", c.H2)
	fmt.Fprintf(&b, "- H3: %d\n", c.H3)
	fmt.Fprintf(&b, "- H4: %d\n", c.H4)
	fmt.Fprintf(&b, "- H5+ → H4: %d\n\n", c.H5Plus)
	if r.HeaderRatio() > 5 {
		b.WriteString("> Too many lower-level headers may cause navigation issues\n\n")
	}

	b.WriteString("### Media & code\n\n")
	fmt.Fprintf(&b, "- Total images: %d\n", r.TotalImages)
	fmt.Fprintf(&b, "- Images w/o links: %d\n", r.ImagesWithoutLinks)
	fmt.Fprintf(&b, "- Code blocks: %d\n\n", r.CodeBlocks)
	if r.ImagesWithoutLinks > 0 {
		fmt.Fprintf(&b, "> %d %s links\n\n", r.ImagesWithoutLinks, plural(r.ImagesWithoutLinks, "image needs", "images need"))
	}

	b.WriteString("### Issues\n\n")
	if len(r.Issues) == 0 {
		b.WriteString("No issues detected\n")
		return b.String()
	}
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "- %s\n", issue)
	}
	return b.String()
}
