package analyze

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/dgallion1/docfmt/internal/doctree"
)

// HeadingCounts tallies headings by the level they had in the source
// document. Every heading lands in exactly one bucket.
type HeadingCounts struct {
	H1     int `json:"h1"`
	H2     int `json:"h2"`
	H3     int `json:"h3"`
	H4     int `json:"h4"`
	H5Plus int `json:"h5Plus"`
}

// Total returns the number of headings counted.
func (c HeadingCounts) Total() int {
	return c.H1 + c.H2 + c.H3 + c.H4 + c.H5Plus
}

// Result is the structural summary of one document.
type Result struct {
	HeadingCounts      HeadingCounts `json:"headingCounts"`
	TotalImages        int           `json:"totalImages"`
	ImagesWithoutLinks int           `json:"imagesWithoutLinks"`
	CodeBlocks         int           `json:"codeBlocks"`
	Issues             []string      `json:"issues"`
}

// Bucket identifies which HeadingCounts field a heading belongs to.
type Bucket int

const (
	BucketNone Bucket = iota
	BucketH1
	BucketH2
	BucketH3
	BucketH4
	BucketH5Plus
)

// Analyze walks doc and reports heading, image and code statistics. It never
// modifies doc.
func Analyze(doc *doctree.Document) Result {
	var r Result

	doc.Find(doctree.Headings).Each(func(_ int, s *goquery.Selection) {
		switch Classify(s) {
		case BucketH1:
			r.HeadingCounts.H1++
		case BucketH2:
			r.HeadingCounts.H2++
		case BucketH3:
			r.HeadingCounts.H3++
		case BucketH4:
			r.HeadingCounts.H4++
		case BucketH5Plus:
			r.HeadingCounts.H5Plus++
		}
	})

	images := doc.Find(doctree.Images)
	r.TotalImages = images.Length()
	images.Each(func(_ int, img *goquery.Selection) {
		if img.ClosestMatcher(doctree.Anchor).Length() == 0 {
			r.ImagesWithoutLinks++
		}
	})

	// A <code> nested in a <pre> is counted twice.
	r.CodeBlocks = doc.Find(doctree.CodeElements).Length()

	r.Issues = Issues(r)
	return r
}

// Classify maps a heading element to its bucket. Conversion markers take
// precedence over the element's tag.
func Classify(s *goquery.Selection) Bucket {
	switch {
	case s.HasClass(doctree.ClassConvertedH1):
		return BucketH1
	case s.HasClass(doctree.ClassConvertedH5), s.HasClass(doctree.ClassConvertedH6):
		return BucketH4
	}
	switch doctree.HeadingLevel(goquery.NodeName(s)) {
	case 1:
		return BucketH1
	case 2:
		return BucketH2
	case 3:
		return BucketH3
	case 4:
		return BucketH4
	case 5, 6:
		return BucketH5Plus
	}
	return BucketNone
}

// Issues derives the human-readable findings for r, in a fixed order.
func Issues(r Result) []string {
	issues := []string{}
	c := r.HeadingCounts

	if c.H3+c.H4 > c.H2*5 {
		issues = append(issues, "Navigation issue: Too many lower-level headers compared to H2 headers")
	}
	if r.ImagesWithoutLinks > 0 {
		issues = append(issues, fmt.Sprintf("%d embedded %s without links",
			r.ImagesWithoutLinks, plural(r.ImagesWithoutLinks, "image", "images")))
	}
	if c.H1 > 0 {
		issues = append(issues, fmt.Sprintf("%d H1 %s converted to H2",
			c.H1, plural(c.H1, "element", "elements")))
	}
	if c.H5Plus > 0 {
		issues = append(issues, fmt.Sprintf("%d H5+ %s converted to H4",
			c.H5Plus, plural(c.H5Plus, "element", "elements")))
	}
	return issues
}

// Validate reports whether r's counters are internally consistent.
func (r Result) Validate() error {
	c := r.HeadingCounts
	if c.H1 < 0 || c.H2 < 0 || c.H3 < 0 || c.H4 < 0 || c.H5Plus < 0 {
		return fmt.Errorf("negative heading count: %+v", c)
	}
	if r.ImagesWithoutLinks < 0 {
		return fmt.Errorf("negative unlinked image count: %d", r.ImagesWithoutLinks)
	}
	if r.TotalImages < r.ImagesWithoutLinks {
		return fmt.Errorf("unlinked images (%d) exceed total images (%d)", r.ImagesWithoutLinks, r.TotalImages)
	}
	if r.CodeBlocks < 0 {
		return fmt.Errorf("negative code block count: %d", r.CodeBlocks)
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
