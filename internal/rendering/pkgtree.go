package rendering

import (
	"context"
	"strings"
	"time"
)

// Paragraph styles understood by PackageEngines
const (
	StyleTitle    = "Title"
	StyleHeading1 = "Heading1"
	StyleNormal   = "Normal"
)

// Run is a span of text with run-level formatting. SizeHalfPoints follows
// the word-processor convention of half-point font sizes.
type Run struct {
	Text           string
	Bold           bool
	Italic         bool
	Color          string
	SizeHalfPoints int
	// Tab inserts a tab before Text, used to push dates to the right stop
	Tab bool
}

// Paragraph is a block of runs with paragraph-level styling
type Paragraph struct {
	Style        string
	Align        Alignment
	IndentTwips  int
	SpaceAfter   int
	BorderBottom DividerStyle
	BorderColor  string
	// RightTabTwips sets a right-aligned tab stop, 0 for none
	RightTabTwips int
	Runs          []Run
}

// Text returns the concatenated run text
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// PackageDocument is the declarative input of a PackageEngine
type PackageDocument struct {
	Title      string
	Creator    string
	CreatedAt  time.Time
	Style      StyleParams
	FontFamily string
	Paragraphs []Paragraph
}

// Outline returns the section heading texts in order
func (d *PackageDocument) Outline() []string {
	var out []string
	for _, p := range d.Paragraphs {
		if p.Style == StyleHeading1 {
			out = append(out, p.Text())
		}
	}
	return out
}

// PackageEngine renders a PackageDocument to a word-processor package
type PackageEngine interface {
	RenderPackage(ctx context.Context, doc *PackageDocument) ([]byte, error)
}
