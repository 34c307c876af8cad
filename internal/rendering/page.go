package rendering

import (
	"context"
	"time"
)

// DocumentDate is stamped on every generated document so output depends
// only on its inputs.
var DocumentDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// PageSize is a page size in points
type PageSize struct {
	Name   string
	Width  float64
	Height float64
}

// Letter is the US Letter page used for every PDF
var Letter = PageSize{Name: "Letter", Width: 612, Height: 792}

// Margins are page margins in points
type Margins struct {
	Top, Right, Bottom, Left float64
}

// BlockKind is the kind of a flow block
type BlockKind int

// Block kinds
const (
	BlockName BlockKind = iota
	BlockContact
	BlockHeading
	BlockEntryTitle
	BlockEntrySubtitle
	BlockParagraph
	BlockBullet
	BlockDivider
	BlockSpacer
)

func (k BlockKind) String() string {
	switch k {
	case BlockName:
		return "name"
	case BlockContact:
		return "contact"
	case BlockHeading:
		return "heading"
	case BlockEntryTitle:
		return "entry-title"
	case BlockEntrySubtitle:
		return "entry-subtitle"
	case BlockParagraph:
		return "paragraph"
	case BlockBullet:
		return "bullet"
	case BlockDivider:
		return "divider"
	case BlockSpacer:
		return "spacer"
	}
	return "unknown"
}

// Block is one element of the top-to-bottom flow. Engines place blocks one
// after another and break pages on their own; nothing is absolutely positioned.
type Block struct {
	Kind   BlockKind
	Text   string
	Aside  string // right-aligned text on the same line, e.g. dates
	Size   float64
	Bold   bool
	Italic bool
	Color  Color
	Align  Alignment
	// Divider style for BlockDivider, height in points for BlockSpacer
	Divider DividerStyle
	Height  float64
}

// PageDocument is the declarative input of a PageEngine
type PageDocument struct {
	Title     string
	Author    string
	Size      PageSize
	Margins   Margins
	Style     StyleParams
	CreatedAt time.Time
	Blocks    []Block
}

// Outline returns the section heading texts in order
func (d *PageDocument) Outline() []string {
	var out []string
	for _, b := range d.Blocks {
		if b.Kind == BlockHeading {
			out = append(out, b.Text)
		}
	}
	return out
}

// PageEngine renders a PageDocument to PDF bytes
type PageEngine interface {
	RenderPage(ctx context.Context, doc *PageDocument) ([]byte, error)
}
