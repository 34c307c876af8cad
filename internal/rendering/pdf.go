package rendering

import (
	"context"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// PDFRenderer is the fixed-page backend
type PDFRenderer struct {
	Engine PageEngine
}

// NewPDFRenderer returns a PDF backend drawing through engine
func NewPDFRenderer(engine PageEngine) *PDFRenderer {
	return &PDFRenderer{Engine: engine}
}

// Format implements Renderer
func (r *PDFRenderer) Format() types.Format { return types.FormatPDF }

// Render implements Renderer
func (r *PDFRenderer) Render(ctx context.Context, data types.ResumeData, tmpl *types.Template) ([]byte, error) {
	doc, err := r.Layout(data, tmpl)
	if err != nil {
		return nil, err
	}
	if r.Engine == nil {
		return nil, &RenderError{Message: "no page engine configured"}
	}
	out, err := r.Engine.RenderPage(ctx, doc)
	if err != nil {
		return nil, &RenderError{Message: "page engine failed", Cause: err}
	}
	return out, nil
}

// Layout builds the page tree without drawing it
func (r *PDFRenderer) Layout(data types.ResumeData, tmpl *types.Template) (*PageDocument, error) {
	if err := Preflight(data); err != nil {
		return nil, err
	}
	style, err := styleFor(tmpl)
	if err != nil {
		return nil, err
	}

	sections := BuildSections(data)
	doc := &PageDocument{
		Title:     sections.Header.Name + " - Resume",
		Author:    sections.Header.Name,
		Size:      Letter,
		Margins:   Margins{Top: 48, Right: 54, Bottom: 48, Left: 54},
		Style:     style,
		CreatedAt: DocumentDate,
	}

	doc.Blocks = append(doc.Blocks,
		Block{Kind: BlockName, Text: sections.Header.Name, Size: style.NameSize, Bold: true, Color: style.AccentColor, Align: style.HeadingAlignment},
		Block{Kind: BlockContact, Text: strings.Join(sections.Header.Contact, "  |  "), Size: style.BodySize - 1, Color: MutedColor, Align: style.HeadingAlignment},
		Block{Kind: BlockSpacer, Height: 8},
	)

	for _, sec := range sections.Body {
		doc.Blocks = append(doc.Blocks,
			Block{Kind: BlockHeading, Text: headingText(sec.Title, style), Size: style.HeadSize, Bold: true, Color: style.AccentColor, Align: style.HeadingAlignment},
		)
		if style.DividerStyle != DividerNone {
			doc.Blocks = append(doc.Blocks, Block{Kind: BlockDivider, Divider: style.DividerStyle, Color: style.AccentColor})
		}
		for _, line := range sec.Lines {
			doc.Blocks = append(doc.Blocks, Block{Kind: BlockParagraph, Text: line, Size: style.BodySize, Color: BodyColor})
		}
		for _, e := range sec.Entries {
			doc.Blocks = append(doc.Blocks, pageEntry(e, style)...)
		}
		doc.Blocks = append(doc.Blocks, Block{Kind: BlockSpacer, Height: 6})
	}
	return doc, nil
}

func pageEntry(e Entry, style StyleParams) []Block {
	blocks := []Block{
		{Kind: BlockEntryTitle, Text: e.Title, Aside: e.Dates, Size: style.BodySize + 0.5, Bold: true, Color: BodyColor},
	}
	if e.Subtitle != "" {
		blocks = append(blocks, Block{Kind: BlockEntrySubtitle, Text: e.Subtitle, Size: style.BodySize, Italic: true, Color: MutedColor})
	}
	if e.Text != "" {
		blocks = append(blocks, Block{Kind: BlockParagraph, Text: e.Text, Size: style.BodySize, Color: BodyColor})
	}
	for _, b := range e.Bullets {
		blocks = append(blocks, Block{Kind: BlockBullet, Text: b, Size: style.BodySize, Color: BodyColor})
	}
	return append(blocks, Block{Kind: BlockSpacer, Height: 4})
}

func headingText(title string, style StyleParams) string {
	if style.HeadingUppercase {
		return strings.ToUpper(title)
	}
	return title
}
