package rendering

import (
	"context"
	"math"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Letter width minus 0.75in margins on both sides, in twips
const textWidthTwips = 12240 - 2*1080

// DOCXRenderer is the word-processor package backend
type DOCXRenderer struct {
	Engine PackageEngine
}

// NewDOCXRenderer returns a DOCX backend writing through engine
func NewDOCXRenderer(engine PackageEngine) *DOCXRenderer {
	return &DOCXRenderer{Engine: engine}
}

// Format implements Renderer
func (r *DOCXRenderer) Format() types.Format { return types.FormatDOCX }

// Render implements Renderer
func (r *DOCXRenderer) Render(ctx context.Context, data types.ResumeData, tmpl *types.Template) ([]byte, error) {
	doc, err := r.Layout(data, tmpl)
	if err != nil {
		return nil, err
	}
	if r.Engine == nil {
		return nil, &RenderError{Message: "no package engine configured"}
	}
	out, err := r.Engine.RenderPackage(ctx, doc)
	if err != nil {
		return nil, &RenderError{Message: "package engine failed", Cause: err}
	}
	return out, nil
}

// Layout builds the paragraph tree without writing the package
func (r *DOCXRenderer) Layout(data types.ResumeData, tmpl *types.Template) (*PackageDocument, error) {
	if err := Preflight(data); err != nil {
		return nil, err
	}
	style, err := styleFor(tmpl)
	if err != nil {
		return nil, err
	}

	sections := BuildSections(data)
	accent := style.AccentColor.Hex()
	body := halfPoints(style.BodySize)

	doc := &PackageDocument{
		Title:      sections.Header.Name + " - Resume",
		Creator:    sections.Header.Name,
		CreatedAt:  DocumentDate,
		Style:      style,
		FontFamily: wordFont(style.FontFamily),
	}

	doc.Paragraphs = append(doc.Paragraphs,
		Paragraph{
			Style: StyleTitle,
			Align: style.HeadingAlignment,
			Runs:  []Run{{Text: sections.Header.Name, Bold: true, Color: accent, SizeHalfPoints: halfPoints(style.NameSize)}},
		},
		Paragraph{
			Style:      StyleNormal,
			Align:      style.HeadingAlignment,
			SpaceAfter: 160,
			Runs:       []Run{{Text: strings.Join(sections.Header.Contact, "  |  "), Color: MutedColor.Hex(), SizeHalfPoints: body - 2}},
		},
	)

	for _, sec := range sections.Body {
		heading := Paragraph{
			Style:      StyleHeading1,
			Align:      style.HeadingAlignment,
			SpaceAfter: 80,
			Runs:       []Run{{Text: headingText(sec.Title, style), Bold: true, Color: accent, SizeHalfPoints: halfPoints(style.HeadSize)}},
		}
		if style.DividerStyle != DividerNone {
			heading.BorderBottom = style.DividerStyle
			heading.BorderColor = accent
		}
		doc.Paragraphs = append(doc.Paragraphs, heading)

		for _, line := range sec.Lines {
			doc.Paragraphs = append(doc.Paragraphs, Paragraph{
				Style:      StyleNormal,
				SpaceAfter: 80,
				Runs:       []Run{{Text: line, Color: BodyColor.Hex(), SizeHalfPoints: body}},
			})
		}
		for _, e := range sec.Entries {
			doc.Paragraphs = append(doc.Paragraphs, packageEntry(e, style)...)
		}
	}
	return doc, nil
}

func packageEntry(e Entry, style StyleParams) []Paragraph {
	body := halfPoints(style.BodySize)

	title := Paragraph{
		Style:         StyleNormal,
		RightTabTwips: textWidthTwips,
		Runs:          []Run{{Text: e.Title, Bold: true, Color: BodyColor.Hex(), SizeHalfPoints: body + 1}},
	}
	if e.Dates != "" {
		title.Runs = append(title.Runs, Run{Text: e.Dates, Tab: true, Color: MutedColor.Hex(), SizeHalfPoints: body})
	}
	paras := []Paragraph{title}

	if e.Subtitle != "" {
		paras = append(paras, Paragraph{
			Style: StyleNormal,
			Runs:  []Run{{Text: e.Subtitle, Italic: true, Color: MutedColor.Hex(), SizeHalfPoints: body}},
		})
	}
	if e.Text != "" {
		paras = append(paras, Paragraph{
			Style: StyleNormal,
			Runs:  []Run{{Text: e.Text, Color: BodyColor.Hex(), SizeHalfPoints: body}},
		})
	}
	// bullets are indented paragraphs led by the literal glyph, not list numbering
	for _, b := range e.Bullets {
		paras = append(paras, Paragraph{
			Style:       StyleNormal,
			IndentTwips: 360,
			Runs: []Run{
				{Text: style.BulletGlyph + " ", Color: style.AccentColor.Hex(), SizeHalfPoints: body},
				{Text: b, Color: BodyColor.Hex(), SizeHalfPoints: body},
			},
		})
	}
	paras[len(paras)-1].SpaceAfter = 120
	return paras
}

func halfPoints(pt float64) int {
	return int(math.Round(pt * 2))
}

// wordFont maps a core PDF font to the closest installed word-processor font
func wordFont(core string) string {
	switch core {
	case "Times":
		return "Times New Roman"
	case "Courier":
		return "Courier New"
	}
	return "Arial"
}
