// Package fpdf draws rendering.PageDocument trees with the pure-Go fpdf
// library. It needs no external binaries, so it is the default page engine.
// Text is drawn with embedded UTF-8 fonts.
package fpdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"

	gofpdf "github.com/go-pdf/fpdf"

	"github.com/jonathan/resume-builder/internal/rendering"
)

const (
	lineHeightFactor = 1.35
	bulletIndent     = 14.0
)

// Engine is a rendering.PageEngine backed by fpdf
type Engine struct {
	// Compress enables stream compression. Tests turn it off to inspect
	// the drawn text.
	Compress bool
}

// New returns an engine with compression enabled
func New() *Engine {
	return &Engine{Compress: true}
}

// RenderPage implements rendering.PageEngine
func (e *Engine) RenderPage(ctx context.Context, doc *rendering.PageDocument) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("fpdf: nil document")
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: doc.Size.Width, Ht: doc.Size.Height},
	})
	pdf.SetCompression(e.Compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(doc.CreatedAt)
	pdf.SetModificationDate(doc.CreatedAt)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetCreator("resume-builder", false)
	pdf.SetMargins(doc.Margins.Left, doc.Margins.Top, doc.Margins.Right)
	pdf.SetAutoPageBreak(true, doc.Margins.Bottom)

	family := fontFamily(doc.Style.FontFamily)
	registerFonts(pdf, family)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("fpdf: loading fonts: %w", err)
	}
	pdf.AddPage()

	d := &drawer{
		pdf:    pdf,
		doc:    doc,
		family: family,
		width:  doc.Size.Width - doc.Margins.Left - doc.Margins.Right,
	}
	for _, b := range doc.Blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d.block(b)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("fpdf: drawing %s block: %w", b.Kind, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("fpdf: output: %w", err)
	}
	return buf.Bytes(), nil
}

type drawer struct {
	pdf    *gofpdf.Fpdf
	doc    *rendering.PageDocument
	family string
	width  float64
}

// text replaces runes outside the Basic Multilingual Plane, which the
// embedded fonts cannot map, with U+FFFD
func (d *drawer) text(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return unicode.ReplacementChar
		}
		return r
	}, s)
}

func (d *drawer) block(b rendering.Block) {
	switch b.Kind {
	case rendering.BlockName, rendering.BlockContact:
		d.font(b)
		d.pdf.CellFormat(0, b.Size*lineHeightFactor, d.text(b.Text), "", 1, align(b.Align), false, 0, "")

	case rendering.BlockHeading:
		// outline text is encoded by the current font
		d.font(b)
		d.pdf.Bookmark(d.text(b.Text), 0, -1)
		d.pdf.CellFormat(0, b.Size*lineHeightFactor, d.text(b.Text), "", 1, align(b.Align), false, 0, "")

	case rendering.BlockEntryTitle:
		d.font(b)
		h := b.Size * lineHeightFactor
		if b.Aside == "" {
			d.pdf.MultiCell(0, h, d.text(b.Text), "", "L", false)
			return
		}
		aside := d.text(b.Aside)
		d.pdf.SetFont(d.family, "", b.Size-0.5)
		asideW := d.pdf.GetStringWidth(aside) + 2
		d.font(b)
		d.pdf.CellFormat(d.width-asideW, h, d.text(b.Text), "", 0, "L", false, 0, "")
		d.pdf.SetFont(d.family, "", b.Size-0.5)
		d.pdf.SetTextColor(rgb(rendering.MutedColor))
		d.pdf.CellFormat(asideW, h, aside, "", 1, "R", false, 0, "")

	case rendering.BlockEntrySubtitle, rendering.BlockParagraph:
		d.font(b)
		d.pdf.MultiCell(0, b.Size*lineHeightFactor, d.text(b.Text), "", "L", false)

	case rendering.BlockBullet:
		d.bullet(b)

	case rendering.BlockDivider:
		d.divider(b)

	case rendering.BlockSpacer:
		d.pdf.Ln(b.Height)
	}
}

// bullet draws a small filled circle in the gutter and wraps the text
// beside it.
func (d *drawer) bullet(b rendering.Block) {
	h := b.Size * lineHeightFactor
	left, _, _, _ := d.pdf.GetMargins()

	// break before drawing so the dot lands on the same page as its text
	_, pageH := d.pdf.GetPageSize()
	if d.pdf.GetY()+h > pageH-d.doc.Margins.Bottom {
		d.pdf.AddPage()
	}

	y := d.pdf.GetY()
	d.pdf.SetFillColor(rgb(d.doc.Style.AccentColor))
	d.pdf.Circle(left+bulletIndent/2, y+h/2, b.Size*0.16, "F")

	d.font(b)
	d.pdf.SetX(left + bulletIndent)
	d.pdf.MultiCell(d.width-bulletIndent, h, d.text(b.Text), "", "L", false)
}

func (d *drawer) divider(b rendering.Block) {
	left, _, right, _ := d.pdf.GetMargins()
	pageW, _ := d.pdf.GetPageSize()
	x2 := pageW - right
	y := d.pdf.GetY() + 1

	d.pdf.SetDrawColor(rgb(b.Color))
	switch b.Divider {
	case rendering.DividerDouble:
		d.pdf.SetLineWidth(0.5)
		d.pdf.Line(left, y, x2, y)
		d.pdf.Line(left, y+2, x2, y+2)
	case rendering.DividerDotted:
		d.pdf.SetLineWidth(0.8)
		d.pdf.SetDashPattern([]float64{1, 2}, 0)
		d.pdf.Line(left, y, x2, y)
		d.pdf.SetDashPattern([]float64{}, 0)
	case rendering.DividerSolid:
		d.pdf.SetLineWidth(0.8)
		d.pdf.Line(left, y, x2, y)
	}
	d.pdf.Ln(5)
}

func (d *drawer) font(b rendering.Block) {
	style := ""
	if b.Bold {
		style += "B"
	}
	if b.Italic {
		style += "I"
	}
	d.pdf.SetFont(d.family, style, b.Size)
	d.pdf.SetTextColor(rgb(b.Color))
}

func align(a rendering.Alignment) string {
	if a == rendering.AlignCenter {
		return "C"
	}
	return "L"
}

func rgb(c rendering.Color) (int, int, int) {
	return int(c.R), int(c.G), int(c.B)
}
