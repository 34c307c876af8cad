package rendering

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// Alignment is the horizontal placement of headings
type Alignment string

// Alignments
const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
)

// DividerStyle is the rule drawn under section headings
type DividerStyle string

// Divider styles
const (
	DividerSolid  DividerStyle = "solid"
	DividerDouble DividerStyle = "double"
	DividerDotted DividerStyle = "dotted"
	DividerNone   DividerStyle = "none"
)

// Color is an RGB color
type Color struct {
	R, G, B uint8
}

// Hex returns the color as RRGGBB without a leading #
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Text colors shared by every category
var (
	BodyColor  = Color{0x1F, 0x29, 0x37}
	MutedColor = Color{0x6B, 0x72, 0x80}
)

// StyleParams is the visual identity of a template category. Both backends
// read it the same way, so switching format never changes the look.
type StyleParams struct {
	AccentColor      Color
	HeadingAlignment Alignment
	DividerStyle     DividerStyle
	BulletGlyph      string
	HeadingUppercase bool
	// FontFamily is a core PDF font name; the package backend maps it to an
	// installed font family.
	FontFamily string
	NameSize   float64
	HeadSize   float64
	BodySize   float64
}

// ResolveStyle maps a template category to its style. Unknown categories
// get the modern style.
func ResolveStyle(category types.TemplateCategory) StyleParams {
	switch category {
	case types.CategoryClassic:
		return StyleParams{
			AccentColor:      Color{0x1E, 0x3A, 0x5F},
			HeadingAlignment: AlignCenter,
			DividerStyle:     DividerDouble,
			BulletGlyph:      "•",
			HeadingUppercase: true,
			FontFamily:       "Times",
			NameSize:         22,
			HeadSize:         12,
			BodySize:         10.5,
		}
	case types.CategoryCreative:
		return StyleParams{
			AccentColor:      Color{0x93, 0x33, 0xEA},
			HeadingAlignment: AlignLeft,
			DividerStyle:     DividerDotted,
			BulletGlyph:      "▸",
			HeadingUppercase: false,
			FontFamily:       "Helvetica",
			NameSize:         26,
			HeadSize:         14,
			BodySize:         10,
		}
	case types.CategoryMinimal:
		return StyleParams{
			AccentColor:      Color{0x37, 0x41, 0x51},
			HeadingAlignment: AlignLeft,
			DividerStyle:     DividerNone,
			BulletGlyph:      "–",
			HeadingUppercase: false,
			FontFamily:       "Helvetica",
			NameSize:         20,
			HeadSize:         11,
			BodySize:         10,
		}
	case types.CategoryModern:
		fallthrough
	default:
		return StyleParams{
			AccentColor:      Color{0x25, 0x63, 0xEB},
			HeadingAlignment: AlignLeft,
			DividerStyle:     DividerSolid,
			BulletGlyph:      "•",
			HeadingUppercase: true,
			FontFamily:       "Helvetica",
			NameSize:         24,
			HeadSize:         12,
			BodySize:         10,
		}
	}
}

// styleFor resolves the style of tmpl, failing on a nil template
func styleFor(tmpl *types.Template) (StyleParams, error) {
	if tmpl == nil {
		return StyleParams{}, &TemplateError{Message: "no template selected"}
	}
	return ResolveStyle(tmpl.Category), nil
}
