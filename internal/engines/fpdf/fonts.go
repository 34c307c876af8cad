package fpdf

import (
	_ "embed"

	gofpdf "github.com/go-pdf/fpdf"
)

// DejaVu faces stand in for the core PDF fonts so any Unicode text a
// resume holds is drawn with real glyphs. See fonts/LICENSE.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	sansRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	sansBold []byte
	//go:embed fonts/DejaVuSansCondensed-Oblique.ttf
	sansItalic []byte
	//go:embed fonts/DejaVuSansCondensed-BoldOblique.ttf
	sansBoldItalic []byte
	//go:embed fonts/DejaVuSerif.ttf
	serifRegular []byte
	//go:embed fonts/DejaVuSerif-Bold.ttf
	serifBold []byte
)

const (
	familySans  = "dejavusans"
	familySerif = "dejavuserif"
)

type face struct {
	style string
	ttf   []byte
}

// serif has no italic faces here; italic serif text is drawn upright
var faces = map[string][]face{
	familySans: {
		{"", sansRegular},
		{"B", sansBold},
		{"I", sansItalic},
		{"BI", sansBoldItalic},
	},
	familySerif: {
		{"", serifRegular},
		{"B", serifBold},
		{"I", serifRegular},
		{"BI", serifBold},
	},
}

// fontFamily maps a style's core font name to the embedded family
func fontFamily(core string) string {
	if core == "Times" {
		return familySerif
	}
	return familySans
}

// registerFonts adds every face of family to pdf
func registerFonts(pdf *gofpdf.Fpdf, family string) {
	for _, f := range faces[family] {
		pdf.AddUTF8FontFromBytes(family, f.style, f.ttf)
	}
}
