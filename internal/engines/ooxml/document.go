package ooxml

import (
	"encoding/xml"

	"github.com/jonathan/resume-builder/internal/rendering"
)

const (
	nsMain = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

	// US Letter with 0.75in margins, in twips
	pageWidthTwips  = 12240
	pageHeightTwips = 15840
	marginTwips     = 1080
)

// Element order inside pPr and rPr follows the WordprocessingML schema;
// Word rejects documents that reorder them.

type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	Body    wBody    `xml:"w:body"`
}

type wBody struct {
	Paragraphs []wParagraph `xml:"w:p"`
	SectPr     wSectPr      `xml:"w:sectPr"`
}

type wParagraph struct {
	PPr  *wPPr  `xml:"w:pPr,omitempty"`
	Runs []wRun `xml:"w:r"`
}

type wPPr struct {
	PStyle  *wVal     `xml:"w:pStyle,omitempty"`
	PBdr    *wPBdr    `xml:"w:pBdr,omitempty"`
	Tabs    *wTabs    `xml:"w:tabs,omitempty"`
	Spacing *wSpacing `xml:"w:spacing,omitempty"`
	Ind     *wInd     `xml:"w:ind,omitempty"`
	Jc      *wVal     `xml:"w:jc,omitempty"`
}

type wVal struct {
	Val string `xml:"w:val,attr"`
}

type wPBdr struct {
	Bottom wBorder `xml:"w:bottom"`
}

type wBorder struct {
	Val   string `xml:"w:val,attr"`
	Size  int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

type wTabs struct {
	Tab wTabStop `xml:"w:tab"`
}

type wTabStop struct {
	Val string `xml:"w:val,attr"`
	Pos int    `xml:"w:pos,attr"`
}

type wSpacing struct {
	After int `xml:"w:after,attr"`
}

type wInd struct {
	Left int `xml:"w:left,attr"`
}

type wRun struct {
	RPr  *wRPr     `xml:"w:rPr,omitempty"`
	Tab  *struct{} `xml:"w:tab,omitempty"`
	Text wText     `xml:"w:t"`
}

type wRPr struct {
	Bold   *struct{} `xml:"w:b,omitempty"`
	Italic *struct{} `xml:"w:i,omitempty"`
	Color  *wVal     `xml:"w:color,omitempty"`
	Size   *wVal     `xml:"w:sz,omitempty"`
}

type wText struct {
	Space string `xml:"xml:space,attr"`
	Value string `xml:",chardata"`
}

type wSectPr struct {
	PgSz  wPgSz  `xml:"w:pgSz"`
	PgMar wPgMar `xml:"w:pgMar"`
}

type wPgSz struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type wPgMar struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

// buildDocument converts the paragraph tree to its XML model
func buildDocument(doc *rendering.PackageDocument) wDocument {
	out := wDocument{
		XmlnsW: nsMain,
		Body: wBody{
			Paragraphs: make([]wParagraph, 0, len(doc.Paragraphs)),
			SectPr: wSectPr{
				PgSz:  wPgSz{W: pageWidthTwips, H: pageHeightTwips},
				PgMar: wPgMar{Top: marginTwips, Right: marginTwips, Bottom: marginTwips, Left: marginTwips, Header: 720, Footer: 720},
			},
		},
	}
	for _, p := range doc.Paragraphs {
		out.Body.Paragraphs = append(out.Body.Paragraphs, buildParagraph(p))
	}
	return out
}

func buildParagraph(p rendering.Paragraph) wParagraph {
	ppr := &wPPr{}
	if p.Style != "" && p.Style != rendering.StyleNormal {
		ppr.PStyle = &wVal{Val: p.Style}
	}
	if val := borderVal(p.BorderBottom); val != "" {
		ppr.PBdr = &wPBdr{Bottom: wBorder{Val: val, Size: 6, Space: 1, Color: p.BorderColor}}
	}
	if p.RightTabTwips > 0 {
		ppr.Tabs = &wTabs{Tab: wTabStop{Val: "right", Pos: p.RightTabTwips}}
	}
	if p.SpaceAfter > 0 {
		ppr.Spacing = &wSpacing{After: p.SpaceAfter}
	}
	if p.IndentTwips > 0 {
		ppr.Ind = &wInd{Left: p.IndentTwips}
	}
	if p.Align == rendering.AlignCenter {
		ppr.Jc = &wVal{Val: "center"}
	}

	out := wParagraph{Runs: make([]wRun, 0, len(p.Runs))}
	if *ppr != (wPPr{}) {
		out.PPr = ppr
	}
	for _, r := range p.Runs {
		out.Runs = append(out.Runs, buildRun(r))
	}
	return out
}

func buildRun(r rendering.Run) wRun {
	rpr := &wRPr{}
	if r.Bold {
		rpr.Bold = &struct{}{}
	}
	if r.Italic {
		rpr.Italic = &struct{}{}
	}
	if r.Color != "" {
		rpr.Color = &wVal{Val: r.Color}
	}
	if r.SizeHalfPoints > 0 {
		rpr.Size = &wVal{Val: itoa(r.SizeHalfPoints)}
	}

	out := wRun{Text: wText{Space: "preserve", Value: r.Text}}
	if *rpr != (wRPr{}) {
		out.RPr = rpr
	}
	if r.Tab {
		out.Tab = &struct{}{}
	}
	return out
}

func borderVal(d rendering.DividerStyle) string {
	switch d {
	case rendering.DividerSolid:
		return "single"
	case rendering.DividerDouble:
		return "double"
	case rendering.DividerDotted:
		return "dotted"
	}
	return ""
}
