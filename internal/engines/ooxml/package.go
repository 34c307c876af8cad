// Package ooxml writes rendering.PackageDocument trees as DOCX packages
// (Office Open XML WordprocessingML in a zip container).
package ooxml

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/rendering"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>
</Types>`

const packageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>
</Relationships>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

const appProps = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">
<Application>resume-builder</Application>
</Properties>`

// stylesTemplate takes the body font as argument 1 and the accent color
// as argument 2.
const stylesTemplate = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s" w:cs="%[1]s"/><w:sz w:val="20"/></w:rPr></w:rPrDefault></w:docDefaults>
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:pPr><w:spacing w:after="0"/></w:pPr></w:style>
<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:rPr><w:b/><w:color w:val="%[2]s"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:pPr><w:keepNext/><w:spacing w:before="200"/><w:outlineLvl w:val="0"/></w:pPr><w:rPr><w:b/><w:color w:val="%[2]s"/></w:rPr></w:style>
</w:styles>`

type coreProperties struct {
	XMLName  xml.Name `xml:"cp:coreProperties"`
	XmlnsCP  string   `xml:"xmlns:cp,attr"`
	XmlnsDC  string   `xml:"xmlns:dc,attr"`
	XmlnsDCT string   `xml:"xmlns:dcterms,attr"`
	XmlnsXSI string   `xml:"xmlns:xsi,attr"`
	Title    string   `xml:"dc:title"`
	Creator  string   `xml:"dc:creator"`
	Created  w3cDate  `xml:"dcterms:created"`
	Modified w3cDate  `xml:"dcterms:modified"`
}

type w3cDate struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

// Engine is a rendering.PackageEngine producing DOCX bytes
type Engine struct{}

// New returns a DOCX engine
func New() *Engine {
	return &Engine{}
}

// RenderPackage implements rendering.PackageEngine. Parts are written in
// sorted order with the document date as their timestamp, so the same
// tree always yields the same bytes.
func (e *Engine) RenderPackage(ctx context.Context, doc *rendering.PackageDocument) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("ooxml: nil document")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	document, err := marshal(buildDocument(doc))
	if err != nil {
		return nil, fmt.Errorf("ooxml: document part: %w", err)
	}
	core, err := marshal(buildCore(doc))
	if err != nil {
		return nil, fmt.Errorf("ooxml: core properties: %w", err)
	}

	parts := map[string][]byte{
		"[Content_Types].xml":          []byte(contentTypes),
		"_rels/.rels":                  []byte(packageRels),
		"docProps/app.xml":             []byte(appProps),
		"docProps/core.xml":            core,
		"word/_rels/document.xml.rels": []byte(documentRels),
		"word/document.xml":            document,
		"word/styles.xml":              []byte(styles(doc)),
	}

	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: doc.CreatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("ooxml: creating %s: %w", name, err)
		}
		if _, err := w.Write(parts[name]); err != nil {
			return nil, fmt.Errorf("ooxml: writing %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("ooxml: closing package: %w", err)
	}
	return buf.Bytes(), nil
}

func buildCore(doc *rendering.PackageDocument) coreProperties {
	created := doc.CreatedAt.UTC().Format(time.RFC3339)
	return coreProperties{
		XmlnsCP:  "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		XmlnsDC:  "http://purl.org/dc/elements/1.1/",
		XmlnsDCT: "http://purl.org/dc/terms/",
		XmlnsXSI: "http://www.w3.org/2001/XMLSchema-instance",
		Title:    doc.Title,
		Creator:  doc.Creator,
		Created:  w3cDate{Type: "dcterms:W3CDTF", Value: created},
		Modified: w3cDate{Type: "dcterms:W3CDTF", Value: created},
	}
}

func styles(doc *rendering.PackageDocument) string {
	font := escapeAttr(doc.FontFamily)
	if font == "" {
		font = "Arial"
	}
	return fmt.Sprintf(stylesTemplate, font, doc.Style.AccentColor.Hex())
}

func marshal(v any) ([]byte, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func escapeAttr(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
