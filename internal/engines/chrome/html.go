// Package chrome renders rendering.PageDocument trees as HTML and prints
// them to PDF with headless Chrome. It is opt-in: it needs a local
// Chrome or Chromium install.
package chrome

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/jonathan/resume-builder/internal/rendering"
)

var funcs = template.FuncMap{
	"css":         cssColor,
	"block_style": blockStyle,
	"pt":          func(f float64) string { return fmt.Sprintf("%.1fpt", f) },
}

var pageTemplate = template.Must(template.New("page").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Doc.Title}}</title>
<style>
@page { size: {{pt .Doc.Size.Width}} {{pt .Doc.Size.Height}}; margin: {{pt .Doc.Margins.Top}} {{pt .Doc.Margins.Right}} {{pt .Doc.Margins.Bottom}} {{pt .Doc.Margins.Left}}; }
body { font-family: {{if eq .Doc.Style.FontFamily "Times"}}"Times New Roman", serif{{else}}Helvetica, Arial, sans-serif{{end}}; margin: 0; }
p, h1, h2, h3 { margin: 0; line-height: 1.35; }
ul { margin: 0; padding-left: 14pt; list-style: none; }
li { position: relative; }
li::before { content: ""; position: absolute; left: -10pt; top: 0.55em; width: 4pt; height: 4pt; border-radius: 50%; background: {{css .Doc.Style.AccentColor}}; }
.entry-title { display: flex; justify-content: space-between; }
hr { border: 0; margin: 1pt 0 5pt; }
hr.solid { border-top: 0.8pt solid {{css .Doc.Style.AccentColor}}; }
hr.double { border-top: 2.5pt double {{css .Doc.Style.AccentColor}}; }
hr.dotted { border-top: 0.8pt dotted {{css .Doc.Style.AccentColor}}; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

var bodyTemplate = template.Must(template.New("body").Funcs(funcs).Parse(`
{{- range .Blocks}}
{{- if eq .Kind.String "name"}}
<h1 style="{{block_style .}}">{{.Text}}</h1>
{{- else if eq .Kind.String "contact"}}
<p class="contact" style="{{block_style .}}">{{.Text}}</p>
{{- else if eq .Kind.String "heading"}}
<h2 style="{{block_style .}}">{{.Text}}</h2>
{{- else if eq .Kind.String "entry-title"}}
<h3 class="entry-title" style="{{block_style .}}"><span>{{.Text}}</span>{{if .Aside}}<span class="dates">{{.Aside}}</span>{{end}}</h3>
{{- else if eq .Kind.String "bullet"}}
<ul><li style="{{block_style .}}">{{.Text}}</li></ul>
{{- else if eq .Kind.String "divider"}}
<hr class="{{.Divider}}">
{{- else if eq .Kind.String "spacer"}}
<div style="height: {{pt .Height}}"></div>
{{- else}}
<p style="{{block_style .}}">{{.Text}}</p>
{{- end}}
{{- end}}
`))

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// bodyPolicy allows exactly the elements, classes and inline styles the body
// template emits. Escaped user text passes through unchanged.
func bodyPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("h1", "h2", "h3", "p", "ul", "li", "span", "div", "hr")
		p.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-z][a-z-]*$`)).Globally()
		p.AllowStyles("font-size", "color", "font-weight", "font-style", "text-align", "height").Globally()
		policy = p
	})
	return policy
}

type pageData struct {
	Doc  *rendering.PageDocument
	Body template.HTML
}

// blockStyle returns inline CSS for a block as template.CSS, the type
// html/template accepts inside style attributes.
func blockStyle(b rendering.Block) template.CSS {
	var sb strings.Builder
	fmt.Fprintf(&sb, "font-size: %.1fpt; color: %s;", b.Size, cssColor(b.Color))
	if b.Bold {
		sb.WriteString(" font-weight: bold;")
	}
	if b.Italic {
		sb.WriteString(" font-style: italic;")
	}
	if b.Align == rendering.AlignCenter {
		sb.WriteString(" text-align: center;")
	}
	return template.CSS(sb.String())
}

func cssColor(c rendering.Color) template.CSS {
	return template.CSS("#" + c.Hex())
}

// HTML renders doc as a standalone HTML page. The body is filtered through
// bodyPolicy before it is placed in the page.
func HTML(doc *rendering.PageDocument) ([]byte, error) {
	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, doc); err != nil {
		return nil, fmt.Errorf("chrome: executing body template: %w", err)
	}
	clean := bodyPolicy().SanitizeBytes(body.Bytes())

	var buf bytes.Buffer
	//nolint:gosec // body was produced by bodyTemplate and filtered above
	if err := pageTemplate.Execute(&buf, pageData{Doc: doc, Body: template.HTML(clean)}); err != nil {
		return nil, fmt.Errorf("chrome: executing page template: %w", err)
	}
	return buf.Bytes(), nil
}

// Outline extracts the section headings from rendered HTML
func Outline(page []byte) ([]string, error) {
	dom, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("chrome: parsing html: %w", err)
	}
	var headings []string
	dom.Find("h2").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, strings.TrimSpace(s.Text()))
	})
	return headings, nil
}

// checkOutline verifies that page carries the same section headings, in
// the same order, as doc
func checkOutline(doc *rendering.PageDocument, page []byte) error {
	got, err := Outline(page)
	if err != nil {
		return err
	}
	if want := doc.Outline(); !slices.Equal(got, want) {
		return fmt.Errorf("chrome: page headings %q do not match document %q", got, want)
	}
	return nil
}
