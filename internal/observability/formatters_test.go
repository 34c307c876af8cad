package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

func TestPrintState_Initial(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintState(builder.NewState())
	output := buf.String()

	assert.Contains(t, output, "RESUME BUILDER")
	assert.Contains(t, output, "› ○ 1. Choose Template *")
	assert.Contains(t, output, "Template:  (none)")
	assert.Contains(t, output, "Mode:      edit")
	assert.NotContains(t, output, "unsaved")
}

func TestPrintState_WithData(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	tmpl, ok := templates.Get("minimal-clean")
	assert.True(t, ok)
	s, _ := builder.ApplyAll(builder.NewState(),
		builder.SelectTemplate{Template: tmpl},
		builder.UpdatePersonalInfo{Info: types.PersonalInfo{Name: "Jane Doe"}},
		builder.AddSkill{Name: "Go"},
		builder.NextStep{},
		builder.TogglePreview{},
	)

	p.PrintState(s)
	output := buf.String()

	assert.Contains(t, output, "✓ 1. Choose Template")
	assert.Contains(t, output, "› ○ 2. Personal Information")
	assert.Contains(t, output, "Template:  Minimal Clean")
	assert.Contains(t, output, "Name:      Jane Doe")
	assert.Contains(t, output, "0 experience, 0 education, 1 skills")
	assert.Contains(t, output, "preview (unsaved changes)")
}

func TestPrintValidation(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf).PrintValidation(types.NewValidationReport())
		assert.Contains(t, buf.String(), "READY TO EXPORT")
	})

	t.Run("errors sorted before warnings", func(t *testing.T) {
		var buf bytes.Buffer
		report := types.NewValidationReport()
		report.IsValid = false
		report.Errors["summary"] = "Professional summary is required"
		report.Errors["email"] = "Email is required"
		report.Warnings["ats"] = "Consider using action verbs"

		NewPrinter(&buf).PrintValidation(report)
		output := buf.String()

		assert.Contains(t, output, "VALIDATION FAILED")
		assert.Contains(t, output, "Found 2 errors")
		assert.Less(t, strings.Index(output, "✗ email"), strings.Index(output, "✗ summary"))
		assert.Less(t, strings.Index(output, "✗ summary"), strings.Index(output, "⚠ ats"))
	})

	t.Run("warnings only", func(t *testing.T) {
		var buf bytes.Buffer
		report := types.NewValidationReport()
		report.Warnings["ats"] = "Consider using action verbs"

		NewPrinter(&buf).PrintValidation(report)
		assert.Contains(t, buf.String(), "PASSED WITH WARNINGS")
	})
}

func TestPrintTemplates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	list := templates.Catalog()
	p.PrintTemplates(list, "minimal-clean")
	output := buf.String()

	assert.Contains(t, output, "TEMPLATES (8)")
	assert.Contains(t, output, "● Minimal Clean")
	assert.Contains(t, output, "id: modern-professional")
}

func TestPrintTemplates_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTemplates(nil, "")
	assert.Contains(t, buf.String(), "NO TEMPLATES MATCH")
}

func TestPrintProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProgress(generation.ProgressEvent{Stage: generation.StageGenerate, Percent: 50, Message: "Generating PDF..."})

	assert.Equal(t, "[██████████░░░░░░░░░░]  50% Generating PDF...\n", buf.String())
}

func TestPrintDownloads(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDownloads([]generation.Download{
		{Filename: "jane_resume.pdf", Format: types.FormatPDF, Size: 2048, Location: "out/jane_resume.pdf"},
		{Filename: "jane_resume.docx", Format: types.FormatDOCX, Size: 12, Location: "out/jane_resume.docx"},
	})
	output := buf.String()

	assert.Contains(t, output, "EXPORTED")
	assert.Contains(t, output, "jane_resume.pdf (PDF, 2.0 KB)")
	assert.Contains(t, output, "jane_resume.docx (DOCX, 12 B)")
}

func TestPrintDownloads_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDownloads(nil)
	assert.Empty(t, buf.String())
}

func TestPrintPreview(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintPreview(generation.PreviewRef{URL: "/builder/previews/abc", MediaType: types.MediaTypePDF, Size: 3 << 20})
	output := buf.String()
	assert.Contains(t, output, "/builder/previews/abc")
	assert.Contains(t, output, "3.0 MB")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintHints(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintHints(nil)
	assert.Empty(t, buf.String())

	p.PrintHints([]validation.Hint{{Field: "summary", Kind: validation.HintFillerPhrase, Message: `"synergy" adds little`}})
	output := buf.String()
	assert.Contains(t, output, "STYLE HINTS (1)")
	assert.Contains(t, output, "• summary")
	assert.Contains(t, output, `"synergy" adds little`)
}
