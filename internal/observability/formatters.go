// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// printBanner prints a single-line box
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBanner(text string) {
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, text)
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}

// truncate shortens s to width runes, marking the cut with "..."
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// PrintState outputs the step list with the cursor and completion marks,
// followed by a count of each section.
func (p *Printer) PrintState(s builder.State) {
	var sb strings.Builder

	for i, step := range s.Steps {
		cursor := " "
		if i == s.CurrentStepIndex {
			cursor = "›"
		}
		mark := "○"
		if step.Completed {
			mark = "✓"
		}
		req := ""
		if step.Required {
			req = " *"
		}
		sb.WriteString(fmt.Sprintf("%s %s %d. %s%s\n", cursor, mark, i+1, step.Title, req))
	}
	sb.WriteString("\n")

	tmpl := "(none)"
	if s.SelectedTemplate != nil {
		tmpl = s.SelectedTemplate.Name
	}
	sb.WriteString(fmt.Sprintf("Template:  %s\n", tmpl))
	if name := s.ResumeData.PersonalInfo.Name; name != "" {
		sb.WriteString(fmt.Sprintf("Name:      %s\n", name))
	}
	d := s.ResumeData
	sb.WriteString(fmt.Sprintf("Entries:   %d experience, %d education, %d skills\n",
		len(d.Experience), len(d.Education), len(d.Skills)))
	sb.WriteString(fmt.Sprintf("           %d projects, %d certifications, %d languages\n",
		len(d.Projects), len(d.Certifications), len(d.Languages)))
	mode := "edit"
	if s.IsPreviewMode {
		mode = "preview"
	}
	sb.WriteString(fmt.Sprintf("Mode:      %s", mode))
	if s.IsDirty {
		sb.WriteString(" (unsaved changes)")
	}

	title := fmt.Sprintf("RESUME BUILDER  %d/%d steps complete", s.CompletedCount(), len(s.Steps))
	p.printBox(title, sb.String())
}

// PrintValidation outputs the validation report, errors first. Keys are
// sorted so the output is stable.
func (p *Printer) PrintValidation(report types.ValidationReport) {
	if report.IsValid && len(report.Warnings) == 0 {
		p.printBanner("✅ READY TO EXPORT")
		return
	}

	var sb strings.Builder
	if len(report.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Found %d errors:\n", len(report.Errors)))
		for _, key := range sortedKeys(report.Errors) {
			sb.WriteString(fmt.Sprintf("✗ %s\n", key))
			sb.WriteString(fmt.Sprintf("  %s\n", report.Errors[key]))
		}
	}
	if len(report.Warnings) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%d warnings:\n", len(report.Warnings)))
		for _, key := range sortedKeys(report.Warnings) {
			sb.WriteString(fmt.Sprintf("⚠ %s\n", key))
			sb.WriteString(fmt.Sprintf("  %s\n", report.Warnings[key]))
		}
	}

	title := "VALIDATION PASSED WITH WARNINGS"
	if !report.IsValid {
		title = "VALIDATION FAILED"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHints outputs style hints. Nothing is printed when there are none.
func (p *Printer) PrintHints(hints []validation.Hint) {
	if len(hints) == 0 {
		return
	}
	var sb strings.Builder
	for _, h := range hints {
		sb.WriteString(fmt.Sprintf("• %s\n  %s\n", h.Field, h.Message))
	}
	p.printBox(fmt.Sprintf("STYLE HINTS (%d)", len(hints)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTemplates outputs the templates with the selected one marked
func (p *Printer) PrintTemplates(list []types.Template, selectedID string) {
	if len(list) == 0 {
		p.printBanner("NO TEMPLATES MATCH")
		return
	}

	var sb strings.Builder
	for i, t := range list {
		mark := " "
		if t.ID == selectedID {
			mark = "●"
		}
		sb.WriteString(fmt.Sprintf("%s %s  [%s]\n", mark, t.Name, t.Category))
		sb.WriteString(fmt.Sprintf("  id: %s\n", t.ID))
		sb.WriteString(fmt.Sprintf("  %s\n", t.Description))
		if len(t.Industries) > 0 {
			count := min(len(t.Industries), 3)
			industries := strings.Join(t.Industries[:count], ", ")
			if len(t.Industries) > count {
				industries += fmt.Sprintf(" +%d", len(t.Industries)-count)
			}
			sb.WriteString(fmt.Sprintf("  for: %s\n", industries))
		}
		if i < len(list)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("TEMPLATES (%d)", len(list)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProgress outputs one export progress line
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(e generation.ProgressEvent) {
	filled := e.Percent * 20 / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
	fmt.Fprintf(p.out, "[%s] %3d%% %s\n", bar, e.Percent, e.Message)
}

// PrintDownloads outputs where exported documents were saved
func (p *Printer) PrintDownloads(downloads []generation.Download) {
	if len(downloads) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(downloads), maxItemsToShow)
	for i := 0; i < count; i++ {
		d := downloads[i]
		sb.WriteString(fmt.Sprintf("• %s (%s, %s)\n", d.Filename, strings.ToUpper(string(d.Format)), formatSize(d.Size)))
		sb.WriteString(fmt.Sprintf("  %s\n", d.Location))
	}
	if len(downloads) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(downloads)-maxItemsToShow))
	}

	p.printBox("EXPORTED", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPreview outputs where a preview can be fetched
func (p *Printer) PrintPreview(ref generation.PreviewRef) {
	p.printBox("PREVIEW", fmt.Sprintf("%s\n%s, %s", ref.URL, ref.MediaType, formatSize(ref.Size)))
}

func formatSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
