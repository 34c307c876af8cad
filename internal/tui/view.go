package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	currentStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#444444"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
	sectionHeading = lipgloss.NewStyle().Bold(true).Underline(true)
)

const leftWidth = 30

func (w *Wizard) rightWidth() int {
	if w.width == 0 {
		return 70
	}
	return max(30, w.width-leftWidth-4)
}

// View implements tea.Model
func (w *Wizard) View() string {
	s := w.ctrl.Snapshot()

	left := panelStyle.Width(leftWidth).Render(renderSteps(s))
	var right string
	if s.IsPreviewMode {
		right = renderPreview(s.ResumeData, s.SelectedTemplate)
	} else {
		right = w.renderStep(s)
	}
	right = panelStyle.Width(w.rightWidth()).Render(right)

	header := titleStyle.MarginBottom(1).Render(
		fmt.Sprintf("RESUME BUILDER · %d/%d complete", s.CompletedCount(), len(s.Steps)))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return strings.Join([]string{header, body, w.renderFooter()}, "\n")
}

func renderSteps(s builder.State) string {
	lines := make([]string, 0, len(s.Steps))
	for i, step := range s.Steps {
		mark := pendingStyle.Render("○")
		if step.Completed {
			mark = doneStyle.Render("✓")
		}
		label := fmt.Sprintf("%d. %s", (i+1)%10, step.Title)
		if step.Required {
			label += " *"
		}
		if i == s.CurrentStepIndex {
			label = currentStyle.Render("› " + label)
		} else {
			label = "  " + label
		}
		lines = append(lines, mark+" "+label)
	}
	return strings.Join(lines, "\n")
}

func (w *Wizard) renderStep(s builder.State) string {
	step := s.CurrentStep()
	var b strings.Builder
	b.WriteString(titleStyle.Render(step.Title))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(step.Description))
	b.WriteString("\n\n")

	data := s.ResumeData
	switch step.ID {
	case types.StepTemplate:
		if w.mode == modeEdit {
			b.WriteString(w.templateList.View())
			break
		}
		if s.SelectedTemplate == nil {
			b.WriteString("No template selected.")
		} else {
			fmt.Fprintf(&b, "%s (%s)\n%s", s.SelectedTemplate.Name, s.SelectedTemplate.Category, s.SelectedTemplate.Description)
		}

	case types.StepPersonalInfo:
		if w.mode == modeEdit {
			b.WriteString(fieldViews(w.fields))
			break
		}
		values := personalValues(data.PersonalInfo)
		for i, name := range personalFields {
			fmt.Fprintf(&b, "%-9s %s\n", name+":", values[i])
		}

	case types.StepSummary:
		if w.mode == modeEdit {
			b.WriteString(w.summary.View())
			break
		}
		if data.Summary == "" {
			b.WriteString("No summary yet.")
		} else {
			b.WriteString(lipgloss.NewStyle().Width(w.rightWidth() - 4).Render(data.Summary))
		}

	case types.StepSkills:
		if w.mode == modeEdit {
			b.WriteString(w.skill.View())
			b.WriteString("\n\n")
		}
		b.WriteString(w.renderRows(data.Skills))

	case types.StepReview:
		b.WriteString(w.renderReview())

	default:
		b.WriteString(w.renderRows(entryRows(s, step.ID, w.rightWidth()-6)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// entryRows summarizes each entry of a collection step on one line
func entryRows(s builder.State, id types.StepID, width int) []string {
	d := s.ResumeData
	var rows []string
	switch id {
	case types.StepExperience:
		for _, e := range d.Experience {
			rows = append(rows, summaryOf(fmt.Sprintf("%s at %s (%s)", e.Position, e.Company, dates(e.StartDate, e.EndDate, e.Current)), width))
		}
	case types.StepEducation:
		for _, e := range d.Education {
			rows = append(rows, summaryOf(fmt.Sprintf("%s %s, %s", e.Degree, e.Field, e.Institution), width))
		}
	case types.StepProjects:
		for _, p := range d.Projects {
			rows = append(rows, summaryOf(fmt.Sprintf("%s: %s", p.Name, p.Description), width))
		}
	case types.StepCertifications:
		for _, c := range d.Certifications {
			rows = append(rows, summaryOf(fmt.Sprintf("%s (%s)", c.Name, c.Issuer), width))
		}
	case types.StepLanguages:
		for _, l := range d.Languages {
			rows = append(rows, fmt.Sprintf("%s (%s)", l.Language, l.Proficiency))
		}
	}
	return rows
}

func dates(start, end string, current bool) string {
	switch {
	case current:
		return start + " - Present"
	case end != "":
		return start + " - " + end
	}
	return start
}

func (w *Wizard) renderRows(rows []string) string {
	if len(rows) == 0 {
		return "Nothing added yet."
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		if i == w.cursor && w.mode == modeNavigate {
			lines[i] = selectedStyle.Render("› " + row)
		} else {
			lines[i] = "  " + row
		}
	}
	return strings.Join(lines, "\n")
}

func (w *Wizard) renderReview() string {
	var b strings.Builder
	if w.report == nil {
		b.WriteString("Press v to validate, e to export " + strings.ToUpper(string(w.format)) + ", a to export all formats.")
	} else if w.report.IsValid {
		b.WriteString(doneStyle.Render("Ready to export."))
	} else {
		b.WriteString(errorStyle.Render(fmt.Sprintf("%d problems:", len(w.report.Errors))))
		for _, key := range sortedKeys(w.report.Errors) {
			fmt.Fprintf(&b, "\n  ✗ %s", w.report.Errors[key])
		}
	}
	if w.report != nil {
		for _, key := range sortedKeys(w.report.Warnings) {
			b.WriteString("\n" + warningStyle.Render("  ⚠ "+w.report.Warnings[key]))
		}
	}

	if w.mode == modeExporting || w.percent > 0 {
		b.WriteString("\n\n")
		b.WriteString(w.bar.ViewAs(w.percent))
		if w.stageText != "" {
			b.WriteString("\n" + hintStyle.Render(w.stageText))
		}
	}
	for _, d := range w.downloads {
		fmt.Fprintf(&b, "\n  %s → %s", d.Filename, d.Location)
	}
	return b.String()
}

// renderPreview shows the resume as plain text, sections in the same
// order the document backends use
func renderPreview(data types.ResumeData, tmpl *types.Template) string {
	secs := rendering.BuildSections(data)
	var b strings.Builder
	name := secs.Header.Name
	if name == "" {
		name = "(your name)"
	}
	b.WriteString(titleStyle.Render(name))
	if tmpl != nil {
		b.WriteString(hintStyle.Render("  · " + tmpl.Name))
	}
	if len(secs.Header.Contact) > 0 {
		b.WriteString("\n" + strings.Join(secs.Header.Contact, " | "))
	}
	for _, sec := range secs.Body {
		b.WriteString("\n\n" + sectionHeading.Render(sec.Title))
		for _, line := range sec.Lines {
			b.WriteString("\n" + line)
		}
		for _, e := range sec.Entries {
			b.WriteString("\n" + e.Title)
			if e.Subtitle != "" {
				b.WriteString(" · " + e.Subtitle)
			}
			if e.Dates != "" {
				b.WriteString(hintStyle.Render("  " + e.Dates))
			}
			if e.Text != "" {
				b.WriteString("\n  " + e.Text)
			}
			for _, bullet := range e.Bullets {
				b.WriteString("\n  • " + bullet)
			}
		}
	}
	return b.String()
}

func (w *Wizard) renderFooter() string {
	var line string
	switch {
	case w.err != nil:
		line = errorStyle.Render(errorText(w.err))
	case w.status != "":
		line = w.status
	}
	var help string
	switch w.mode {
	case modeEdit:
		help = "esc cancel · enter confirm · ctrl+s save"
	case modeExporting:
		help = "exporting..."
	default:
		help = "←/→ step · 1-0 jump · enter edit · x remove · tab preview · v validate · e export · r preview file · q quit"
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, hintStyle.MarginTop(1).Render(help))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
