// Package tui is the terminal wizard for the resume builder. It uses
// bubbletea: Update turns key presses into builder commands on the
// Controller, and View renders the resulting state.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// mode is what keys currently drive
type mode int

const (
	modeNavigate  mode = iota // keys move between steps
	modeEdit                  // keys go to the current step's editor
	modeExporting             // an export is running
)

// personal info fields in editor order
var personalFields = []string{"Name", "Email", "Phone", "Location", "LinkedIn", "Website", "GitHub"}

// Option customizes a Wizard
type Option func(*Wizard)

// WithFormat sets the format exported by the e key
func WithFormat(format types.Format) Option {
	return func(w *Wizard) { w.format = format }
}

// Wizard is the bubbletea model of the builder
type Wizard struct {
	ctx  context.Context
	ctrl *builder.Controller
	orch *generation.Orchestrator

	mode   mode
	format types.Format
	width  int
	height int

	// editors
	templateList list.Model
	fields       []textinput.Model
	fieldFocus   int
	summary      textarea.Model
	skill        textinput.Model
	cursor       int

	report    *types.ValidationReport
	bar       progress.Model
	percent   float64
	stageText string
	events    <-chan tea.Msg
	downloads []generation.Download
	status    string
	err       error
}

// templateItem implements list.Item for the template picker
type templateItem struct {
	t types.Template
}

func (i templateItem) Title() string       { return i.t.Name }
func (i templateItem) Description() string { return fmt.Sprintf("%s · %s", i.t.Category, i.t.Description) }
func (i templateItem) FilterValue() string { return i.t.Name }

// New returns a wizard driving ctrl and exporting through orch
func New(ctx context.Context, ctrl *builder.Controller, orch *generation.Orchestrator, opts ...Option) *Wizard {
	catalog := templates.Catalog()
	items := make([]list.Item, len(catalog))
	for i, t := range catalog {
		items[i] = templateItem{t: t}
	}
	tl := list.New(items, list.NewDefaultDelegate(), 60, 20)
	tl.Title = "Templates"
	tl.SetShowStatusBar(false)
	tl.SetFilteringEnabled(false)
	tl.SetShowHelp(false)

	fields := make([]textinput.Model, len(personalFields))
	for i, name := range personalFields {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%-9s ", name+":")
		in.CharLimit = 200
		fields[i] = in
	}

	ta := textarea.New()
	ta.Placeholder = "Two to four sentences on who you are and what you are looking for."
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(6)

	skill := textinput.New()
	skill.Prompt = "add skill> "
	skill.CharLimit = 100

	w := &Wizard{
		ctx:          ctx,
		ctrl:         ctrl,
		orch:         orch,
		format:       types.FormatPDF,
		templateList: tl,
		fields:       fields,
		summary:      ta,
		skill:        skill,
		bar:          progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the program on the terminal and blocks until the user quits
func Run(ctx context.Context, w *Wizard) error {
	_, err := tea.NewProgram(w, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		w.templateList.SetSize(max(20, w.rightWidth()-4), max(6, msg.Height-10))
		w.summary.SetWidth(max(20, w.rightWidth()-6))
		return w, nil

	case progressMsg:
		w.percent = float64(msg.Percent) / 100
		w.stageText = msg.Message
		return w, waitForExport(w.events)

	case exportDoneMsg:
		w.finishExport(msg)
		return w, nil

	case previewDoneMsg:
		if msg.err != nil {
			w.setError(msg.err)
		} else {
			w.status = fmt.Sprintf("Preview ready: %s", msg.ref.URL)
		}
		return w, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return w, tea.Quit
		}
		switch w.mode {
		case modeEdit:
			return w, w.updateEditor(msg)
		case modeExporting:
			return w, nil
		}
		return w.updateNavigate(msg)
	}

	if w.mode == modeEdit {
		return w, w.updateEditor(msg)
	}
	return w, nil
}

func (w *Wizard) updateNavigate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		return w, tea.Quit
	case "right", "l", "n":
		w.navigated(w.ctrl.Next())
	case "left", "h", "p":
		w.navigated(w.ctrl.Previous())
	case "1", "2", "3", "4", "5", "6", "7", "8", "9", "0":
		idx := int(key[0]-'0') - 1
		if key == "0" {
			idx = 9
		}
		w.navigated(w.ctrl.GoTo(idx))
	case "tab":
		w.ctrl.TogglePreview()
	case "v":
		report := w.ctrl.ValidateForm()
		w.report = &report
		if report.IsValid {
			w.status = "Ready to export"
		} else {
			w.status = fmt.Sprintf("%d problems to fix before exporting", len(report.Errors))
		}
	case "e":
		return w, w.startExport([]types.Format{w.format})
	case "a":
		return w, w.startExport([]types.Format{types.FormatPDF, types.FormatDOCX})
	case "r":
		return w, w.startPreview()
	case "up", "k":
		w.cursor = max(0, w.cursor-1)
	case "down", "j":
		if n := w.itemCount(); w.cursor < n-1 {
			w.cursor++
		}
	case "x", "delete":
		w.removeSelected()
	case "enter":
		return w, w.beginEdit()
	}
	return w, nil
}

// navigated resets per-step UI after the cursor moved
func (w *Wizard) navigated(moved bool) {
	if !moved {
		return
	}
	w.cursor = 0
	w.err = nil
	w.status = ""
}

func (w *Wizard) currentStep() types.StepID {
	return w.ctrl.Snapshot().CurrentStep().ID
}

// itemCount is the number of selectable rows on the current step
func (w *Wizard) itemCount() int {
	s := w.ctrl.Snapshot()
	id := s.CurrentStep().ID
	if id == types.StepSkills {
		return len(s.ResumeData.Skills)
	}
	if section, ok := sectionFor(id); ok {
		return len(s.EntryIDs(section))
	}
	return 0
}

// removeSelected deletes the highlighted entry or skill
func (w *Wizard) removeSelected() {
	s := w.ctrl.Snapshot()
	id := s.CurrentStep().ID
	if id == types.StepSkills {
		if w.cursor < len(s.ResumeData.Skills) {
			name := s.ResumeData.Skills[w.cursor]
			if w.ctrl.RemoveSkill(name) {
				w.status = fmt.Sprintf("Removed %s", name)
			}
		}
		w.clampCursor()
		return
	}
	section, ok := sectionFor(id)
	if !ok {
		return
	}
	ids := s.EntryIDs(section)
	if w.cursor >= len(ids) {
		return
	}
	cmd, err := builder.RemoveEntry(section, ids[w.cursor])
	if err != nil {
		w.setError(err)
		return
	}
	if w.ctrl.Dispatch(cmd) {
		w.status = "Entry removed"
	}
	w.clampCursor()
}

func (w *Wizard) clampCursor() {
	w.cursor = max(0, min(w.cursor, w.itemCount()-1))
}

func (w *Wizard) setError(err error) {
	w.err = err
	w.status = ""
}

// sectionFor maps a collection step to its entry section
func sectionFor(id types.StepID) (builder.Section, bool) {
	switch id {
	case types.StepExperience:
		return builder.SectionExperience, true
	case types.StepEducation:
		return builder.SectionEducation, true
	case types.StepProjects:
		return builder.SectionProjects, true
	case types.StepCertifications:
		return builder.SectionCertifications, true
	case types.StepLanguages:
		return builder.SectionLanguages, true
	}
	return "", false
}

// summaryOf returns the first line of s, shortened to width
func summaryOf(s string, width int) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	r := []rune(line)
	if width > 3 && len(r) > width {
		return string(r[:width-3]) + "..."
	}
	return line
}
