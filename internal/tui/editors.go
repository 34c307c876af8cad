package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// beginEdit opens the editor of the current step, loaded from the current
// state. Steps without an inline editor report how to add entries instead.
func (w *Wizard) beginEdit() tea.Cmd {
	s := w.ctrl.Snapshot()
	switch s.CurrentStep().ID {
	case types.StepTemplate:
		if s.SelectedTemplate != nil {
			for i, item := range w.templateList.Items() {
				if ti, ok := item.(templateItem); ok && ti.t.ID == s.SelectedTemplate.ID {
					w.templateList.Select(i)
				}
			}
		}
		w.mode = modeEdit
		return nil

	case types.StepPersonalInfo:
		values := personalValues(s.ResumeData.PersonalInfo)
		for i := range w.fields {
			w.fields[i].SetValue(values[i])
			w.fields[i].Blur()
		}
		w.fieldFocus = 0
		w.mode = modeEdit
		return w.fields[0].Focus()

	case types.StepSummary:
		w.summary.SetValue(s.ResumeData.Summary)
		w.mode = modeEdit
		return w.summary.Focus()

	case types.StepSkills:
		w.skill.SetValue("")
		w.mode = modeEdit
		return w.skill.Focus()

	case types.StepReview:
		report := w.ctrl.ValidateForm()
		w.report = &report
		return nil
	}

	if section, ok := sectionFor(s.CurrentStep().ID); ok {
		w.status = fmt.Sprintf("Add %s entries with: resume_builder add %s --interactive", section, section)
	}
	return nil
}

// endEdit leaves the editor without applying anything further
func (w *Wizard) endEdit() {
	for i := range w.fields {
		w.fields[i].Blur()
	}
	w.summary.Blur()
	w.skill.Blur()
	w.mode = modeNavigate
}

func (w *Wizard) updateEditor(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		w.endEdit()
		return nil
	}
	switch w.currentStep() {
	case types.StepTemplate:
		return w.updateTemplateEditor(msg)
	case types.StepPersonalInfo:
		return w.updatePersonalEditor(msg)
	case types.StepSummary:
		return w.updateSummaryEditor(msg)
	case types.StepSkills:
		return w.updateSkillEditor(msg)
	}
	w.endEdit()
	return nil
}

func (w *Wizard) updateTemplateEditor(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if item, ok := w.templateList.SelectedItem().(templateItem); ok {
			tmpl, found := templates.Get(item.t.ID)
			if found {
				w.ctrl.SelectTemplate(tmpl)
				w.status = fmt.Sprintf("Using %s", tmpl.Name)
			}
		}
		w.endEdit()
		return nil
	}
	var cmd tea.Cmd
	w.templateList, cmd = w.templateList.Update(msg)
	return cmd
}

func (w *Wizard) updatePersonalEditor(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+s":
			w.savePersonal()
			return nil
		case "enter":
			if w.fieldFocus == len(w.fields)-1 {
				w.savePersonal()
				return nil
			}
			return w.focusField(w.fieldFocus + 1)
		case "tab", "down":
			return w.focusField((w.fieldFocus + 1) % len(w.fields))
		case "shift+tab", "up":
			return w.focusField((w.fieldFocus + len(w.fields) - 1) % len(w.fields))
		}
	}
	var cmd tea.Cmd
	w.fields[w.fieldFocus], cmd = w.fields[w.fieldFocus].Update(msg)
	return cmd
}

func (w *Wizard) focusField(i int) tea.Cmd {
	w.fields[w.fieldFocus].Blur()
	w.fieldFocus = i
	return w.fields[i].Focus()
}

func (w *Wizard) savePersonal() {
	current := w.ctrl.Snapshot().ResumeData.PersonalInfo
	info := current
	dst := []*string{&info.Name, &info.Email, &info.Phone, &info.Location, &info.LinkedIn, &info.Website, &info.GitHub}
	for i, p := range dst {
		*p = strings.TrimSpace(w.fields[i].Value())
	}
	if w.ctrl.UpdatePersonalInfo(info) {
		w.status = "Personal information saved"
	}
	w.endEdit()
}

func (w *Wizard) updateSummaryEditor(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+s" {
		if w.ctrl.UpdateSummary(strings.TrimSpace(w.summary.Value())) {
			w.status = "Summary saved"
		}
		w.endEdit()
		return nil
	}
	var cmd tea.Cmd
	w.summary, cmd = w.summary.Update(msg)
	return cmd
}

func (w *Wizard) updateSkillEditor(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		name := strings.TrimSpace(w.skill.Value())
		w.skill.SetValue("")
		switch {
		case name == "":
			w.endEdit()
		case w.ctrl.AddSkill(name):
			w.status = fmt.Sprintf("Added %s", name)
		default:
			w.status = fmt.Sprintf("%s is already listed", name)
		}
		return nil
	}
	var cmd tea.Cmd
	w.skill, cmd = w.skill.Update(msg)
	return cmd
}

func personalValues(p types.PersonalInfo) []string {
	return []string{p.Name, p.Email, p.Phone, p.Location, p.LinkedIn, p.Website, p.GitHub}
}

// fieldViews renders the personal info inputs, one per line
func fieldViews(fields []textinput.Model) string {
	lines := make([]string, len(fields))
	for i := range fields {
		lines[i] = fields[i].View()
	}
	return strings.Join(lines, "\n")
}
