package builder

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/types"
)

// minSummaryChars is the length the summary must exceed for its step to count as done
const minSummaryChars = 50

// StepDefinition describes a wizard step and how its completion is derived.
// A nil Completed means the step has no natural predicate and is completed
// only through MarkStepCompleted.
type StepDefinition struct {
	ID          types.StepID
	Title       string
	Description string
	Icon        string
	Required    bool
	Completed   func(s *State) bool
}

// stepDefinitions is the wizard in display order. Review is handled
// separately because it depends on every other step.
var stepDefinitions = []StepDefinition{
	{
		ID:          types.StepTemplate,
		Title:       "Choose Template",
		Description: "Pick a visual style for your resume",
		Icon:        "layout",
		Required:    true,
		Completed:   func(s *State) bool { return s.SelectedTemplate != nil },
	},
	{
		ID:          types.StepPersonalInfo,
		Title:       "Personal Information",
		Description: "Name and contact details",
		Icon:        "user",
		Required:    true,
		Completed: func(s *State) bool {
			p := s.ResumeData.PersonalInfo
			return filled(p.Name) && filled(p.Email) && filled(p.Phone) && filled(p.Location)
		},
	},
	{
		ID:          types.StepSummary,
		Title:       "Professional Summary",
		Description: "A short pitch about who you are",
		Icon:        "file-text",
		Required:    true,
		Completed: func(s *State) bool {
			return utf8.RuneCountInString(s.ResumeData.Summary) > minSummaryChars
		},
	},
	{
		ID:          types.StepExperience,
		Title:       "Work Experience",
		Description: "Positions you have held",
		Icon:        "briefcase",
		Required:    true,
		Completed:   func(s *State) bool { return len(s.ResumeData.Experience) > 0 },
	},
	{
		ID:          types.StepEducation,
		Title:       "Education",
		Description: "Degrees and programs",
		Icon:        "graduation-cap",
		Required:    true,
		Completed:   func(s *State) bool { return len(s.ResumeData.Education) > 0 },
	},
	{
		ID:          types.StepSkills,
		Title:       "Skills",
		Description: "Technical and professional skills",
		Icon:        "zap",
		Required:    true,
		Completed:   func(s *State) bool { return len(s.ResumeData.Skills) > 0 },
	},
	{
		ID:          types.StepProjects,
		Title:       "Projects",
		Description: "Side projects and portfolio work",
		Icon:        "folder",
		Completed:   func(s *State) bool { return len(s.ResumeData.Projects) > 0 },
	},
	{
		ID:          types.StepCertifications,
		Title:       "Certifications",
		Description: "Professional certificates",
		Icon:        "award",
		Completed:   func(s *State) bool { return len(s.ResumeData.Certifications) > 0 },
	},
	{
		ID:          types.StepLanguages,
		Title:       "Languages",
		Description: "Spoken languages and proficiency",
		Icon:        "globe",
		Completed:   func(s *State) bool { return len(s.ResumeData.Languages) > 0 },
	},
	{
		ID:          types.StepReview,
		Title:       "Review & Export",
		Description: "Check your resume and download it",
		Icon:        "check-circle",
		Required:    true,
	},
}

// DefaultSteps returns a fresh step list with nothing completed
func DefaultSteps() []types.BuilderStep {
	steps := make([]types.BuilderStep, 0, len(stepDefinitions))
	for _, def := range stepDefinitions {
		steps = append(steps, types.BuilderStep{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
			Required:    def.Required,
			Enabled:     true,
		})
	}
	return steps
}

// Definition returns the definition of a known step
func Definition(id types.StepID) (StepDefinition, bool) {
	for _, def := range stepDefinitions {
		if def.ID == id {
			return def, true
		}
	}
	return StepDefinition{}, false
}

// recomputeCompletion derives every predicate-backed completed flag from
// the current data. Review is evaluated last, over the already updated flags.
func recomputeCompletion(s *State) {
	for i := range s.Steps {
		def, ok := Definition(s.Steps[i].ID)
		if !ok || def.Completed == nil {
			continue
		}
		s.Steps[i].Completed = def.Completed(s)
	}
	recomputeReview(s)
}

// recomputeStep derives id's completed flag from the current data
func recomputeStep(s *State, id types.StepID) {
	def, ok := Definition(id)
	if !ok || def.Completed == nil {
		return
	}
	if i := s.stepIndex(id); i >= 0 {
		s.Steps[i].Completed = def.Completed(s)
	}
}

// recomputeReview sets Review to whether every other required step is done
func recomputeReview(s *State) {
	if i := s.stepIndex(types.StepReview); i >= 0 {
		s.Steps[i].Completed = requiredStepsDone(s, types.StepReview)
	}
}

// requiredStepsDone reports whether every required step other than skip is completed
func requiredStepsDone(s *State, skip types.StepID) bool {
	for _, step := range s.Steps {
		if step.ID == skip || !step.Required {
			continue
		}
		if !step.Completed {
			return false
		}
	}
	return true
}

// reconcileSteps makes a hydrated step list match the known definitions:
// known steps take their metadata from the table, unknown ones are kept
// as-is, and missing known steps are restored in definition order.
func reconcileSteps(in []types.BuilderStep) []types.BuilderStep {
	byID := make(map[types.StepID]types.BuilderStep, len(in))
	for _, step := range in {
		byID[step.ID] = step
	}

	out := make([]types.BuilderStep, 0, len(stepDefinitions)+len(in))
	for _, def := range DefaultSteps() {
		if prev, ok := byID[def.ID]; ok {
			def.Enabled = prev.Enabled
			def.Completed = prev.Completed
		}
		out = append(out, def)
	}
	for _, step := range in {
		if _, known := Definition(step.ID); !known {
			out = append(out, step)
		}
	}
	return out
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}
