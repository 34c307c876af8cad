package builder

import (
	"reflect"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

func experienceID(e types.WorkExperience) string { return e.ID }
func educationID(e types.Education) string       { return e.ID }
func projectID(p types.Project) string           { return p.ID }
func certificationID(c types.Certification) string {
	return c.ID
}
func languageID(l types.Language) string { return l.ID }

// Apply is the builder's transition function. It never mutates s, never
// panics, and reports changed=false for commands that have no effect.
// Every changed transition except Reset and Hydrate marks the state dirty.
func Apply(s State, cmd Command) (State, bool) {
	next := s.Clone()
	changed := apply(&next, cmd)
	if !changed {
		return s, false
	}

	switch cmd.(type) {
	case Reset, Hydrate:
		return next, true
	}
	if id, ok := contentStep(cmd); ok {
		recomputeStep(&next, id)
	}
	recomputeReview(&next)
	next.IsDirty = true
	return next, true
}

// ApplyAll folds cmds over s and reports whether any of them changed it
func ApplyAll(s State, cmds ...Command) (State, bool) {
	changedAny := false
	for _, cmd := range cmds {
		var changed bool
		s, changed = Apply(s, cmd)
		changedAny = changedAny || changed
	}
	return s, changedAny
}

func apply(s *State, cmd Command) bool {
	data := &s.ResumeData

	switch c := cmd.(type) {
	case NextStep:
		return moveCursor(s, +1)
	case PreviousStep:
		return moveCursor(s, -1)
	case GoToStep:
		idx := clamp(c.Index, 0, len(s.Steps)-1)
		if idx == s.CurrentStepIndex {
			return false
		}
		s.CurrentStepIndex = idx
		return true
	case TogglePreview:
		s.IsPreviewMode = !s.IsPreviewMode
		return true

	case SelectTemplate:
		if sameTemplate(s.SelectedTemplate, c.Template) {
			return false
		}
		s.SelectedTemplate = c.Template.Clone()
		return true
	case UpdatePersonalInfo:
		if data.PersonalInfo == c.Info {
			return false
		}
		data.PersonalInfo = c.Info
		return true
	case UpdateSummary:
		if data.Summary == c.Summary {
			return false
		}
		data.Summary = c.Summary
		return true

	case AddExperience:
		return add(&data.Experience, normalizeExperience(c.Entry), experienceID)
	case UpdateExperience:
		return setIfDifferent(&data.Experience, normalizeExperience(c.Entry), experienceID)
	case RemoveExperience:
		return remove(&data.Experience, c.ID, experienceID)
	case MoveExperience:
		return move(&data.Experience, c.ID, c.To, experienceID)

	case AddEducation:
		return add(&data.Education, normalizeEducation(c.Entry), educationID)
	case UpdateEducation:
		return setIfDifferent(&data.Education, normalizeEducation(c.Entry), educationID)
	case RemoveEducation:
		return remove(&data.Education, c.ID, educationID)
	case MoveEducation:
		return move(&data.Education, c.ID, c.To, educationID)

	case AddProject:
		return add(&data.Projects, normalizeProject(c.Entry), projectID)
	case UpdateProject:
		return setIfDifferent(&data.Projects, normalizeProject(c.Entry), projectID)
	case RemoveProject:
		return remove(&data.Projects, c.ID, projectID)
	case MoveProject:
		return move(&data.Projects, c.ID, c.To, projectID)

	case AddCertification:
		return add(&data.Certifications, c.Entry, certificationID)
	case UpdateCertification:
		return setIfDifferent(&data.Certifications, c.Entry, certificationID)
	case RemoveCertification:
		return remove(&data.Certifications, c.ID, certificationID)
	case MoveCertification:
		return move(&data.Certifications, c.ID, c.To, certificationID)

	case AddLanguage:
		return add(&data.Languages, c.Entry, languageID)
	case UpdateLanguage:
		return setIfDifferent(&data.Languages, c.Entry, languageID)
	case RemoveLanguage:
		return remove(&data.Languages, c.ID, languageID)
	case MoveLanguage:
		return move(&data.Languages, c.ID, c.To, languageID)

	case AddSkill:
		name := strings.TrimSpace(c.Name)
		if name == "" || skillIndex(data.Skills, name) >= 0 {
			return false
		}
		data.Skills = append(data.Skills, name)
		return true
	case RemoveSkill:
		i := skillIndex(data.Skills, strings.TrimSpace(c.Name))
		if i < 0 {
			return false
		}
		data.Skills = append(data.Skills[:i], data.Skills[i+1:]...)
		return true
	case SetSkills:
		skills := cleanSkills(c.Names)
		if reflect.DeepEqual(skills, data.Skills) {
			return false
		}
		data.Skills = skills
		return true
	case MoveSkill:
		var changed bool
		data.Skills, changed = moveIndex(data.Skills, c.From, c.To)
		return changed

	case MarkStepCompleted:
		i := s.stepIndex(c.StepID)
		if i < 0 || c.StepID == types.StepReview || s.Steps[i].Completed {
			return false
		}
		s.Steps[i].Completed = true
		return true
	case SetStepEnabled:
		i := s.stepIndex(c.StepID)
		if i < 0 || s.Steps[i].Enabled == c.Enabled {
			return false
		}
		s.Steps[i].Enabled = c.Enabled
		return true

	case Reset:
		*s = NewState()
		return true
	case Hydrate:
		*s = hydrate(c.State)
		return true
	}
	return false
}

// moveCursor steps the cursor by dir, skipping disabled steps. The cursor
// stays put when no enabled step exists in that direction.
func moveCursor(s *State, dir int) bool {
	for i := s.CurrentStepIndex + dir; i >= 0 && i < len(s.Steps); i += dir {
		if s.Steps[i].Enabled {
			s.CurrentStepIndex = i
			return true
		}
	}
	return false
}

// hydrate normalizes an externally supplied state so every invariant holds
func hydrate(in State) State {
	out := in.Clone()
	out.ResumeData.Normalize()
	out.ResumeData.Skills = cleanSkills(out.ResumeData.Skills)
	out.Steps = reconcileSteps(out.Steps)
	out.CurrentStepIndex = clamp(out.CurrentStepIndex, 0, len(out.Steps)-1)
	recomputeCompletion(&out)
	return out
}

func add[T any](list *[]T, item T, idOf func(T) string) bool {
	var changed bool
	*list, changed = appendUnique(*list, item, idOf)
	return changed
}

func setIfDifferent[T any](list *[]T, item T, idOf func(T) string) bool {
	i := indexByID(*list, idOf(item), idOf)
	if i < 0 || reflect.DeepEqual((*list)[i], item) {
		return false
	}
	*list, _ = replaceByID(*list, item, idOf)
	return true
}

func remove[T any](list *[]T, id string, idOf func(T) string) bool {
	var changed bool
	*list, changed = removeByID(*list, id, idOf)
	return changed
}

func move[T any](list *[]T, id string, to int, idOf func(T) string) bool {
	var changed bool
	*list, changed = moveByID(*list, id, to, idOf)
	return changed
}

func skillIndex(skills []string, name string) int {
	for i, s := range skills {
		if strings.EqualFold(s, name) {
			return i
		}
	}
	return -1
}

func cleanSkills(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || skillIndex(out, n) >= 0 {
			continue
		}
		out = append(out, n)
	}
	return out
}

func sameTemplate(a, b *types.Template) bool {
	if a == nil || b == nil {
		return a == b
	}
	return reflect.DeepEqual(*a, *b)
}

func normalizeExperience(e types.WorkExperience) types.WorkExperience {
	e.Description = nonNilStrings(e.Description)
	e.Achievements = nonNilStrings(e.Achievements)
	return e
}

func normalizeEducation(e types.Education) types.Education {
	e.RelevantCoursework = nonNilStrings(e.RelevantCoursework)
	e.Activities = nonNilStrings(e.Activities)
	return e
}

func normalizeProject(p types.Project) types.Project {
	p.Technologies = nonNilStrings(p.Technologies)
	p.Highlights = nonNilStrings(p.Highlights)
	return p
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return append([]string{}, in...)
}
