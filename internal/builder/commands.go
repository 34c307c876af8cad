package builder

import "github.com/jonathan/resume-builder/internal/types"

// Command is a builder mutation. The set of commands is closed: only the
// types declared in this file implement it.
type Command interface {
	// Name identifies the command in logs and progress output
	Name() string
	command()
}

// Navigation

type NextStep struct{}
type PreviousStep struct{}

// GoToStep moves the cursor to Index, clamped to the step range
type GoToStep struct{ Index int }

type TogglePreview struct{}

// Template and singular fields

// SelectTemplate sets the chosen template. A nil Template clears it.
type SelectTemplate struct{ Template *types.Template }

type UpdatePersonalInfo struct{ Info types.PersonalInfo }
type UpdateSummary struct{ Summary string }

// Collections. Add commands with an empty ID are rejected by Apply; the
// Controller assigns IDs before dispatch.

type AddExperience struct{ Entry types.WorkExperience }
type UpdateExperience struct{ Entry types.WorkExperience }
type RemoveExperience struct{ ID string }
type MoveExperience struct {
	ID string
	To int
}

type AddEducation struct{ Entry types.Education }
type UpdateEducation struct{ Entry types.Education }
type RemoveEducation struct{ ID string }
type MoveEducation struct {
	ID string
	To int
}

type AddProject struct{ Entry types.Project }
type UpdateProject struct{ Entry types.Project }
type RemoveProject struct{ ID string }
type MoveProject struct {
	ID string
	To int
}

type AddCertification struct{ Entry types.Certification }
type UpdateCertification struct{ Entry types.Certification }
type RemoveCertification struct{ ID string }
type MoveCertification struct {
	ID string
	To int
}

type AddLanguage struct{ Entry types.Language }
type UpdateLanguage struct{ Entry types.Language }
type RemoveLanguage struct{ ID string }
type MoveLanguage struct {
	ID string
	To int
}

// Skills are plain names; duplicates are ignored case-insensitively.

type AddSkill struct{ Name string }
type RemoveSkill struct{ Name string }
type SetSkills struct{ Names []string }
type MoveSkill struct{ From, To int }

// Step bookkeeping

// MarkStepCompleted forces a step's completed flag. The flag holds until a
// content change to that step's data recomputes it. Review cannot be marked.
type MarkStepCompleted struct{ StepID types.StepID }

type SetStepEnabled struct {
	StepID  types.StepID
	Enabled bool
}

// Reset returns to the initial empty state
type Reset struct{}

// Hydrate replaces the state wholesale, typically from a stored snapshot
type Hydrate struct{ State State }

func (NextStep) Name() string            { return "next-step" }
func (PreviousStep) Name() string        { return "previous-step" }
func (GoToStep) Name() string            { return "go-to-step" }
func (TogglePreview) Name() string       { return "toggle-preview" }
func (SelectTemplate) Name() string      { return "select-template" }
func (UpdatePersonalInfo) Name() string  { return "update-personal-info" }
func (UpdateSummary) Name() string       { return "update-summary" }
func (AddExperience) Name() string       { return "add-experience" }
func (UpdateExperience) Name() string    { return "update-experience" }
func (RemoveExperience) Name() string    { return "remove-experience" }
func (MoveExperience) Name() string      { return "move-experience" }
func (AddEducation) Name() string        { return "add-education" }
func (UpdateEducation) Name() string     { return "update-education" }
func (RemoveEducation) Name() string     { return "remove-education" }
func (MoveEducation) Name() string       { return "move-education" }
func (AddProject) Name() string          { return "add-project" }
func (UpdateProject) Name() string       { return "update-project" }
func (RemoveProject) Name() string       { return "remove-project" }
func (MoveProject) Name() string         { return "move-project" }
func (AddCertification) Name() string    { return "add-certification" }
func (UpdateCertification) Name() string { return "update-certification" }
func (RemoveCertification) Name() string { return "remove-certification" }
func (MoveCertification) Name() string   { return "move-certification" }
func (AddLanguage) Name() string         { return "add-language" }
func (UpdateLanguage) Name() string      { return "update-language" }
func (RemoveLanguage) Name() string      { return "remove-language" }
func (MoveLanguage) Name() string        { return "move-language" }
func (AddSkill) Name() string            { return "add-skill" }
func (RemoveSkill) Name() string         { return "remove-skill" }
func (SetSkills) Name() string           { return "set-skills" }
func (MoveSkill) Name() string           { return "move-skill" }
func (MarkStepCompleted) Name() string   { return "mark-step-completed" }
func (SetStepEnabled) Name() string      { return "set-step-enabled" }
func (Reset) Name() string               { return "reset" }
func (Hydrate) Name() string             { return "hydrate" }

func (NextStep) command()            {}
func (PreviousStep) command()        {}
func (GoToStep) command()            {}
func (TogglePreview) command()       {}
func (SelectTemplate) command()      {}
func (UpdatePersonalInfo) command()  {}
func (UpdateSummary) command()       {}
func (AddExperience) command()       {}
func (UpdateExperience) command()    {}
func (RemoveExperience) command()    {}
func (MoveExperience) command()      {}
func (AddEducation) command()        {}
func (UpdateEducation) command()     {}
func (RemoveEducation) command()     {}
func (MoveEducation) command()       {}
func (AddProject) command()          {}
func (UpdateProject) command()       {}
func (RemoveProject) command()       {}
func (MoveProject) command()         {}
func (AddCertification) command()    {}
func (UpdateCertification) command() {}
func (RemoveCertification) command() {}
func (MoveCertification) command()   {}
func (AddLanguage) command()         {}
func (UpdateLanguage) command()      {}
func (RemoveLanguage) command()      {}
func (MoveLanguage) command()        {}
func (AddSkill) command()            {}
func (RemoveSkill) command()         {}
func (SetSkills) command()           {}
func (MoveSkill) command()           {}
func (MarkStepCompleted) command()   {}
func (SetStepEnabled) command()      {}
func (Reset) command()               {}
func (Hydrate) command()             {}

// contentStep returns the step whose data cmd edits. Only that step's
// completion is recomputed after cmd, so overrides on other steps hold.
func contentStep(cmd Command) (types.StepID, bool) {
	switch cmd.(type) {
	case SelectTemplate:
		return types.StepTemplate, true
	case UpdatePersonalInfo:
		return types.StepPersonalInfo, true
	case UpdateSummary:
		return types.StepSummary, true
	case AddExperience, UpdateExperience, RemoveExperience, MoveExperience:
		return types.StepExperience, true
	case AddEducation, UpdateEducation, RemoveEducation, MoveEducation:
		return types.StepEducation, true
	case AddProject, UpdateProject, RemoveProject, MoveProject:
		return types.StepProjects, true
	case AddCertification, UpdateCertification, RemoveCertification, MoveCertification:
		return types.StepCertifications, true
	case AddLanguage, UpdateLanguage, RemoveLanguage, MoveLanguage:
		return types.StepLanguages, true
	case AddSkill, RemoveSkill, SetSkills, MoveSkill:
		return types.StepSkills, true
	}
	return "", false
}
