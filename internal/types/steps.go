package types

// StepID identifies a builder step
type StepID string

// Builder steps in wizard order
const (
	StepTemplate       StepID = "template"
	StepPersonalInfo   StepID = "personal-info"
	StepSummary        StepID = "summary"
	StepExperience     StepID = "experience"
	StepEducation      StepID = "education"
	StepSkills         StepID = "skills"
	StepProjects       StepID = "projects"
	StepCertifications StepID = "certifications"
	StepLanguages      StepID = "languages"
	StepReview         StepID = "review"
)

// BuilderStep is one stage of the guided wizard. Completed is derived from
// the resume data and must not be edited directly.
type BuilderStep struct {
	ID          StepID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Completed   bool   `json:"completed"`
	Required    bool   `json:"required"`
	Enabled     bool   `json:"enabled"`
}
