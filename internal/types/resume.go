// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PersonalInfo holds the contact block printed at the top of the resume
type PersonalInfo struct {
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	Location  string `json:"location" yaml:"location"`
	LinkedIn  string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Website   string `json:"website,omitempty" yaml:"website,omitempty"`
	GitHub    string `json:"github,omitempty" yaml:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty" yaml:"portfolio,omitempty"`
}

// WorkExperience is a single position held by the candidate
type WorkExperience struct {
	ID           string   `json:"id" yaml:"id,omitempty"`
	Company      string   `json:"company" yaml:"company"`
	Position     string   `json:"position" yaml:"position"`
	Location     string   `json:"location" yaml:"location,omitempty"`
	StartDate    string   `json:"startDate" yaml:"startDate"`
	EndDate      string   `json:"endDate" yaml:"endDate,omitempty"`
	Current      bool     `json:"current" yaml:"current,omitempty"`
	Description  []string `json:"description" yaml:"description,omitempty"`
	Achievements []string `json:"achievements" yaml:"achievements,omitempty"`
}

// Education is a degree or program entry
type Education struct {
	ID                 string   `json:"id" yaml:"id,omitempty"`
	Institution        string   `json:"institution" yaml:"institution"`
	Degree             string   `json:"degree" yaml:"degree"`
	Field              string   `json:"field" yaml:"field"`
	GraduationDate     string   `json:"graduationDate" yaml:"graduationDate,omitempty"`
	GPA                string   `json:"gpa,omitempty" yaml:"gpa,omitempty"`
	Honors             string   `json:"honors,omitempty" yaml:"honors,omitempty"`
	RelevantCoursework []string `json:"relevantCoursework" yaml:"relevantCoursework,omitempty"`
	Activities         []string `json:"activities" yaml:"activities,omitempty"`
}

// SkillItem is the detailed form of a skill. The builder itself only keeps
// skill names; items are flattened on import.
type SkillItem struct {
	ID       string `json:"id" yaml:"id,omitempty"`
	Name     string `json:"name" yaml:"name"`
	Level    string `json:"level,omitempty" yaml:"level,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// Project is a side project or portfolio piece
type Project struct {
	ID           string   `json:"id" yaml:"id,omitempty"`
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description,omitempty"`
	Technologies []string `json:"technologies" yaml:"technologies,omitempty"`
	URL          string   `json:"url,omitempty" yaml:"url,omitempty"`
	GitHub       string   `json:"github,omitempty" yaml:"github,omitempty"`
	StartDate    string   `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Highlights   []string `json:"highlights" yaml:"highlights,omitempty"`
}

// Certification is a professional certificate
type Certification struct {
	ID             string `json:"id" yaml:"id,omitempty"`
	Name           string `json:"name" yaml:"name"`
	Issuer         string `json:"issuer" yaml:"issuer"`
	Date           string `json:"date" yaml:"date,omitempty"`
	ExpirationDate string `json:"expirationDate,omitempty" yaml:"expirationDate,omitempty"`
	CredentialID   string `json:"credentialId,omitempty" yaml:"credentialId,omitempty"`
	URL            string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Proficiency is the spoken-language level of a Language entry
type Proficiency string

// Proficiency levels
const (
	ProficiencyBasic          Proficiency = "Basic"
	ProficiencyConversational Proficiency = "Conversational"
	ProficiencyFluent         Proficiency = "Fluent"
	ProficiencyNative         Proficiency = "Native"
)

// Valid reports whether p is one of the known proficiency levels
func (p Proficiency) Valid() bool {
	switch p {
	case ProficiencyBasic, ProficiencyConversational, ProficiencyFluent, ProficiencyNative:
		return true
	}
	return false
}

// Language is a spoken language entry
type Language struct {
	ID          string      `json:"id" yaml:"id,omitempty"`
	Language    string      `json:"language" yaml:"language"`
	Proficiency Proficiency `json:"proficiency" yaml:"proficiency"`
}

// ResumeData is the full structured resume owned by the builder
type ResumeData struct {
	PersonalInfo   PersonalInfo     `json:"personalInfo" yaml:"personalInfo"`
	Summary        string           `json:"summary" yaml:"summary"`
	Experience     []WorkExperience `json:"experience" yaml:"experience"`
	Education      []Education      `json:"education" yaml:"education"`
	Skills         []string         `json:"skills" yaml:"skills"`
	Projects       []Project        `json:"projects" yaml:"projects"`
	Certifications []Certification  `json:"certifications" yaml:"certifications"`
	Languages      []Language       `json:"languages" yaml:"languages"`
}

// NewResumeData returns an empty resume with non-nil collections so that
// serialized snapshots always carry arrays rather than nulls.
func NewResumeData() ResumeData {
	return ResumeData{
		Experience:     []WorkExperience{},
		Education:      []Education{},
		Skills:         []string{},
		Projects:       []Project{},
		Certifications: []Certification{},
		Languages:      []Language{},
	}
}

// Clone returns a deep copy of the resume
func (r ResumeData) Clone() ResumeData {
	out := r
	out.Experience = make([]WorkExperience, len(r.Experience))
	for i, e := range r.Experience {
		e.Description = cloneStrings(e.Description)
		e.Achievements = cloneStrings(e.Achievements)
		out.Experience[i] = e
	}
	out.Education = make([]Education, len(r.Education))
	for i, e := range r.Education {
		e.RelevantCoursework = cloneStrings(e.RelevantCoursework)
		e.Activities = cloneStrings(e.Activities)
		out.Education[i] = e
	}
	out.Skills = cloneStrings(r.Skills)
	out.Projects = make([]Project, len(r.Projects))
	for i, p := range r.Projects {
		p.Technologies = cloneStrings(p.Technologies)
		p.Highlights = cloneStrings(p.Highlights)
		out.Projects[i] = p
	}
	out.Certifications = append([]Certification{}, r.Certifications...)
	out.Languages = append([]Language{}, r.Languages...)
	return out
}

// Normalize replaces nil collections with empty ones
func (r *ResumeData) Normalize() {
	if r.Experience == nil {
		r.Experience = []WorkExperience{}
	}
	for i := range r.Experience {
		r.Experience[i].Description = nonNil(r.Experience[i].Description)
		r.Experience[i].Achievements = nonNil(r.Experience[i].Achievements)
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	for i := range r.Education {
		r.Education[i].RelevantCoursework = nonNil(r.Education[i].RelevantCoursework)
		r.Education[i].Activities = nonNil(r.Education[i].Activities)
	}
	r.Skills = nonNil(r.Skills)
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	for i := range r.Projects {
		r.Projects[i].Technologies = nonNil(r.Projects[i].Technologies)
		r.Projects[i].Highlights = nonNil(r.Projects[i].Highlights)
	}
	if r.Certifications == nil {
		r.Certifications = []Certification{}
	}
	if r.Languages == nil {
		r.Languages = []Language{}
	}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
