package validation

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// ActionVerbs is the fixed set checked by the ATS heuristic
var ActionVerbs = []string{
	"achieved", "managed", "led", "developed", "created", "improved", "increased",
	"reduced", "implemented", "designed", "coordinated", "supervised", "analyzed",
	"optimized", "streamlined",
}

// ContainsActionVerb reports whether text contains any action verb, ignoring case
func ContainsActionVerb(text string) bool {
	lower := strings.ToLower(text)
	for _, verb := range ActionVerbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return false
}

// ResumeText concatenates every textual field of the resume, space separated
func ResumeText(data types.ResumeData) string {
	var parts []string
	add := func(s ...string) {
		for _, v := range s {
			if v != "" {
				parts = append(parts, v)
			}
		}
	}

	p := data.PersonalInfo
	add(p.Name, p.Email, p.Phone, p.Location, p.LinkedIn, p.Website, p.GitHub, p.Portfolio)
	add(data.Summary)
	for _, e := range data.Experience {
		add(e.Company, e.Position, e.Location, e.StartDate, e.EndDate)
		add(e.Description...)
		add(e.Achievements...)
	}
	for _, e := range data.Education {
		add(e.Institution, e.Degree, e.Field, e.GraduationDate, e.GPA, e.Honors)
		add(e.RelevantCoursework...)
		add(e.Activities...)
	}
	add(data.Skills...)
	for _, p := range data.Projects {
		add(p.Name, p.Description, p.URL, p.GitHub, p.StartDate, p.EndDate)
		add(p.Technologies...)
		add(p.Highlights...)
	}
	for _, c := range data.Certifications {
		add(c.Name, c.Issuer, c.Date, c.ExpirationDate, c.CredentialID, c.URL)
	}
	for _, l := range data.Languages {
		add(l.Language, string(l.Proficiency))
	}
	return strings.Join(parts, " ")
}
