package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// SectionKind identifies a body section
type SectionKind string

// Section kinds in canonical order
const (
	SectionSummary        SectionKind = "summary"
	SectionExperience     SectionKind = "experience"
	SectionEducation      SectionKind = "education"
	SectionSkills         SectionKind = "skills"
	SectionCertifications SectionKind = "certifications"
	SectionProjects       SectionKind = "projects"
)

// Header is the name and contact block
type Header struct {
	Name    string
	Contact []string
}

// Entry is one dated item in a section, e.g. a position or a degree
type Entry struct {
	Title    string
	Subtitle string
	Dates    string
	Text     string
	Bullets  []string
}

// Section is a titled block of the body. Lines holds free text for sections
// without entries (summary and skills).
type Section struct {
	Kind    SectionKind
	Title   string
	Lines   []string
	Entries []Entry
}

// Sections is the backend-neutral content of a resume
type Sections struct {
	Header Header
	Body   []Section
}

// Titles returns the body section titles in order
func (s Sections) Titles() []string {
	titles := make([]string, 0, len(s.Body))
	for _, sec := range s.Body {
		titles = append(titles, sec.Title)
	}
	return titles
}

// Preflight reports the required fields that are empty
func Preflight(data types.ResumeData) error {
	var missing []string
	if strings.TrimSpace(data.PersonalInfo.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(data.PersonalInfo.Email) == "" {
		missing = append(missing, "email")
	}
	if len(data.Experience) == 0 {
		missing = append(missing, "experience")
	}
	if len(data.Education) == 0 {
		missing = append(missing, "education")
	}
	if len(missing) > 0 {
		return &MissingFieldError{Fields: missing}
	}
	return nil
}

// BuildSections lays resume content out in the canonical order: summary,
// experience, education, skills, then certifications and projects only
// when they have entries.
func BuildSections(data types.ResumeData) Sections {
	out := Sections{Header: buildHeader(data.PersonalInfo)}

	summary := Section{Kind: SectionSummary, Title: "Professional Summary"}
	if text := Clean(data.Summary); text != "" {
		summary.Lines = []string{text}
	}
	out.Body = append(out.Body, summary)

	exp := Section{Kind: SectionExperience, Title: "Experience"}
	for _, e := range data.Experience {
		exp.Entries = append(exp.Entries, Entry{
			Title:    Clean(e.Position),
			Subtitle: joinNonEmpty(", ", Clean(e.Company), Clean(e.Location)),
			Dates:    dateRange(e.StartDate, e.EndDate, e.Current),
			Bullets:  append(cleanAll(e.Description), cleanAll(e.Achievements)...),
		})
	}
	out.Body = append(out.Body, exp)

	edu := Section{Kind: SectionEducation, Title: "Education"}
	for _, e := range data.Education {
		entry := Entry{
			Title:    degreeTitle(Clean(e.Degree), Clean(e.Field)),
			Subtitle: Clean(e.Institution),
			Dates:    Clean(e.GraduationDate),
		}
		if gpa := Clean(e.GPA); gpa != "" {
			entry.Bullets = append(entry.Bullets, "GPA: "+gpa)
		}
		if honors := Clean(e.Honors); honors != "" {
			entry.Bullets = append(entry.Bullets, honors)
		}
		if courses := cleanAll(e.RelevantCoursework); len(courses) > 0 {
			entry.Bullets = append(entry.Bullets, "Relevant coursework: "+strings.Join(courses, ", "))
		}
		entry.Bullets = append(entry.Bullets, cleanAll(e.Activities)...)
		edu.Entries = append(edu.Entries, entry)
	}
	out.Body = append(out.Body, edu)

	out.Body = append(out.Body, Section{Kind: SectionSkills, Title: "Skills", Lines: skillLines(data)})

	if len(data.Certifications) > 0 {
		certs := Section{Kind: SectionCertifications, Title: "Certifications"}
		for _, c := range data.Certifications {
			entry := Entry{
				Title:    Clean(c.Name),
				Subtitle: Clean(c.Issuer),
				Dates:    Clean(c.Date),
			}
			if id := Clean(c.CredentialID); id != "" {
				entry.Text = "Credential ID: " + id
			}
			certs.Entries = append(certs.Entries, entry)
		}
		out.Body = append(out.Body, certs)
	}

	if len(data.Projects) > 0 {
		projects := Section{Kind: SectionProjects, Title: "Projects"}
		for _, p := range data.Projects {
			projects.Entries = append(projects.Entries, Entry{
				Title:    Clean(p.Name),
				Subtitle: strings.Join(cleanAll(p.Technologies), ", "),
				Dates:    dateRange(p.StartDate, p.EndDate, false),
				Text:     joinNonEmpty(" ", Clean(p.Description), Clean(firstNonEmpty(p.URL, p.GitHub))),
				Bullets:  cleanAll(p.Highlights),
			})
		}
		out.Body = append(out.Body, projects)
	}

	return out
}

func buildHeader(p types.PersonalInfo) Header {
	contact := cleanAll([]string{p.Email, p.Phone, p.Location, p.LinkedIn, p.Website, p.GitHub, p.Portfolio})
	return Header{Name: Clean(p.Name), Contact: contact}
}

// skillLines renders skills as one comma-separated line, followed by a
// languages line when any are listed.
func skillLines(data types.ResumeData) []string {
	var lines []string
	if skills := cleanAll(data.Skills); len(skills) > 0 {
		lines = append(lines, strings.Join(skills, ", "))
	}

	var langs []string
	for _, l := range data.Languages {
		name := Clean(l.Language)
		if name == "" {
			continue
		}
		if l.Proficiency != "" {
			name = fmt.Sprintf("%s (%s)", name, l.Proficiency)
		}
		langs = append(langs, name)
	}
	if len(langs) > 0 {
		lines = append(lines, "Languages: "+strings.Join(langs, ", "))
	}
	return lines
}

func dateRange(start, end string, current bool) string {
	start, end = Clean(start), Clean(end)
	if current {
		end = "Present"
	}
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	}
	return start + " - " + end
}

func degreeTitle(degree, field string) string {
	switch {
	case degree == "":
		return field
	case field == "":
		return degree
	}
	return degree + " in " + field
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
