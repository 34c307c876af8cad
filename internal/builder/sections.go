package builder

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Section names a collection of resume entries addressable by ID
type Section string

// Entry collections
const (
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionProjects       Section = "projects"
	SectionCertifications Section = "certifications"
	SectionLanguages      Section = "languages"
)

// Sections lists the entry collections in form order
var Sections = []Section{
	SectionExperience,
	SectionEducation,
	SectionProjects,
	SectionCertifications,
	SectionLanguages,
}

// ParseSection accepts the collection name in singular or plural form
func ParseSection(name string) (Section, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "experience", "experiences":
		return SectionExperience, nil
	case "education", "educations":
		return SectionEducation, nil
	case "project", "projects":
		return SectionProjects, nil
	case "certification", "certifications":
		return SectionCertifications, nil
	case "language", "languages":
		return SectionLanguages, nil
	}
	return "", fmt.Errorf("unknown section %q", name)
}

// DecodeEntry parses a JSON entry for section and returns the add command
// (update=false) or update command (update=true) carrying it. id, when not
// empty, overrides the ID in the body.
func DecodeEntry(section Section, body []byte, id string, update bool) (Command, error) {
	switch section {
	case SectionExperience:
		var e types.WorkExperience
		if err := json.Unmarshal(body, &e); err != nil {
			return nil, fmt.Errorf("invalid experience entry: %w", err)
		}
		e.ID = pick(id, e.ID)
		if update {
			return UpdateExperience{Entry: e}, nil
		}
		return AddExperience{Entry: e}, nil
	case SectionEducation:
		var e types.Education
		if err := json.Unmarshal(body, &e); err != nil {
			return nil, fmt.Errorf("invalid education entry: %w", err)
		}
		e.ID = pick(id, e.ID)
		if update {
			return UpdateEducation{Entry: e}, nil
		}
		return AddEducation{Entry: e}, nil
	case SectionProjects:
		var p types.Project
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("invalid project entry: %w", err)
		}
		p.ID = pick(id, p.ID)
		if update {
			return UpdateProject{Entry: p}, nil
		}
		return AddProject{Entry: p}, nil
	case SectionCertifications:
		var c types.Certification
		if err := json.Unmarshal(body, &c); err != nil {
			return nil, fmt.Errorf("invalid certification entry: %w", err)
		}
		c.ID = pick(id, c.ID)
		if update {
			return UpdateCertification{Entry: c}, nil
		}
		return AddCertification{Entry: c}, nil
	case SectionLanguages:
		var l types.Language
		if err := json.Unmarshal(body, &l); err != nil {
			return nil, fmt.Errorf("invalid language entry: %w", err)
		}
		if l.Proficiency != "" && !l.Proficiency.Valid() {
			return nil, fmt.Errorf("invalid proficiency %q", l.Proficiency)
		}
		l.ID = pick(id, l.ID)
		if update {
			return UpdateLanguage{Entry: l}, nil
		}
		return AddLanguage{Entry: l}, nil
	}
	return nil, fmt.Errorf("unknown section %q", section)
}

// RemoveEntry returns the remove command for id in section
func RemoveEntry(section Section, id string) (Command, error) {
	switch section {
	case SectionExperience:
		return RemoveExperience{ID: id}, nil
	case SectionEducation:
		return RemoveEducation{ID: id}, nil
	case SectionProjects:
		return RemoveProject{ID: id}, nil
	case SectionCertifications:
		return RemoveCertification{ID: id}, nil
	case SectionLanguages:
		return RemoveLanguage{ID: id}, nil
	}
	return nil, fmt.Errorf("unknown section %q", section)
}

// MoveEntry returns the command moving id in section to position to
func MoveEntry(section Section, id string, to int) (Command, error) {
	switch section {
	case SectionExperience:
		return MoveExperience{ID: id, To: to}, nil
	case SectionEducation:
		return MoveEducation{ID: id, To: to}, nil
	case SectionProjects:
		return MoveProject{ID: id, To: to}, nil
	case SectionCertifications:
		return MoveCertification{ID: id, To: to}, nil
	case SectionLanguages:
		return MoveLanguage{ID: id, To: to}, nil
	}
	return nil, fmt.Errorf("unknown section %q", section)
}

// EntryIDs lists the IDs in section, in order
func (s State) EntryIDs(section Section) []string {
	var ids []string
	d := s.ResumeData
	switch section {
	case SectionExperience:
		for _, e := range d.Experience {
			ids = append(ids, e.ID)
		}
	case SectionEducation:
		for _, e := range d.Education {
			ids = append(ids, e.ID)
		}
	case SectionProjects:
		for _, p := range d.Projects {
			ids = append(ids, p.ID)
		}
	case SectionCertifications:
		for _, c := range d.Certifications {
			ids = append(ids, c.ID)
		}
	case SectionLanguages:
		for _, l := range d.Languages {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

func pick(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}
