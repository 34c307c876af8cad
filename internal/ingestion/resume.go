// Package ingestion imports resumes written outside the builder. YAML and
// JSON documents are checked against the embedded resume schema, cleaned up
// and turned into builder commands.
package ingestion

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// Document formats accepted by Parse
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither YAML nor JSON
	ErrUnsupportedFormat = errors.New("unsupported resume format")
	// ErrEmptyDocument is returned when the file holds no document
	ErrEmptyDocument = errors.New("resume document is empty")
)

// Document is an imported resume plus the optional template it asks for
type Document struct {
	Data       types.ResumeData
	TemplateID string
	Metadata   *Metadata
}

// rawDocument mirrors the import format. Skills are either plain names or
// SkillItem objects.
type rawDocument struct {
	TemplateID     string                 `json:"templateId"`
	PersonalInfo   types.PersonalInfo     `json:"personalInfo"`
	Summary        string                 `json:"summary"`
	Experience     []types.WorkExperience `json:"experience"`
	Education      []types.Education      `json:"education"`
	Skills         []skillValue           `json:"skills"`
	Projects       []types.Project        `json:"projects"`
	Certifications []types.Certification  `json:"certifications"`
	Languages      []types.Language       `json:"languages"`
}

type skillValue struct {
	types.SkillItem
}

func (s *skillValue) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		s.Name = name
		return nil
	}
	return json.Unmarshal(b, &s.SkillItem)
}

// LoadFile reads a resume from path. The format follows the extension:
// .yaml and .yml are YAML, everything else is JSON.
func LoadFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(content, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	doc.Metadata.Source = path
	return doc, nil
}

// FormatFor picks the document format from a file extension
func FormatFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", "":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

// Parse decodes, validates and cleans a resume document
func Parse(content []byte, format string) (*Document, error) {
	if len(strings.TrimSpace(string(content))) == 0 {
		return nil, ErrEmptyDocument
	}

	jsonDoc := content
	switch format {
	case FormatJSON:
	case FormatYAML:
		var tree any
		if err := yaml.Unmarshal(content, &tree); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		if tree == nil {
			return nil, ErrEmptyDocument
		}
		converted, err := json.Marshal(tree)
		if err != nil {
			return nil, fmt.Errorf("YAML document cannot be represented as JSON: %w", err)
		}
		jsonDoc = converted
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	if err := schemas.ValidateResume(jsonDoc); err != nil {
		return nil, err
	}

	var raw rawDocument
	if err := json.Unmarshal(jsonDoc, &raw); err != nil {
		return nil, fmt.Errorf("invalid resume document: %w", err)
	}

	doc := &Document{
		Data:       raw.toResumeData(),
		TemplateID: strings.TrimSpace(raw.TemplateID),
		Metadata:   NewMetadata(content, "", format),
	}
	doc.Metadata.Entries = countEntries(doc.Data)
	return doc, nil
}

func (r rawDocument) toResumeData() types.ResumeData {
	data := types.ResumeData{
		PersonalInfo:   trimPersonalInfo(r.PersonalInfo),
		Summary:        CleanText(r.Summary),
		Experience:     r.Experience,
		Education:      r.Education,
		Projects:       r.Projects,
		Certifications: r.Certifications,
		Languages:      r.Languages,
	}
	for i := range data.Experience {
		data.Experience[i].Description = cleanBullets(data.Experience[i].Description)
		data.Experience[i].Achievements = cleanBullets(data.Experience[i].Achievements)
	}
	for i := range data.Projects {
		data.Projects[i].Highlights = cleanBullets(data.Projects[i].Highlights)
	}
	for _, s := range r.Skills {
		if name := strings.TrimSpace(s.Name); name != "" {
			data.Skills = append(data.Skills, name)
		}
	}
	data.Normalize()
	return data
}

func trimPersonalInfo(p types.PersonalInfo) types.PersonalInfo {
	for _, field := range []*string{&p.Name, &p.Email, &p.Phone, &p.Location, &p.LinkedIn, &p.Website, &p.GitHub, &p.Portfolio} {
		*field = strings.TrimSpace(*field)
	}
	return p
}

func countEntries(d types.ResumeData) int {
	return len(d.Experience) + len(d.Education) + len(d.Projects) + len(d.Certifications) + len(d.Languages)
}
