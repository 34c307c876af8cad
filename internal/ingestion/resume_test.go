package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

const yamlResume = `
templateId: minimal-clean
personalInfo:
  name: "  Jane Doe "
  email: jane@example.com
  phone: "555-0100"
  location: Portland, OR
summary: |
  Backend engineer    with ten years of experience.


  Enjoys distributed systems.
experience:
  - id: exp-1
    company: Acme
    position: Staff Engineer
    startDate: "2019-03"
    current: true
    description:
      - "- Led the payments platform"
      - "   "
    achievements:
      - "• Cut p99 latency by 40%"
education:
  - institution: State University
    degree: BS
    field: Computer Science
skills:
  - Go
  - name: PostgreSQL
    level: Expert
  - "  "
languages:
  - language: Spanish
    proficiency: Fluent
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "resume.yaml", yamlResume)

	doc, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "minimal-clean", doc.TemplateID)
	assert.Equal(t, "Jane Doe", doc.Data.PersonalInfo.Name)
	assert.Equal(t, "Backend engineer with ten years of experience.\n\nEnjoys distributed systems.", doc.Data.Summary)
	require.Len(t, doc.Data.Experience, 1)
	assert.Equal(t, "exp-1", doc.Data.Experience[0].ID)
	assert.Equal(t, []string{"Led the payments platform"}, doc.Data.Experience[0].Description)
	assert.Equal(t, []string{"Cut p99 latency by 40%"}, doc.Data.Experience[0].Achievements)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, doc.Data.Skills)
	assert.Equal(t, types.ProficiencyFluent, doc.Data.Languages[0].Proficiency)
	assert.NotNil(t, doc.Data.Projects, "collections are never nil")

	assert.Equal(t, path, doc.Metadata.Source)
	assert.Equal(t, FormatYAML, doc.Metadata.Format)
	assert.Equal(t, 3, doc.Metadata.Entries)
}

func TestLoadFile_JSONMatchesYAML(t *testing.T) {
	fromYAML, err := LoadFile(writeFile(t, "resume.yml", yamlResume))
	require.NoError(t, err)

	jsonResume := `{
	  "templateId": "minimal-clean",
	  "personalInfo": {"name": "Jane Doe", "email": "jane@example.com", "phone": "555-0100", "location": "Portland, OR"},
	  "summary": "Backend engineer with ten years of experience.\n\nEnjoys distributed systems.",
	  "experience": [{"id": "exp-1", "company": "Acme", "position": "Staff Engineer", "startDate": "2019-03", "current": true,
	    "description": ["Led the payments platform"], "achievements": ["Cut p99 latency by 40%"]}],
	  "education": [{"institution": "State University", "degree": "BS", "field": "Computer Science"}],
	  "skills": ["Go", {"name": "PostgreSQL"}],
	  "languages": [{"language": "Spanish", "proficiency": "Fluent"}]
	}`
	fromJSON, err := LoadFile(writeFile(t, "resume.json", jsonResume))
	require.NoError(t, err)

	if diff := cmp.Diff(fromYAML.Data, fromJSON.Data); diff != "" {
		t.Errorf("YAML and JSON imports differ (-yaml +json):\n%s", diff)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "file not found")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "resume.docx", "x"))
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "resume.yaml", "   \n"))
		assert.True(t, errors.Is(err, ErrEmptyDocument))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "resume.yaml", "personalInfo: [unclosed"))
		assert.ErrorContains(t, err, "invalid YAML")
	})

	t.Run("schema violation", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "resume.json", `{"languages": [{"language": "French", "proficiency": "Expert"}]}`))
		var verr *schemas.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.NotEmpty(t, verr.Errors)
	})
}

func TestCommands_RecreateDocument(t *testing.T) {
	doc, err := Parse([]byte(yamlResume), FormatYAML)
	require.NoError(t, err)

	state, changed := builder.ApplyAll(builder.NewState(), Commands(doc)...)
	require.True(t, changed)

	require.NotNil(t, state.SelectedTemplate)
	assert.Equal(t, "minimal-clean", state.SelectedTemplate.ID)
	assert.Equal(t, doc.Data.PersonalInfo, state.ResumeData.PersonalInfo)
	assert.Equal(t, doc.Data.Summary, state.ResumeData.Summary)
	assert.Equal(t, []string{"exp-1"}, state.EntryIDs(builder.SectionExperience))
	assert.Equal(t, doc.Data.Skills, state.ResumeData.Skills)
	assert.Len(t, state.ResumeData.Languages, 1)
	assert.True(t, state.IsDirty)
}

func TestCommands_UnknownTemplateSkipped(t *testing.T) {
	doc := &Document{Data: types.NewResumeData(), TemplateID: "does-not-exist"}
	for _, cmd := range Commands(doc) {
		_, isSelect := cmd.(builder.SelectTemplate)
		assert.False(t, isSelect)
	}
}
