package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidQuestion(t *testing.T) {
	ClearCache()

	q, err := Get(questionsFile, "personal.name")
	require.NoError(t, err)
	assert.Equal(t, "Full name", q)
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read question file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(questionsFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{"replaces all keys", "Using {{.Name}} ({{.ID}})", map[string]string{"Name": "Minimal Clean", "ID": "minimal-clean"}, "Using Minimal Clean (minimal-clean)"},
		{"repeated key", "{{.A}}-{{.A}}", map[string]string{"A": "x"}, "x-x"},
		{"unknown placeholder kept", "{{.Missing}}", map[string]string{"A": "x"}, "{{.Missing}}"},
		{"nil data", "plain", nil, "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestList_Sorted(t *testing.T) {
	ClearCache()

	keys, err := List(questionsFile)
	require.NoError(t, err)
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "summary")
	assert.Contains(t, keys, "template.select")
}

func TestEveryAskedKeyExists(t *testing.T) {
	keys := []string{
		"personal.name", "personal.email", "personal.phone", "personal.location",
		"personal.linkedin", "personal.website", "personal.github",
		"summary", "summary.help",
		"experience.company", "experience.position", "experience.location", "experience.start",
		"experience.current", "experience.end", "experience.description", "experience.achievements",
		"education.institution", "education.degree", "education.field", "education.graduation",
		"education.gpa", "education.honors",
		"project.name", "project.description", "project.technologies", "project.url", "project.highlights",
		"certification.name", "certification.issuer", "certification.date", "certification.credential",
		"language.name", "language.proficiency", "skill.name", "template.select", "template.selected", "required",
	}
	for _, k := range keys {
		_, err := Get(questionsFile, k)
		assert.NoError(t, err, k)
	}
}
