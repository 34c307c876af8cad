package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func TestParseSection(t *testing.T) {
	tests := []struct {
		in   string
		want Section
	}{
		{"experience", SectionExperience},
		{"Experiences", SectionExperience},
		{"education", SectionEducation},
		{"project", SectionProjects},
		{" certifications ", SectionCertifications},
		{"language", SectionLanguages},
	}
	for _, tt := range tests {
		got, err := ParseSection(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseSection("skills")
	assert.Error(t, err)
}

func TestDecodeEntry_AddAndUpdate(t *testing.T) {
	body := []byte(`{"id":"ignored","company":"Acme","position":"Engineer","startDate":"2020-01"}`)

	cmd, err := DecodeEntry(SectionExperience, body, "", false)
	require.NoError(t, err)
	add, ok := cmd.(AddExperience)
	require.True(t, ok)
	assert.Equal(t, "ignored", add.Entry.ID)
	assert.Equal(t, "Acme", add.Entry.Company)

	cmd, err = DecodeEntry(SectionExperience, body, "x1", true)
	require.NoError(t, err)
	upd, ok := cmd.(UpdateExperience)
	require.True(t, ok)
	assert.Equal(t, "x1", upd.Entry.ID, "path id wins over body id")
}

func TestDecodeEntry_EverySection(t *testing.T) {
	bodies := map[Section]string{
		SectionExperience:     `{"company":"Acme"}`,
		SectionEducation:      `{"institution":"State"}`,
		SectionProjects:       `{"name":"CLI"}`,
		SectionCertifications: `{"name":"CKA","issuer":"CNCF"}`,
		SectionLanguages:      `{"language":"Spanish","proficiency":"Fluent"}`,
	}
	s := NewState()
	for _, section := range Sections {
		cmd, err := DecodeEntry(section, []byte(bodies[section]), "id-"+string(section), false)
		require.NoError(t, err, section)
		var changed bool
		s, changed = Apply(s, cmd)
		assert.True(t, changed, section)
		assert.Equal(t, []string{"id-" + string(section)}, s.EntryIDs(section))
	}

	for _, section := range Sections {
		cmd, err := RemoveEntry(section, "id-"+string(section))
		require.NoError(t, err)
		s, _ = Apply(s, cmd)
		assert.Empty(t, s.EntryIDs(section))
	}
}

func TestDecodeEntry_Errors(t *testing.T) {
	_, err := DecodeEntry(SectionEducation, []byte(`{`), "", false)
	assert.Error(t, err)

	_, err = DecodeEntry(SectionLanguages, []byte(`{"language":"French","proficiency":"Expert"}`), "l1", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid proficiency")

	_, err = DecodeEntry(Section("skills"), []byte(`{}`), "", false)
	assert.Error(t, err)
	_, err = RemoveEntry(Section("skills"), "x")
	assert.Error(t, err)
	_, err = MoveEntry(Section("skills"), "x", 0)
	assert.Error(t, err)
}

func TestMoveEntry(t *testing.T) {
	s, _ := ApplyAll(NewState(),
		AddProject{Entry: types.Project{ID: "a", Name: "A"}},
		AddProject{Entry: types.Project{ID: "b", Name: "B"}},
	)
	cmd, err := MoveEntry(SectionProjects, "b", 0)
	require.NoError(t, err)
	s, changed := Apply(s, cmd)
	assert.True(t, changed)
	assert.Equal(t, []string{"b", "a"}, s.EntryIDs(SectionProjects))
}
