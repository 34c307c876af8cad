package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func TestStyleHints_Clean(t *testing.T) {
	data := types.ResumeData{
		Summary: "Backend engineer who cut checkout latency by 40%.",
		Experience: []types.WorkExperience{
			{Achievements: []string{"Led the migration to Postgres 15"}},
		},
	}

	assert.Empty(t, StyleHints(data, 0))
}

func TestStyleHints_FillerPhrases(t *testing.T) {
	data := types.ResumeData{
		Summary: "A Team Player and self-starter.",
		Experience: []types.WorkExperience{
			{Description: []string{"Responsible for the billing service", "Shipped invoicing v2"}},
		},
		Projects: []types.Project{
			{Description: "Real synergy", Highlights: []string{"Coding ninja work"}},
		},
	}

	hints := StyleHints(data, 0)
	require.Len(t, hints, 4)

	assert.Equal(t, KeySummary, hints[0].Field)
	assert.Equal(t, HintFillerPhrase, hints[0].Kind)
	assert.Contains(t, hints[0].Message, "team player", "first match only")

	assert.Equal(t, "experience.0.description[0]", hints[1].Field)
	assert.Equal(t, "projects.0.description", hints[2].Field)
	assert.Equal(t, "projects.0.highlights[0]", hints[3].Field)
}

func TestStyleHints_LongBullets(t *testing.T) {
	long := strings.Repeat("a", 81)
	data := types.ResumeData{
		Summary: strings.Repeat("s", 500),
		Experience: []types.WorkExperience{
			{Achievements: []string{"short", long}},
		},
	}

	hints := StyleHints(data, 80)

	require.Len(t, hints, 1, "the summary is not a bullet")
	assert.Equal(t, HintLongBullet, hints[0].Kind)
	assert.Equal(t, "experience.0.achievements[1]", hints[0].Field)
	assert.Contains(t, hints[0].Message, "81 characters, maximum is 80")
}
