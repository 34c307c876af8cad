package builder

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

func modernTemplate(t *testing.T) *types.Template {
	t.Helper()
	tmpl, ok := templates.Get("modern-professional")
	require.True(t, ok)
	return tmpl
}

func completed(s State, id types.StepID) bool {
	step, _ := s.Step(id)
	return step.Completed
}

// fullState builds a state where every required step is complete
func fullState(t *testing.T) State {
	t.Helper()
	s, _ := ApplyAll(NewState(),
		SelectTemplate{Template: modernTemplate(t)},
		UpdatePersonalInfo{Info: types.PersonalInfo{
			Name: "Jane Doe", Email: "jane@example.com", Phone: "+1 555 123 4567", Location: "Austin, TX",
		}},
		UpdateSummary{Summary: strings.Repeat("Seasoned engineer building reliable systems. ", 2)},
		AddExperience{Entry: types.WorkExperience{ID: "exp-1", Company: "Acme", Position: "Engineer", StartDate: "2020-01"}},
		AddEducation{Entry: types.Education{ID: "edu-1", Institution: "State U", Degree: "BS", Field: "CS"}},
		AddSkill{Name: "Go"},
	)
	return s
}

func TestNewState(t *testing.T) {
	s := NewState()

	assert.Equal(t, 0, s.CurrentStepIndex)
	require.Len(t, s.Steps, 10)
	assert.Equal(t, types.StepTemplate, s.Steps[0].ID)
	assert.Equal(t, types.StepReview, s.Steps[9].ID)
	assert.Nil(t, s.SelectedTemplate)
	assert.False(t, s.IsDirty)
	assert.False(t, s.IsPreviewMode)
	assert.Equal(t, 0, s.CompletedCount())
	assert.NotNil(t, s.ResumeData.Experience)
	assert.NotNil(t, s.ResumeData.Skills)

	var required []types.StepID
	for _, step := range s.Steps {
		assert.True(t, step.Enabled)
		if step.Required {
			required = append(required, step.ID)
		}
	}
	assert.Equal(t, []types.StepID{
		types.StepTemplate, types.StepPersonalInfo, types.StepSummary, types.StepExperience,
		types.StepEducation, types.StepSkills, types.StepReview,
	}, required)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	before := fullState(t)
	snapshot := before.Clone()

	_, changed := Apply(before, RemoveExperience{ID: "exp-1"})
	require.True(t, changed)
	_, _ = Apply(before, UpdateSummary{Summary: "short"})
	_, _ = Apply(before, MoveSkill{From: 0, To: 0})

	if diff := cmp.Diff(snapshot, before); diff != "" {
		t.Errorf("Apply mutated its input (-want +got):\n%s", diff)
	}
}

func TestApply_CompletionPredicates(t *testing.T) {
	s := NewState()

	s, _ = Apply(s, SelectTemplate{Template: modernTemplate(t)})
	assert.True(t, completed(s, types.StepTemplate))

	s, _ = Apply(s, UpdatePersonalInfo{Info: types.PersonalInfo{Name: "Jane", Email: "j@x.io", Phone: "555"}})
	assert.False(t, completed(s, types.StepPersonalInfo), "location missing")
	s, _ = Apply(s, UpdatePersonalInfo{Info: types.PersonalInfo{Name: "Jane", Email: "j@x.io", Phone: "555", Location: "   "}})
	assert.False(t, completed(s, types.StepPersonalInfo), "whitespace is not filled")
	s, _ = Apply(s, UpdatePersonalInfo{Info: types.PersonalInfo{Name: "Jane", Email: "j@x.io", Phone: "555", Location: "NYC"}})
	assert.True(t, completed(s, types.StepPersonalInfo))

	s, _ = Apply(s, UpdateSummary{Summary: strings.Repeat("a", 50)})
	assert.False(t, completed(s, types.StepSummary), "exactly 50 characters is not enough")
	s, _ = Apply(s, UpdateSummary{Summary: strings.Repeat("a", 51)})
	assert.True(t, completed(s, types.StepSummary))

	s, _ = Apply(s, AddProject{Entry: types.Project{ID: "p1", Name: "CLI"}})
	assert.True(t, completed(s, types.StepProjects))
	s, _ = Apply(s, RemoveProject{ID: "p1"})
	assert.False(t, completed(s, types.StepProjects))

	s, _ = Apply(s, AddCertification{Entry: types.Certification{ID: "c1", Name: "CKA"}})
	assert.True(t, completed(s, types.StepCertifications))
	s, _ = Apply(s, AddLanguage{Entry: types.Language{ID: "l1", Language: "French", Proficiency: types.ProficiencyFluent}})
	assert.True(t, completed(s, types.StepLanguages))

	s, _ = Apply(s, SelectTemplate{Template: nil})
	assert.False(t, completed(s, types.StepTemplate), "clearing the template clears the step")
}

func TestApply_ReviewTracksRequiredSteps(t *testing.T) {
	s := fullState(t)
	assert.True(t, completed(s, types.StepReview))
	assert.False(t, completed(s, types.StepProjects), "optional steps do not gate review")

	s, changed := Apply(s, RemoveSkill{Name: "go"})
	require.True(t, changed, "skill removal is case-insensitive")
	assert.False(t, completed(s, types.StepSkills))
	assert.False(t, completed(s, types.StepReview))

	s, _ = Apply(s, AddSkill{Name: "Rust"})
	assert.True(t, completed(s, types.StepReview))
}

func TestApply_RemovingLastExperienceReopensReview(t *testing.T) {
	s := fullState(t)
	require.True(t, completed(s, types.StepExperience))
	require.True(t, completed(s, types.StepReview))

	s, changed := Apply(s, RemoveExperience{ID: "exp-1"})
	require.True(t, changed)
	assert.Empty(t, s.ResumeData.Experience)
	assert.False(t, completed(s, types.StepExperience))
	assert.False(t, completed(s, types.StepReview))
	assert.True(t, s.IsDirty)
}

func TestApply_CompletionMatchesPredicatesAfterEveryCommand(t *testing.T) {
	cmds := []Command{
		SelectTemplate{Template: modernTemplate(t)},
		AddSkill{Name: "Go"},
		NextStep{},
		AddExperience{Entry: types.WorkExperience{ID: "e1", Company: "Acme"}},
		UpdateSummary{Summary: strings.Repeat("x", 80)},
		RemoveExperience{ID: "e1"},
		GoToStep{Index: 7},
		SetSkills{Names: []string{"Go", " ", "go", "SQL"}},
		AddEducation{Entry: types.Education{ID: "d1"}},
		MoveSkill{From: 1, To: 0},
		Reset{},
		AddSkill{Name: "Kubernetes"},
	}

	s := NewState()
	for _, cmd := range cmds {
		s, _ = Apply(s, cmd)
		for _, step := range s.Steps {
			if step.ID == types.StepReview {
				continue
			}
			def, ok := Definition(step.ID)
			require.True(t, ok)
			assert.Equal(t, def.Completed(&s), step.Completed, "%s after %s", step.ID, cmd.Name())
		}
		assert.Equal(t, requiredStepsDone(&s, types.StepReview), completed(s, types.StepReview), "review after %s", cmd.Name())
	}
}

func TestApply_Navigation(t *testing.T) {
	s := NewState()

	s, changed := Apply(s, PreviousStep{})
	assert.False(t, changed, "previous at the first step is a no-op")
	assert.Equal(t, 0, s.CurrentStepIndex)
	assert.False(t, s.IsDirty)

	s, changed = Apply(s, NextStep{})
	assert.True(t, changed)
	assert.Equal(t, 1, s.CurrentStepIndex)
	assert.True(t, s.IsDirty, "navigation marks the state dirty")

	s, _ = Apply(s, GoToStep{Index: 42})
	assert.Equal(t, 9, s.CurrentStepIndex, "GoToStep clamps high")
	s, changed = Apply(s, NextStep{})
	assert.False(t, changed, "next at the last step is a no-op")

	s, _ = Apply(s, GoToStep{Index: -3})
	assert.Equal(t, 0, s.CurrentStepIndex, "GoToStep clamps low")

	s, _ = Apply(s, GoToStep{Index: 9})
	assert.Equal(t, types.StepReview, s.CurrentStep().ID, "GoToStep is not gated by completion")
}

func TestApply_NavigationSkipsDisabledSteps(t *testing.T) {
	s, _ := ApplyAll(NewState(),
		GoToStep{Index: 5},
		SetStepEnabled{StepID: types.StepProjects, Enabled: false},
		SetStepEnabled{StepID: types.StepCertifications, Enabled: false},
	)

	s, _ = Apply(s, NextStep{})
	assert.Equal(t, types.StepLanguages, s.CurrentStep().ID)
	s, _ = Apply(s, PreviousStep{})
	assert.Equal(t, types.StepSkills, s.CurrentStep().ID)
}

func TestApply_TogglePreview(t *testing.T) {
	s, changed := Apply(NewState(), TogglePreview{})
	require.True(t, changed)
	assert.True(t, s.IsPreviewMode)
	s, _ = Apply(s, TogglePreview{})
	assert.False(t, s.IsPreviewMode)
}

func TestApply_NoOps(t *testing.T) {
	s := fullState(t)
	s.IsDirty = false

	noops := []Command{
		RemoveExperience{ID: "missing"},
		UpdateEducation{Entry: types.Education{ID: "missing"}},
		MoveProject{ID: "missing", To: 0},
		AddExperience{Entry: types.WorkExperience{ID: "exp-1"}},
		AddExperience{Entry: types.WorkExperience{}},
		AddSkill{Name: "  "},
		AddSkill{Name: "GO"},
		RemoveSkill{Name: "Haskell"},
		MoveSkill{From: 5, To: 0},
		UpdateSummary{Summary: s.ResumeData.Summary},
		SelectTemplate{Template: s.SelectedTemplate},
		MarkStepCompleted{StepID: "unknown"},
		SetStepEnabled{StepID: types.StepSkills, Enabled: true},
	}
	for _, cmd := range noops {
		next, changed := Apply(s, cmd)
		assert.False(t, changed, cmd.Name())
		assert.False(t, next.IsDirty, cmd.Name())
	}
}

func TestApply_CollectionCRUD(t *testing.T) {
	s := NewState()
	s, _ = ApplyAll(s,
		AddExperience{Entry: types.WorkExperience{ID: "a", Company: "A"}},
		AddExperience{Entry: types.WorkExperience{ID: "b", Company: "B"}},
		AddExperience{Entry: types.WorkExperience{ID: "c", Company: "C"}},
	)

	s, changed := Apply(s, UpdateExperience{Entry: types.WorkExperience{ID: "b", Company: "B2", Position: "Lead"}})
	require.True(t, changed)
	assert.Equal(t, "B2", s.ResumeData.Experience[1].Company)
	assert.NotNil(t, s.ResumeData.Experience[1].Description, "missing lists default to empty")

	s, changed = Apply(s, MoveExperience{ID: "c", To: 0})
	require.True(t, changed)
	ids := func() []string {
		var out []string
		for _, e := range s.ResumeData.Experience {
			out = append(out, e.ID)
		}
		return out
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids())

	s, _ = Apply(s, MoveExperience{ID: "c", To: 99})
	assert.Equal(t, []string{"a", "b", "c"}, ids())

	s, _ = Apply(s, RemoveExperience{ID: "a"})
	assert.Equal(t, []string{"b", "c"}, ids())
}

func TestApply_Skills(t *testing.T) {
	s, _ := Apply(NewState(), SetSkills{Names: []string{" Go ", "", "SQL", "go", "Docker"}})
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, s.ResumeData.Skills)

	s, _ = Apply(s, MoveSkill{From: 2, To: 0})
	assert.Equal(t, []string{"Docker", "Go", "SQL"}, s.ResumeData.Skills)
}

func TestApply_MarkStepCompleted(t *testing.T) {
	s := NewState()
	s.Steps = append(s.Steps, types.BuilderStep{ID: "cover-letter", Title: "Cover Letter", Enabled: true})

	s, changed := Apply(s, MarkStepCompleted{StepID: "cover-letter"})
	require.True(t, changed)
	assert.True(t, completed(s, "cover-letter"))

	s, _ = Apply(s, AddSkill{Name: "Go"})
	assert.True(t, completed(s, "cover-letter"), "steps without a predicate keep the manual flag")

	s, _ = Apply(s, MarkStepCompleted{StepID: types.StepExperience})
	assert.True(t, completed(s, types.StepExperience))
	s, _ = Apply(s, NextStep{})
	assert.True(t, completed(s, types.StepExperience), "navigation leaves the override alone")
	s, _ = Apply(s, UpdateSummary{Summary: "changed"})
	assert.True(t, completed(s, types.StepExperience), "edits to other steps leave the override alone")

	s, _ = Apply(s, AddExperience{Entry: types.WorkExperience{ID: "e1", Company: "Acme"}})
	s, _ = Apply(s, RemoveExperience{ID: "e1"})
	assert.False(t, completed(s, types.StepExperience), "an experience change recomputes it")
}

func TestApply_MarkReviewIsNoOp(t *testing.T) {
	s := NewState()

	next, changed := Apply(s, MarkStepCompleted{StepID: types.StepReview})
	assert.False(t, changed)
	assert.False(t, completed(next, types.StepReview))
	assert.False(t, next.IsDirty)
}

func TestApply_ResetAndHydrate(t *testing.T) {
	s := fullState(t)
	require.True(t, s.IsDirty)

	reset, changed := Apply(s, Reset{})
	require.True(t, changed)
	if diff := cmp.Diff(NewState(), reset); diff != "" {
		t.Errorf("Reset should return the initial state (-want +got):\n%s", diff)
	}

	s.IsDirty = false
	s.CurrentStepIndex = 3
	hydrated, changed := Apply(NewState(), Hydrate{State: s})
	require.True(t, changed)
	assert.False(t, hydrated.IsDirty, "hydrate does not mark dirty")
	if diff := cmp.Diff(s, hydrated); diff != "" {
		t.Errorf("Hydrate should restore the state (-want +got):\n%s", diff)
	}
}

func TestApply_HydrateRepairsState(t *testing.T) {
	in := State{
		CurrentStepIndex: 50,
		Steps: []types.BuilderStep{
			{ID: types.StepSkills, Completed: false, Enabled: false},
			{ID: "custom", Title: "Custom", Completed: true, Enabled: true},
		},
		ResumeData: types.ResumeData{Skills: []string{"Go", "go", ""}},
	}

	out, _ := Apply(NewState(), Hydrate{State: in})

	require.Len(t, out.Steps, 11)
	assert.Equal(t, 10, out.CurrentStepIndex)
	assert.Equal(t, []string{"Go"}, out.ResumeData.Skills)
	assert.True(t, completed(out, types.StepSkills), "completion is recomputed from data")
	skills, _ := out.Step(types.StepSkills)
	assert.False(t, skills.Enabled, "enabled flag survives")
	assert.Equal(t, "Skills", skills.Title, "metadata comes from the definitions")
	assert.True(t, completed(out, "custom"))
	assert.NotNil(t, out.ResumeData.Experience)
}
