package prompts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// scriptDriver answers prompts from queues and records the messages asked
type scriptDriver struct {
	inputs    []string
	confirms  []bool
	selects   []int
	textAreas []string
	asked     []string
	rejected  []string
	failAt    int
}

func (s *scriptDriver) fail() error {
	if s.failAt > 0 && len(s.asked) == s.failAt {
		return ErrAborted
	}
	return nil
}

func (s *scriptDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	if err := s.fail(); err != nil {
		return "", err
	}
	if len(s.inputs) == 0 {
		return cfg.Default, nil
	}
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(v); err != nil {
			s.rejected = append(s.rejected, err.Error())
		}
	}
	return v, nil
}

func (s *scriptDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.asked = append(s.asked, cfg.Message)
	if err := s.fail(); err != nil {
		return false, err
	}
	if len(s.confirms) == 0 {
		return cfg.Default, nil
	}
	v := s.confirms[0]
	s.confirms = s.confirms[1:]
	return v, nil
}

func (s *scriptDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.asked = append(s.asked, cfg.Message)
	if err := s.fail(); err != nil {
		return 0, err
	}
	if len(s.selects) == 0 {
		return cfg.DefaultIndex, nil
	}
	v := s.selects[0]
	s.selects = s.selects[1:]
	return v, nil
}

func (s *scriptDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	if err := s.fail(); err != nil {
		return "", err
	}
	if len(s.textAreas) == 0 {
		return cfg.Default, nil
	}
	v := s.textAreas[0]
	s.textAreas = s.textAreas[1:]
	return v, nil
}

func TestAskPersonalInfo(t *testing.T) {
	d := &scriptDriver{inputs: []string{" Jane Doe ", "jane@example.com", "+1 555 123 4567", "Austin, TX", "", "", ""}}

	info, err := AskPersonalInfo(context.Background(), d, types.PersonalInfo{LinkedIn: "old"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", info.Name)
	assert.Equal(t, "jane@example.com", info.Email)
	assert.Equal(t, "Austin, TX", info.Location)
	assert.Empty(t, info.LinkedIn, "an explicit empty answer clears the field")
	assert.Empty(t, d.rejected)
	assert.Len(t, d.asked, 7)
}

func TestAskPersonalInfo_DefaultsFromCurrent(t *testing.T) {
	d := &scriptDriver{}
	current := types.PersonalInfo{Name: "Jane", Email: "jane@example.com"}

	info, err := AskPersonalInfo(context.Background(), d, current)
	require.NoError(t, err)
	assert.Equal(t, current, info)
}

func TestAskPersonalInfo_Validators(t *testing.T) {
	d := &scriptDriver{inputs: []string{"", "not-an-email", "abc"}}

	_, err := AskPersonalInfo(context.Background(), d, types.PersonalInfo{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Full name is required", errInvalidEmail.Error(), errInvalidPhone.Error()}, d.rejected)
}

func TestAskPersonalInfo_AbortKeepsCurrent(t *testing.T) {
	d := &scriptDriver{inputs: []string{"New"}, failAt: 2}
	current := types.PersonalInfo{Name: "Old"}

	info, err := AskPersonalInfo(context.Background(), d, current)
	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, current, info)
}

func TestAskSummary(t *testing.T) {
	d := &scriptDriver{textAreas: []string{"  Backend engineer.\n"}}
	got, err := AskSummary(context.Background(), d, "")
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer.", got)
}

func TestAskExperience(t *testing.T) {
	t.Run("current role skips end date", func(t *testing.T) {
		d := &scriptDriver{
			inputs:    []string{"Acme", "Engineer", "Remote", "2021-03"},
			confirms:  []bool{true},
			textAreas: []string{"- Built APIs\n\n* Ran on-call", "• Cut latency 40%"},
		}
		e, err := AskExperience(context.Background(), d)
		require.NoError(t, err)
		assert.Equal(t, "Acme", e.Company)
		assert.True(t, e.Current)
		assert.Empty(t, e.EndDate)
		assert.Equal(t, []string{"Built APIs", "Ran on-call"}, e.Description)
		assert.Equal(t, []string{"Cut latency 40%"}, e.Achievements)
		assert.NotContains(t, d.asked, text("experience.end"))
	})

	t.Run("past role asks end date", func(t *testing.T) {
		d := &scriptDriver{
			inputs:   []string{"Acme", "Engineer", "", "2018-01", "2020-12"},
			confirms: []bool{false},
		}
		e, err := AskExperience(context.Background(), d)
		require.NoError(t, err)
		assert.Equal(t, "2020-12", e.EndDate)
		assert.Equal(t, []string{}, e.Description)
	})

	t.Run("abort stops asking", func(t *testing.T) {
		d := &scriptDriver{inputs: []string{"Acme"}, failAt: 2}
		_, err := AskExperience(context.Background(), d)
		assert.ErrorIs(t, err, ErrAborted)
		assert.Len(t, d.asked, 2)
	})
}

func TestAskEducationProjectCertification(t *testing.T) {
	ctx := context.Background()

	edu, err := AskEducation(ctx, &scriptDriver{inputs: []string{"State University", "BSc", "CS", "2019-05", "3.8", "Cum laude"}})
	require.NoError(t, err)
	assert.Equal(t, types.Education{
		Institution: "State University", Degree: "BSc", Field: "CS", GraduationDate: "2019-05",
		GPA: "3.8", Honors: "Cum laude", RelevantCoursework: []string{}, Activities: []string{},
	}, edu)

	proj, err := AskProject(ctx, &scriptDriver{
		inputs:    []string{"resume-cli", "A builder", "Go, SQLite, ,cobra", "https://example.com"},
		textAreas: []string{"Shipped v1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQLite", "cobra"}, proj.Technologies)
	assert.Equal(t, []string{"Shipped v1"}, proj.Highlights)

	cert, err := AskCertification(ctx, &scriptDriver{inputs: []string{"CKA", "CNCF", "2022-06", "ABC-1"}})
	require.NoError(t, err)
	assert.Equal(t, "CNCF", cert.Issuer)
	assert.Equal(t, "ABC-1", cert.CredentialID)
}

func TestAskLanguage(t *testing.T) {
	l, err := AskLanguage(context.Background(), &scriptDriver{inputs: []string{"Spanish"}, selects: []int{3}})
	require.NoError(t, err)
	assert.Equal(t, types.ProficiencyNative, l.Proficiency)

	l, err = AskLanguage(context.Background(), &scriptDriver{inputs: []string{"French"}})
	require.NoError(t, err)
	assert.Equal(t, types.ProficiencyFluent, l.Proficiency, "default option")

	_, err = AskLanguage(context.Background(), &scriptDriver{inputs: []string{"German"}, selects: []int{-1}})
	assert.Error(t, err)
}

func TestAskSkill(t *testing.T) {
	d := &scriptDriver{inputs: []string{"  Go  "}}
	got, err := AskSkill(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "Go", got)
}

func TestAskTemplate(t *testing.T) {
	list := templates.Catalog()
	require.NotEmpty(t, list)

	d := &scriptDriver{selects: []int{1}}
	id, err := AskTemplate(context.Background(), d, list, "")
	require.NoError(t, err)
	assert.Equal(t, list[1].ID, id)

	last := list[len(list)-1].ID
	id, err = AskTemplate(context.Background(), &scriptDriver{}, list, last)
	require.NoError(t, err)
	assert.Equal(t, last, id, "current selection is the default")

	_, err = AskTemplate(context.Background(), &scriptDriver{}, nil, "")
	assert.Error(t, err)

	_, err = AskTemplate(context.Background(), &scriptDriver{selects: []int{-1}}, list, "")
	assert.Error(t, err)
}

func TestTranslateSurveyErr(t *testing.T) {
	other := errors.New("boom")
	assert.Equal(t, other, translateSurveyErr(other))
}
