// Package builder implements the guided resume builder: a pure transition
// function over a closed set of commands, derived step completion, and a
// Controller that owns the state and persists it after each change.
package builder

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// State is the complete builder state. It is also the persisted snapshot
// record, so its JSON shape is part of the storage contract.
type State struct {
	CurrentStepIndex int                 `json:"currentStepIndex"`
	Steps            []types.BuilderStep `json:"steps"`
	ResumeData       types.ResumeData    `json:"resumeData"`
	SelectedTemplate *types.Template     `json:"selectedTemplate"`
	IsPreviewMode    bool                `json:"isPreviewMode"`
	IsDirty          bool                `json:"isDirty"`
}

// NewState returns the empty initial state
func NewState() State {
	s := State{
		Steps:      DefaultSteps(),
		ResumeData: types.NewResumeData(),
	}
	recomputeCompletion(&s)
	return s
}

// Clone returns a deep copy of s
func (s State) Clone() State {
	out := s
	out.Steps = append([]types.BuilderStep{}, s.Steps...)
	out.ResumeData = s.ResumeData.Clone()
	out.SelectedTemplate = s.SelectedTemplate.Clone()
	return out
}

// CurrentStep returns the step under the navigation cursor
func (s State) CurrentStep() types.BuilderStep {
	if len(s.Steps) == 0 {
		return types.BuilderStep{}
	}
	return s.Steps[clamp(s.CurrentStepIndex, 0, len(s.Steps)-1)]
}

// Step looks up a step by ID
func (s State) Step(id types.StepID) (types.BuilderStep, bool) {
	if i := s.stepIndex(id); i >= 0 {
		return s.Steps[i], true
	}
	return types.BuilderStep{}, false
}

// CompletedCount returns how many steps are completed
func (s State) CompletedCount() int {
	n := 0
	for _, step := range s.Steps {
		if step.Completed {
			n++
		}
	}
	return n
}

func (s State) stepIndex(id types.StepID) int {
	for i, step := range s.Steps {
		if step.ID == id {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
