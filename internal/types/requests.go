package types

import "errors"

// Navigation actions accepted by NavigationRequest
const (
	NavNext          = "next"
	NavPrevious      = "previous"
	NavGoTo          = "goto"
	NavTogglePreview = "toggle-preview"
)

// NavigationRequest moves the builder cursor or toggles preview mode.
// Index is required for goto.
type NavigationRequest struct {
	Action string `json:"action" validate:"required,oneof=next previous goto toggle-preview"`
	Index  *int   `json:"index,omitempty" validate:"omitempty,min=0"`
}

// TemplateRequest selects a catalog template by ID
type TemplateRequest struct {
	TemplateID string `json:"templateId" validate:"required"`
}

// SummaryRequest replaces the professional summary
type SummaryRequest struct {
	Summary string `json:"summary" validate:"max=5000"`
}

// SkillRequest adds one skill by name
type SkillRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// MoveRequest moves an entry to position To
type MoveRequest struct {
	To *int `json:"to" validate:"required,min=0"`
}

// Validate validates the NavigationRequest using the validator.
func (r *NavigationRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Action == NavGoTo && r.Index == nil {
		return errors.New("index is required for goto")
	}
	return nil
}

// Validate validates the TemplateRequest using the validator.
func (r *TemplateRequest) Validate() error { return validate.Struct(r) }

// Validate validates the SummaryRequest using the validator.
func (r *SummaryRequest) Validate() error { return validate.Struct(r) }

// Validate validates the SkillRequest using the validator.
func (r *SkillRequest) Validate() error { return validate.Struct(r) }

// Validate validates the MoveRequest using the validator.
func (r *MoveRequest) Validate() error { return validate.Struct(r) }
