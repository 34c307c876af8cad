package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestNavigationRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     NavigationRequest
		wantErr bool
	}{
		{"next", NavigationRequest{Action: NavNext}, false},
		{"previous", NavigationRequest{Action: NavPrevious}, false},
		{"toggle", NavigationRequest{Action: NavTogglePreview}, false},
		{"goto with index", NavigationRequest{Action: NavGoTo, Index: intPtr(3)}, false},
		{"goto zero", NavigationRequest{Action: NavGoTo, Index: intPtr(0)}, false},
		{"goto without index", NavigationRequest{Action: NavGoTo}, true},
		{"goto negative", NavigationRequest{Action: NavGoTo, Index: intPtr(-1)}, true},
		{"unknown action", NavigationRequest{Action: "jump"}, true},
		{"empty", NavigationRequest{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuilderRequests_Validate(t *testing.T) {
	assert.NoError(t, (&TemplateRequest{TemplateID: "minimal-clean"}).Validate())
	assert.Error(t, (&TemplateRequest{}).Validate())

	assert.NoError(t, (&SummaryRequest{Summary: ""}).Validate(), "clearing the summary is allowed")

	assert.NoError(t, (&SkillRequest{Name: "Go"}).Validate())
	assert.Error(t, (&SkillRequest{}).Validate())

	assert.NoError(t, (&MoveRequest{To: intPtr(0)}).Validate())
	assert.Error(t, (&MoveRequest{}).Validate())
	assert.Error(t, (&MoveRequest{To: intPtr(-2)}).Validate())
}
