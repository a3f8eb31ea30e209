//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func TestMoveRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request MoveRequest
		wantErr bool
	}{
		{name: "direction up", request: MoveRequest{Direction: "up"}},
		{name: "direction down", request: MoveRequest{Direction: "down"}},
		{name: "absolute target", request: MoveRequest{To: intPtr(3)}},
		{name: "target zero", request: MoveRequest{To: intPtr(0)}},
		{name: "neither set", request: MoveRequest{}, wantErr: true},
		{name: "both set", request: MoveRequest{Direction: "up", To: intPtr(1)}, wantErr: true},
		{name: "unknown direction", request: MoveRequest{Direction: "left"}, wantErr: true},
		{name: "negative target", request: MoveRequest{To: intPtr(-1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetActiveRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request SetActiveRequest
		wantErr bool
	}{
		{name: "experience entry", request: SetActiveRequest{Section: "experience", Index: 2}},
		{name: "skills entry", request: SetActiveRequest{Section: "skills"}},
		{name: "basic is not a list", request: SetActiveRequest{Section: "basic"}, wantErr: true},
		{name: "missing section", request: SetActiveRequest{Index: 1}, wantErr: true},
		{name: "negative index", request: SetActiveRequest{Section: "projects", Index: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNavigateRequest_Validation(t *testing.T) {
	for _, sec := range SectionOrder {
		req := NavigateRequest{Section: string(sec)}
		assert.NoError(t, req.Validate(), sec)
	}

	req := NavigateRequest{Section: "complete"}
	assert.Error(t, req.Validate())
}

func TestBulkSkillsRequest_Validation(t *testing.T) {
	assert.NoError(t, (&BulkSkillsRequest{Text: "Go, SQL"}).Validate())
	assert.NoError(t, (&BulkSkillsRequest{FromSelection: true}).Validate())
	assert.Error(t, (&BulkSkillsRequest{}).Validate())
}

func TestSelectTextRequest_Validation(t *testing.T) {
	assert.NoError(t, (&SelectTextRequest{Text: "Tech Corp"}).Validate())
	assert.Error(t, (&SelectTextRequest{}).Validate())
}

func TestParseSection(t *testing.T) {
	sec, ok := ParseSection("education")
	assert.True(t, ok)
	assert.Equal(t, SectionEducation, sec)

	_, ok = ParseSection("complete")
	assert.False(t, ok)

	_, ok = ParseSection("Education")
	assert.False(t, ok)
}

func TestSection_IsList(t *testing.T) {
	assert.False(t, SectionBasic.IsList())
	assert.True(t, SectionExperience.IsList())
	assert.True(t, SectionSkills.IsList())
	assert.False(t, SectionReview.IsList())
	assert.Equal(t, "Basic Info", SectionBasic.Label())
}

func TestDragRequest_Validation(t *testing.T) {
	assert.NoError(t, (&DragRequest{Action: "start", Index: 1}).Validate())
	assert.NoError(t, (&DragRequest{Action: "end"}).Validate())
	assert.Error(t, (&DragRequest{Action: "fling"}).Validate())
	assert.Error(t, (&DragRequest{Action: "over", Index: -2}).Validate())
}
