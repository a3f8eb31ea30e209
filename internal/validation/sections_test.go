package validation

import (
	"testing"

	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBasic() types.BasicInfo {
	return types.BasicInfo{FullName: "Jane Doe", Email: "jane@x.com", Phone: "555-0100"}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email    string
		expected bool
	}{
		{"jane@x.com", true},
		{"first.last@sub.example.org", true},
		{"not-an-email", false},
		{"jane@x", false},
		{"jane @x.com", false},
		{"@x.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidEmail(tt.email))
		})
	}
}

func TestBasicInfoComplete(t *testing.T) {
	assert.True(t, BasicInfoComplete(validBasic()))

	noPhone := validBasic()
	noPhone.Phone = ""
	assert.False(t, BasicInfoComplete(noPhone))

	badEmail := validBasic()
	badEmail.Email = "not-an-email"
	assert.False(t, BasicInfoComplete(badEmail))

	assert.False(t, BasicInfoComplete(types.BasicInfo{}))
}

func TestListPredicates(t *testing.T) {
	assert.True(t, ExperienceComplete(nil))
	assert.False(t, ExperienceComplete([]types.WorkExperience{{JobTitle: "PM"}}))
	assert.True(t, ExperienceComplete([]types.WorkExperience{{JobTitle: "PM"}, {JobTitle: "Eng", CompanyName: "Acme"}}))

	assert.True(t, ProjectsComplete(nil))
	assert.False(t, ProjectsComplete([]types.Project{{ProjectTitle: "Site", Status: types.ProjectStatusFinished}}))
	assert.True(t, ProjectsComplete([]types.Project{{ProjectTitle: "Site", Client: "Acme"}}))

	assert.True(t, EducationComplete(nil))
	assert.False(t, EducationComplete([]types.Education{{Institution: "MIT"}}))
	assert.True(t, EducationComplete([]types.Education{{Degree: "BSc", Institution: "MIT"}}))

	assert.True(t, SkillsComplete(nil))
	assert.False(t, SkillsComplete(make([]types.Skill, 2)))
	assert.True(t, SkillsComplete(make([]types.Skill, 3)))
}

func TestSnapshot_CanComplete(t *testing.T) {
	tests := []struct {
		name     string
		snapshot Snapshot
		expected bool
		failing  []types.Section
	}{
		{
			name:     "basic info only",
			snapshot: Snapshot{BasicInfo: validBasic()},
			expected: true,
		},
		{
			name: "invalid email",
			snapshot: Snapshot{BasicInfo: types.BasicInfo{
				FullName: "Jane Doe", Email: "not-an-email", Phone: "555-0100",
			}},
			failing: []types.Section{types.SectionBasic},
		},
		{
			name: "started sections left incomplete",
			snapshot: Snapshot{
				BasicInfo:   validBasic(),
				Experiences: []types.WorkExperience{{}},
				Skills:      []types.Skill{{SkillName: "Go"}},
			},
			failing: []types.Section{types.SectionExperience, types.SectionSkills},
		},
		{
			name:    "empty wizard",
			failing: []types.Section{types.SectionBasic},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.snapshot.CanComplete())
			assert.Equal(t, tt.failing, tt.snapshot.Failing())
		})
	}
}

func TestSnapshot_CheckComplete(t *testing.T) {
	ok := Snapshot{BasicInfo: validBasic()}
	assert.NoError(t, ok.CheckComplete())

	bad := Snapshot{Projects: []types.Project{{}}}
	err := bad.CheckComplete()
	var ie *IncompleteError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, []types.Section{types.SectionBasic, types.SectionProjects}, ie.Failing)
	assert.Equal(t, []string{
		"Complete Basic Information with valid email (required)",
		"Complete started project entries",
	}, ie.Messages)
	assert.Contains(t, err.Error(), "basic, projects")
}

func TestSnapshot_Summary(t *testing.T) {
	s := Snapshot{
		BasicInfo:   validBasic(),
		Experiences: make([]types.WorkExperience, 2),
		Skills:      make([]types.Skill, 4),
	}
	summary := s.Summary()
	assert.Equal(t, validBasic(), summary.BasicInfo)
	assert.Equal(t, 2, summary.ExperiencesCount)
	assert.Equal(t, 0, summary.ProjectsCount)
	assert.Equal(t, 0, summary.EducationCount)
	assert.Equal(t, 4, summary.SkillsCount)
}
