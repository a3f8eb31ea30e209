package progress

import (
	"testing"

	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	full := types.BasicInfo{FullName: "Jane Doe", Email: "jane@x.com", Phone: "555-0100", Location: "NYC"}

	tests := []struct {
		name        string
		info        types.BasicInfo
		experiences []types.WorkExperience
		skills      []types.Skill
		expected    int
	}{
		{name: "nothing", expected: 0},
		{name: "only name", info: types.BasicInfo{FullName: "Jane Doe"}, expected: 17},
		{name: "headline earns nothing", info: types.BasicInfo{Headline: "PM"}, expected: 0},
		{name: "basic info", info: full, expected: 67},
		{name: "four skills earn nothing", info: full, skills: make([]types.Skill, 4), expected: 67},
		{name: "basic and experience", info: full, experiences: make([]types.WorkExperience, 1), expected: 83},
		{
			name:        "everything",
			info:        full,
			experiences: make([]types.WorkExperience, 1),
			skills:      make([]types.Skill, 5),
			expected:    100,
		},
		{name: "three points", info: types.BasicInfo{FullName: "a", Email: "b", Phone: "c"}, expected: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compute(tt.info, tt.experiences, tt.skills))
		})
	}
}

func TestEncouragement(t *testing.T) {
	tests := []struct {
		progress int
		expected string
	}{
		{100, "Perfect! Your profile is complete."},
		{83, "Almost done! Your profile is looking strong."},
		{75, "Almost done! Your profile is looking strong."},
		{50, "Halfway there! Keep going."},
		{33, "You're off to a great start!"},
		{25, "You're off to a great start!"},
		{17, "Great! Let's build your profile."},
		{0, "Let's get started!"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Encouragement(tt.progress), tt.progress)
	}
}

func TestTimeEstimate(t *testing.T) {
	exp := make([]types.WorkExperience, 1)
	all := types.BasicInfo{FullName: "a", Email: "b", Phone: "c", Location: "d", Headline: "e"}

	assert.Equal(t, "All done!", TimeEstimate(all, exp, 100))

	oneLeft := all
	oneLeft.Headline = ""
	assert.Equal(t, "Just 1 more field to go", TimeEstimate(oneLeft, exp, 100))

	assert.Equal(t, "Just 2 more fields to go", TimeEstimate(types.BasicInfo{FullName: "a", Email: "b", Phone: "c"}, exp, 67))
	assert.Equal(t, "Just 3 more fields to go", TimeEstimate(types.BasicInfo{FullName: "a", Email: "b", Phone: "c"}, nil, 50))

	assert.Equal(t, "You're doing great, 2 minutes left", TimeEstimate(types.BasicInfo{FullName: "a"}, nil, 50))
	assert.Equal(t, "This will take about 5 minutes", TimeEstimate(types.BasicInfo{FullName: "a"}, nil, 17))
	assert.Equal(t, 6, Remaining(types.BasicInfo{}, nil))
}

func TestTracker_Observe(t *testing.T) {
	tr := NewTracker(40)

	m, ok := tr.Observe(60)
	assert.True(t, ok)
	assert.Equal(t, 50, m.Threshold)
	assert.Equal(t, "Halfway there! Keep going.", m.Message)

	_, ok = tr.Observe(60)
	assert.False(t, ok, "no repeat while progress stays put")
	assert.Equal(t, 60, tr.Previous())
}

func TestCrossed(t *testing.T) {
	tests := []struct {
		name      string
		prev      int
		current   int
		threshold int
		fired     bool
	}{
		{name: "multi-threshold jump reports lowest", prev: 20, current: 100, threshold: 25, fired: true},
		{name: "exactly on threshold", prev: 67, current: 75, threshold: 75, fired: true},
		{name: "to complete", prev: 83, current: 100, threshold: 100, fired: true},
		{name: "going down", prev: 83, current: 17},
		{name: "below first threshold", prev: 0, current: 17},
		{name: "within a band", prev: 50, current: 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := Crossed(tt.prev, tt.current)
			assert.Equal(t, tt.fired, ok)
			assert.Equal(t, tt.threshold, m.Threshold)
		})
	}
}

func TestTracker_FallAndRise(t *testing.T) {
	tr := NewTracker(0)
	_, ok := tr.Observe(33)
	assert.True(t, ok)
	_, ok = tr.Observe(17)
	assert.False(t, ok)
	m, ok := tr.Observe(33)
	assert.True(t, ok, "re-crossing after a drop fires again")
	assert.Equal(t, 25, m.Threshold)
}
