package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_SelectReplaces(t *testing.T) {
	tr := NewTracker()
	assert.False(t, tr.Pending())

	tr.Select("Senior Product Manager")
	tr.Select("  Tech Corp \n")
	assert.Equal(t, "Tech Corp", tr.Selected())
	assert.True(t, tr.Pending())

	tr.Select("   ")
	assert.False(t, tr.Pending())
}

func TestTracker_Assign(t *testing.T) {
	tr := NewTracker()

	_, ok := tr.Assign()
	assert.False(t, ok, "nothing pending")
	assert.Equal(t, 0, tr.Len())

	tr.Select("Tech Corp")
	text, ok := tr.Assign()
	require.True(t, ok)
	assert.Equal(t, "Tech Corp", text)
	assert.False(t, tr.Pending())
	assert.Equal(t, []string{"Tech Corp"}, tr.Mapped())

	tr.Select("Tech Corp")
	_, ok = tr.Assign()
	assert.True(t, ok)
	assert.False(t, tr.Pending(), "selection clears even for a duplicate")
	assert.Equal(t, 1, tr.Len())
}

func TestTracker_IsMapped(t *testing.T) {
	tr := NewTracker()
	tr.AddMapped("Senior Product Manager")

	tests := []struct {
		name      string
		candidate string
		expected  bool
	}{
		{name: "candidate contains mapped", candidate: "Senior Product Manager at Tech Corp", expected: true},
		{name: "mapped contains candidate", candidate: "Product", expected: true},
		{name: "exact", candidate: "Senior Product Manager", expected: true},
		{name: "unrelated", candidate: "Tech Corp", expected: false},
		{name: "case differs", candidate: "senior product manager", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tr.IsMapped(tt.candidate))
		})
	}

	assert.False(t, NewTracker().IsMapped("anything"))
}

func TestTracker_ResetAndRestore(t *testing.T) {
	tr := NewTracker()
	tr.Select("a")
	tr.AddMapped("b")
	tr.Reset()
	assert.False(t, tr.Pending())
	assert.Empty(t, tr.Mapped())

	tr.Restore([]string{"x", "y", "x", ""})
	assert.Equal(t, []string{"x", "y"}, tr.Mapped())
}

func TestTracker_ZeroValueUsable(t *testing.T) {
	var tr Tracker
	tr.Select("Go")
	_, ok := tr.Assign()
	assert.True(t, ok)
	assert.True(t, tr.IsMapped("Go"))
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		mapped   []string
		expected []Segment
	}{
		{
			name:     "no mapped snippets",
			text:     "Tech Corp",
			expected: []Segment{{Text: "Tech Corp"}},
		},
		{
			name:   "single match in the middle",
			text:   "Senior Product Manager at Tech Corp",
			mapped: []string{"Tech Corp"},
			expected: []Segment{
				{Text: "Senior Product Manager at "},
				{Text: "Tech Corp", Mapped: true},
			},
		},
		{
			name:   "longest first wins over a contained snippet",
			text:   "Senior Product Manager",
			mapped: []string{"Product", "Senior Product Manager"},
			expected: []Segment{
				{Text: "Senior Product Manager", Mapped: true},
			},
		},
		{
			name:   "repeated occurrences",
			text:   "Go and Go",
			mapped: []string{"Go"},
			expected: []Segment{
				{Text: "Go", Mapped: true},
				{Text: " and "},
				{Text: "Go", Mapped: true},
			},
		},
		{
			name:   "regex metacharacters are literal",
			text:   "C++ (expert)",
			mapped: []string{"(expert)", "C++"},
			expected: []Segment{
				{Text: "C++", Mapped: true},
				{Text: " "},
				{Text: "(expert)", Mapped: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Highlight(tt.text, tt.mapped))
		})
	}

	assert.Nil(t, Highlight("", []string{"x"}))
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Path
		wantErr bool
	}{
		{name: "experience field", raw: "experience.0.job_title", want: Path{Section: "experience", Index: 0, Field: "job_title"}},
		{name: "skills field", raw: "skills.4.skill_name", want: Path{Section: "skills", Index: 4, Field: "skill_name"}},
		{name: "basic ignores index", raw: "basic.0.email", want: Path{Section: "basic", Index: 0, Field: "email"}},
		{name: "too few parts", raw: "experience.job_title", wantErr: true},
		{name: "unknown section", raw: "awards.0.title", wantErr: true},
		{name: "review holds no fields", raw: "review.0.x", wantErr: true},
		{name: "non-numeric index", raw: "projects.first.client", wantErr: true},
		{name: "negative index", raw: "projects.-1.client", wantErr: true},
		{name: "empty field", raw: "education.0.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.raw)
			if tt.wantErr {
				var pe *PathError
				assert.ErrorAs(t, err, &pe)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.raw, got.String())
		})
	}
}
