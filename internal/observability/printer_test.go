package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/validation"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary(types.ProfileSummary{
		BasicInfo:        types.BasicInfo{FullName: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100", Location: "London"},
		ExperiencesCount: 2,
		SkillsCount:      4,
	})
	output := buf.String()

	assert.Contains(t, output, "PROFILE SUMMARY")
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "ada@example.com")
	assert.Contains(t, output, "London")
	assert.Contains(t, output, "Experiences: 2")
	assert.Contains(t, output, "Skills:      4")
}

func TestPrintReview(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	snap := validation.Snapshot{
		BasicInfo: types.BasicInfo{FullName: "Ada", Email: "ada@example.com", Phone: "555"},
		Skills:    []types.Skill{{SkillName: "Go"}},
	}
	p.PrintReview(snap.Review(), 33)
	output := buf.String()

	assert.Contains(t, output, "PROFILE REVIEW")
	assert.Contains(t, output, "Progress: 33%")
	assert.Contains(t, output, "Basic Info")
	assert.Contains(t, output, "(optional)")
	assert.Contains(t, output, "✓")
	assert.Contains(t, output, "!")
}

func TestPrintMapped(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMapped([]string{"Tech Corp", "Senior Engineer", "a", "b", "c", "d", "e"})
	output := buf.String()

	assert.Contains(t, output, "MAPPED TEXT")
	assert.Contains(t, output, "Tech Corp")
	assert.Contains(t, output, "and 2 more")
}

func TestPrintMapped_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMapped(nil)
	assert.Empty(t, buf.String())
}
