package validation

import (
	"regexp"

	"github.com/jonathan/resume-wizard/internal/listedit"
	"github.com/jonathan/resume-wizard/internal/types"
)

// MinSkills is the smallest non-empty skills list that counts as complete.
const MinSkills = 3

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Snapshot is a read-only view of every entity the wizard owns.
type Snapshot struct {
	BasicInfo   types.BasicInfo        `json:"basic_info"`
	Experiences []types.WorkExperience `json:"experiences"`
	Projects    []types.Project        `json:"projects"`
	Education   []types.Education      `json:"education"`
	Skills      []types.Skill          `json:"skills"`
}

// ValidEmail reports whether email looks like local@domain.tld.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// BasicInfoComplete requires a name, a well-formed email and a phone number.
// Location and headline are never required.
func BasicInfoComplete(info types.BasicInfo) bool {
	return info.FullName != "" && ValidEmail(info.Email) && info.Phone != ""
}

// ExperienceComplete is true for an empty list or one with at least one entry
// naming both a job title and a company.
func ExperienceComplete(list []types.WorkExperience) bool {
	return len(list) == 0 || listedit.ExperienceSchema.AnyComplete(list)
}

// ProjectsComplete is true for an empty list or one with at least one entry
// naming both a title and a client.
func ProjectsComplete(list []types.Project) bool {
	return len(list) == 0 || listedit.ProjectSchema.AnyComplete(list)
}

// EducationComplete is true for an empty list or one with at least one entry
// naming both a degree and an institution.
func EducationComplete(list []types.Education) bool {
	return len(list) == 0 || listedit.EducationSchema.AnyComplete(list)
}

// SkillsComplete is true for an empty list or one with at least MinSkills entries.
func SkillsComplete(list []types.Skill) bool {
	return len(list) == 0 || len(list) >= MinSkills
}

// SectionComplete evaluates the predicate for one section. Review and
// complete carry no data and always pass.
func (s *Snapshot) SectionComplete(section types.Section) bool {
	switch section {
	case types.SectionBasic:
		return BasicInfoComplete(s.BasicInfo)
	case types.SectionExperience:
		return ExperienceComplete(s.Experiences)
	case types.SectionProjects:
		return ProjectsComplete(s.Projects)
	case types.SectionEducation:
		return EducationComplete(s.Education)
	case types.SectionSkills:
		return SkillsComplete(s.Skills)
	default:
		return true
	}
}

// Failing lists the sections whose predicate fails, in navigation order.
func (s *Snapshot) Failing() []types.Section {
	var failing []types.Section
	for _, section := range types.SectionOrder {
		if !s.SectionComplete(section) {
			failing = append(failing, section)
		}
	}
	return failing
}

// CanComplete is the conjunction of all five section predicates.
func (s *Snapshot) CanComplete() bool {
	return len(s.Failing()) == 0
}

// CheckComplete returns an *IncompleteError naming every failing section, or
// nil when the profile can be completed.
func (s *Snapshot) CheckComplete() error {
	failing := s.Failing()
	if len(failing) == 0 {
		return nil
	}
	msgs := make([]string, len(failing))
	for i, section := range failing {
		msgs[i] = completionMessages[section]
	}
	return &IncompleteError{Failing: failing, Messages: msgs}
}

// Summary builds the completion summary: a copy of basic info plus counts.
func (s *Snapshot) Summary() types.ProfileSummary {
	return types.ProfileSummary{
		BasicInfo:        s.BasicInfo,
		ExperiencesCount: len(s.Experiences),
		ProjectsCount:    len(s.Projects),
		EducationCount:   len(s.Education),
		SkillsCount:      len(s.Skills),
	}
}
