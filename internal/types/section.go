//nolint:revive // types is a standard Go package name pattern
package types

// Section is one step of the wizard.
type Section string

const (
	SectionBasic      Section = "basic"
	SectionExperience Section = "experience"
	SectionProjects   Section = "projects"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
	SectionReview     Section = "review"
	// SectionComplete is terminal and only reachable through completion.
	SectionComplete Section = "complete"
)

// SectionOrder is the linear navigation order used by "next".
var SectionOrder = []Section{
	SectionBasic,
	SectionExperience,
	SectionProjects,
	SectionEducation,
	SectionSkills,
	SectionReview,
}

// ListSections are the sections backed by a repeated list of entries.
var ListSections = []Section{
	SectionExperience,
	SectionProjects,
	SectionEducation,
	SectionSkills,
}

// ParseSection returns the navigable section named s.
// The terminal complete state is not navigable and is rejected.
func ParseSection(s string) (Section, bool) {
	for _, sec := range SectionOrder {
		if string(sec) == s {
			return sec, true
		}
	}
	return "", false
}

// IsList reports whether the section holds a list of entries.
func (s Section) IsList() bool {
	for _, sec := range ListSections {
		if sec == s {
			return true
		}
	}
	return false
}

// Label is the human-readable tab title.
func (s Section) Label() string {
	switch s {
	case SectionBasic:
		return "Basic Info"
	case SectionExperience:
		return "Experience"
	case SectionProjects:
		return "Projects"
	case SectionEducation:
		return "Education"
	case SectionSkills:
		return "Skills"
	case SectionReview:
		return "Review"
	case SectionComplete:
		return "Complete"
	default:
		return string(s)
	}
}
