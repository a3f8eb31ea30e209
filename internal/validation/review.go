package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
)

// Status is the review state of a section.
type Status string

const (
	StatusComplete   Status = "complete"
	StatusNotAdded   Status = "not_added"
	StatusIncomplete Status = "incomplete"
)

// ReadyMessage is shown when every section passes.
const ReadyMessage = "All required information is complete. Click Complete Profile to finish."

var completionMessages = map[types.Section]string{
	types.SectionBasic:      "Complete Basic Information with valid email (required)",
	types.SectionExperience: "Complete started experience entries",
	types.SectionProjects:   "Complete started project entries",
	types.SectionEducation:  "Complete started education entries",
	types.SectionSkills:     "Add at least 3 skills or remove started skills",
}

var actionMessages = map[types.Section]string{
	types.SectionBasic:      "Please complete Basic Information with valid email (required).",
	types.SectionExperience: "Please complete started experience entries.",
	types.SectionProjects:   "Please complete started project entries.",
	types.SectionEducation:  "Please complete started education entries.",
	types.SectionSkills:     "Please add at least 3 skills if you want to include them.",
}

var notAddedMessages = map[types.Section]string{
	types.SectionExperience: "No work experience added yet.",
	types.SectionProjects:   "No projects added yet.",
	types.SectionEducation:  "No education added yet.",
	types.SectionSkills:     "No skills added yet.",
}

// ReviewItem is one row of the review screen.
type ReviewItem struct {
	Section  types.Section `json:"section"`
	Label    string        `json:"label"`
	Count    int           `json:"count"`
	Optional bool          `json:"optional"`
	Status   Status        `json:"status"`
	Message  string        `json:"message,omitempty"`
}

// Report is the whole review screen.
type Report struct {
	Items   []ReviewItem `json:"items"`
	Ready   bool         `json:"ready"`
	Message string       `json:"message"`
}

// Review builds the per-section review report.
func (s *Snapshot) Review() Report {
	items := []ReviewItem{s.basicItem()}
	for _, section := range types.ListSections {
		items = append(items, s.listItem(section))
	}

	var actions []string
	for _, section := range s.Failing() {
		actions = append(actions, actionMessages[section])
	}

	report := Report{Items: items, Ready: len(actions) == 0, Message: ReadyMessage}
	if !report.Ready {
		report.Message = strings.Join(actions, " ")
	}
	return report
}

func (s *Snapshot) basicItem() ReviewItem {
	item := ReviewItem{Section: types.SectionBasic, Label: types.SectionBasic.Label(), Count: 1, Status: StatusComplete}
	if !BasicInfoComplete(s.BasicInfo) {
		item.Status = StatusIncomplete
		item.Message = "Required fields missing or invalid. Please ensure Name, valid Email, and Phone are filled."
	}
	return item
}

func (s *Snapshot) listItem(section types.Section) ReviewItem {
	item := ReviewItem{Section: section, Label: section.Label(), Count: s.count(section), Optional: true}
	switch {
	case item.Count == 0:
		item.Status = StatusNotAdded
		item.Message = notAddedMessages[section]
	case s.SectionComplete(section):
		item.Status = StatusComplete
	default:
		item.Status = StatusIncomplete
		item.Message = incompleteMessage(section, item.Count)
	}
	return item
}

func (s *Snapshot) count(section types.Section) int {
	switch section {
	case types.SectionExperience:
		return len(s.Experiences)
	case types.SectionProjects:
		return len(s.Projects)
	case types.SectionEducation:
		return len(s.Education)
	case types.SectionSkills:
		return len(s.Skills)
	default:
		return 0
	}
}

func incompleteMessage(section types.Section, count int) string {
	switch section {
	case types.SectionExperience:
		return "Please complete the experience entries you've started."
	case types.SectionProjects:
		return "Please complete the project entries you've started."
	case types.SectionEducation:
		return "Please complete the education entries you've started."
	case types.SectionSkills:
		return fmt.Sprintf("Please add at least %d skills (currently %d).", MinSkills, count)
	default:
		return ""
	}
}
