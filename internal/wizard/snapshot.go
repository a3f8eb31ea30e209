package wizard

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-wizard/internal/listedit"
	"github.com/jonathan/resume-wizard/internal/schemas"
	"github.com/jonathan/resume-wizard/internal/types"
)

// StateVersion is written into every exported State.
const StateVersion = 1

// State is the portable form of a session's data, used for auto-save and for
// export and import.
type State struct {
	Version     int                    `json:"version"`
	Section     types.Section          `json:"section"`
	BasicInfo   types.BasicInfo        `json:"basic_info"`
	Experiences []types.WorkExperience `json:"experiences"`
	Projects    []types.Project        `json:"projects"`
	Education   []types.Education      `json:"education"`
	Skills      []types.Skill          `json:"skills"`
	Mapped      []string               `json:"mapped"`
}

// Export copies the session's data into a State.
func (c *Controller) Export() State {
	section := c.section
	if section == types.SectionComplete {
		section = types.SectionReview
	}
	return State{
		Version:     StateVersion,
		Section:     section,
		BasicInfo:   c.basic,
		Experiences: cloneList(c.experiences),
		Projects:    cloneList(c.projects),
		Education:   cloneList(c.education),
		Skills:      cloneList(c.skills),
		Mapped:      nonNil(c.sel.Mapped()),
	}
}

// Import replaces the session's data with s. Records are sanitized the way
// field updates are: a current job has no end date and a project status
// outside the enum becomes in_progress. The pending selection, active entries
// and milestone baseline are reset; no milestone fires for imported progress.
func (c *Controller) Import(s State) error {
	if err := c.mutable("import"); err != nil {
		return err
	}
	section, ok := types.ParseSection(string(s.Section))
	if !ok {
		return &Error{Message: fmt.Sprintf("unknown section %q", s.Section)}
	}

	c.resetData()
	c.section = section
	c.basic = s.BasicInfo
	c.experiences = listedit.Experiences.Sanitize(s.Experiences)
	c.projects = listedit.Projects.Sanitize(s.Projects)
	c.education = listedit.Educations.Sanitize(s.Education)
	c.skills = listedit.Skills.Sanitize(s.Skills)
	c.sel.Restore(s.Mapped)
	c.milestones.Observe(c.Progress())
	c.scheduleSave()
	return nil
}

// ImportJSON validates data against the session snapshot schema and imports it.
func (c *Controller) ImportJSON(data []byte) error {
	if err := schemas.ValidateSnapshot(data); err != nil {
		return err
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return &Error{Message: "failed to decode snapshot", Cause: err}
	}
	return c.Import(s)
}

func cloneList[T any](list []T) []T {
	return append(make([]T, 0, len(list)), list...)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
