package wizard

import (
	"time"

	"github.com/jonathan/resume-wizard/internal/progress"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/validation"
)

// View is everything a client needs to render the session.
type View struct {
	ID            string                 `json:"id"`
	Section       types.Section          `json:"section"`
	Resume        types.ResumeFile       `json:"resume"`
	BasicInfo     types.BasicInfo        `json:"basic_info"`
	EmailError    string                 `json:"email_error,omitempty"`
	Experiences   []types.WorkExperience `json:"experiences"`
	Projects      []types.Project        `json:"projects"`
	Education     []types.Education      `json:"education"`
	Skills        []types.Skill          `json:"skills"`
	SelectedText  string                 `json:"selected_text"`
	Mapped        []string               `json:"mapped"`
	Active        map[types.Section]int  `json:"active"`
	Floating      bool                   `json:"floating"`
	ContextMenu   *ContextMenu           `json:"context_menu,omitempty"`
	Progress      int                    `json:"progress"`
	Encouragement string                 `json:"encouragement"`
	TimeEstimate  string                 `json:"time_estimate"`
	Sections      map[types.Section]bool `json:"sections_complete"`
	CanComplete   bool                   `json:"can_complete"`
	Notifications []Notification         `json:"notifications"`
	LastSaved     *time.Time             `json:"last_saved,omitempty"`
	Completed     bool                   `json:"completed"`
	Summary       *types.ProfileSummary  `json:"summary,omitempty"`
}

// View renders the current state.
func (c *Controller) View() View {
	snap := c.Snapshot()
	pct := c.Progress()

	sections := make(map[types.Section]bool, len(types.SectionOrder))
	for _, s := range types.SectionOrder {
		sections[s] = snap.SectionComplete(s)
	}
	active := make(map[types.Section]int, len(c.active))
	for s, i := range c.active {
		active[s] = i
	}

	v := View{
		ID:            c.id,
		Section:       c.section,
		Resume:        c.resume,
		BasicInfo:     c.basic,
		EmailError:    validation.EmailError(c.basic.Email),
		Experiences:   cloneList(c.experiences),
		Projects:      cloneList(c.projects),
		Education:     cloneList(c.education),
		Skills:        cloneList(c.skills),
		SelectedText:  c.sel.Selected(),
		Mapped:        nonNil(c.sel.Mapped()),
		Active:        active,
		Floating:      c.floating,
		ContextMenu:   c.menu,
		Progress:      pct,
		Encouragement: progress.Encouragement(pct),
		TimeEstimate:  progress.TimeEstimate(c.basic, c.experiences, pct),
		Sections:      sections,
		CanComplete:   snap.CanComplete(),
		Notifications: c.Notifications(),
		Completed:     c.completed,
		Summary:       c.summary,
	}
	if saved, ok := c.LastSaved(); ok {
		v.LastSaved = &saved
	}
	return v
}

// Review builds the review report for the current data.
func (c *Controller) Review() validation.Report {
	snap := c.Snapshot()
	return snap.Review()
}
