package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-wizard/internal/listedit"
	"github.com/jonathan/resume-wizard/internal/progress"
	"github.com/jonathan/resume-wizard/internal/selection"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/validation"
)

const (
	DefaultAutosaveDelay = 2 * time.Second
	DefaultMilestoneTTL  = 4 * time.Second
	DefaultErrorTTL      = 5 * time.Second

	saveTimeout = 10 * time.Second
)

// Saver persists auto-save snapshots. The settings stores satisfy it.
type Saver interface {
	Put(ctx context.Context, key string, value []byte) error
}

// CompleteFunc receives the summary when the wizard completes. A non-nil
// error leaves the session open.
type CompleteFunc func(ctx context.Context, summary types.ProfileSummary) error

// Options configure a Controller. Zero durations take the defaults.
type Options struct {
	ID         string
	Resume     types.ResumeFile
	Logger     *slog.Logger
	Scheduler  Scheduler
	Saver      Saver
	OnComplete CompleteFunc
	OnEvent    func(Event)

	AutosaveDelay time.Duration
	MilestoneTTL  time.Duration
	ErrorTTL      time.Duration

	Now func() time.Time
}

// ContextMenu is the open "send to field" menu of the floating layout.
type ContextMenu struct {
	Text string `json:"text"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Controller is the sole owner and mutator of one session's data. It is not
// safe for concurrent use; callers serialize access, and the Scheduler must
// run deferred callbacks under the same serialization.
type Controller struct {
	id   string
	opts Options
	log  *slog.Logger
	now  func() time.Time

	section     types.Section
	basic       types.BasicInfo
	experiences []types.WorkExperience
	projects    []types.Project
	education   []types.Education
	skills      []types.Skill
	resume      types.ResumeFile

	sel      *selection.Tracker
	active   map[types.Section]int
	drags    map[types.Section]*listedit.Drag
	floating bool
	menu     *ContextMenu

	milestones *progress.Tracker
	notes      map[NotificationKind]*Notification
	noteCancel map[NotificationKind]func()
	saveCancel func()
	lastSaved  time.Time

	completed bool
	closed    bool
	summary   *types.ProfileSummary
}

// New starts a session on the basic section with every list empty.
func New(opts Options) *Controller {
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewTimerScheduler(&sync.Mutex{})
	}
	if opts.AutosaveDelay <= 0 {
		opts.AutosaveDelay = DefaultAutosaveDelay
	}
	if opts.MilestoneTTL <= 0 {
		opts.MilestoneTTL = DefaultMilestoneTTL
	}
	if opts.ErrorTTL <= 0 {
		opts.ErrorTTL = DefaultErrorTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Controller{
		id:         opts.ID,
		opts:       opts,
		log:        opts.Logger.With("session_id", opts.ID),
		now:        opts.Now,
		resume:     opts.Resume,
		sel:        selection.NewTracker(),
		notes:      make(map[NotificationKind]*Notification),
		noteCancel: make(map[NotificationKind]func()),
	}
	c.resetData()
	return c
}

// ID returns the session id.
func (c *Controller) ID() string { return c.id }

// Section returns the current section.
func (c *Controller) Section() types.Section { return c.section }

// Completed reports whether the session has ended in completion.
func (c *Controller) Completed() bool { return c.completed }

// Resume returns the resume currently shown next to the form.
func (c *Controller) Resume() types.ResumeFile { return c.resume }

func (c *Controller) resetData() {
	c.section = types.SectionBasic
	c.basic = types.BasicInfo{}
	c.experiences = []types.WorkExperience{}
	c.projects = []types.Project{}
	c.education = []types.Education{}
	c.skills = []types.Skill{}
	c.sel.Reset()
	c.active = make(map[types.Section]int)
	c.drags = make(map[types.Section]*listedit.Drag)
	c.menu = nil
	c.milestones = progress.NewTracker(0)
}

func (c *Controller) mutable(op string) error {
	if c.completed {
		return &StateError{Op: op, Message: "session is already complete"}
	}
	return nil
}

// Snapshot returns the validator's view of the current data.
func (c *Controller) Snapshot() validation.Snapshot {
	return validation.Snapshot{
		BasicInfo:   c.basic,
		Experiences: c.experiences,
		Projects:    c.projects,
		Education:   c.education,
		Skills:      c.skills,
	}
}

// Progress computes the completion percentage of the current data.
func (c *Controller) Progress() int {
	return progress.Compute(c.basic, c.experiences, c.skills)
}

// changed runs after every data edit: it checks for a crossed milestone and
// restarts the auto-save debounce.
func (c *Controller) changed() {
	if m, ok := c.milestones.Observe(c.Progress()); ok {
		c.log.Info("milestone reached", "threshold", m.Threshold)
		c.notify(NotifyMilestone, m.Message, nil, c.opts.MilestoneTTL)
		c.emit(EventMilestone, m)
	}
	c.scheduleSave()
}

// Advance moves to the next section in the fixed order. It does nothing on
// review.
func (c *Controller) Advance() error {
	if err := c.mutable("advance"); err != nil {
		return err
	}
	for i, s := range types.SectionOrder {
		if s == c.section && i+1 < len(types.SectionOrder) {
			c.enter(types.SectionOrder[i+1])
			return nil
		}
	}
	return nil
}

// Navigate jumps to any section. Sections are never gated on validity.
func (c *Controller) Navigate(section types.Section) error {
	if err := c.mutable("navigate"); err != nil {
		return err
	}
	if _, ok := types.ParseSection(string(section)); !ok {
		return &Error{Message: fmt.Sprintf("unknown section %q", section)}
	}
	c.enter(section)
	return nil
}

func (c *Controller) enter(section types.Section) {
	if section == c.section {
		return
	}
	for _, d := range c.drags {
		d.Reset()
	}
	c.section = section
}

// UpdateBasic sets one basic info field. Basic info fields always consume a
// pending selection.
func (c *Controller) UpdateBasic(field, value string) error {
	if err := c.mutable("update basic info"); err != nil {
		return err
	}
	if err := listedit.BasicInfoSchema.Set(&c.basic, field, value); err != nil {
		return err
	}
	c.sel.Assign()
	c.changed()
	return nil
}

// ClearBasic resets every basic info field to empty.
func (c *Controller) ClearBasic() error {
	if err := c.mutable("clear basic info"); err != nil {
		return err
	}
	c.basic = types.BasicInfo{}
	c.changed()
	return nil
}

// BasicInfo returns the current basic info.
func (c *Controller) BasicInfo() types.BasicInfo { return c.basic }

// Select replaces the pending snippet.
func (c *Controller) Select(text string) error {
	if err := c.mutable("select text"); err != nil {
		return err
	}
	c.sel.Select(text)
	return nil
}

// ClearSelection drops the pending snippet.
func (c *Controller) ClearSelection() {
	c.sel.Clear()
}

// Selected returns the pending snippet.
func (c *Controller) Selected() string { return c.sel.Selected() }

// IsMapped reports whether text overlaps a snippet already assigned to a field.
func (c *Controller) IsMapped(text string) bool { return c.sel.IsMapped(text) }

// Highlight splits text into mapped and unmapped segments.
func (c *Controller) Highlight(text string) []selection.Segment { return c.sel.Highlight(text) }

// Mapped returns every snippet assigned so far.
func (c *Controller) Mapped() []string { return c.sel.Mapped() }

// SetActive makes entry i of section the consumer of pending selections.
func (c *Controller) SetActive(section types.Section, i int) error {
	if err := c.mutable("set active entry"); err != nil {
		return err
	}
	e, err := c.entries(section)
	if err != nil {
		return err
	}
	if i < 0 || i >= e.Len() {
		return &StateError{Op: "set active entry", Message: fmt.Sprintf("%s has no entry %d", section, i)}
	}
	c.active[section] = i
	return nil
}

// Active returns the active entry of section.
func (c *Controller) Active(section types.Section) (int, bool) {
	i, ok := c.active[section]
	return i, ok
}

// ApplySelection writes the pending snippet into field of the current
// section: basic info directly, list sections through their active entry.
func (c *Controller) ApplySelection(field string) error {
	if err := c.mutable("apply selection"); err != nil {
		return err
	}
	text := c.sel.Selected()
	if text == "" {
		return &StateError{Op: "apply selection", Message: "no text selected"}
	}

	switch {
	case c.section == types.SectionBasic:
		return c.UpdateBasic(field, text)
	case c.section.IsList():
		i, ok := c.active[c.section]
		if !ok {
			return &StateError{Op: "apply selection", Message: fmt.Sprintf("no active entry in %s", c.section)}
		}
		return c.UpdateEntry(c.section, i, field, text)
	default:
		return &StateError{Op: "apply selection", Message: fmt.Sprintf("section %s has no fields", c.section)}
	}
}

// AddEntry appends an empty entry to section and makes it active.
func (c *Controller) AddEntry(section types.Section) (int, error) {
	if err := c.mutable("add entry"); err != nil {
		return 0, err
	}
	e, err := c.entries(section)
	if err != nil {
		return 0, err
	}
	e.Append()
	i := e.Len() - 1
	c.active[section] = i
	c.changed()
	return i, nil
}

// RemoveEntry deletes entry i. Out-of-range indices are ignored.
func (c *Controller) RemoveEntry(section types.Section, i int) error {
	if err := c.mutable("remove entry"); err != nil {
		return err
	}
	e, err := c.entries(section)
	if err != nil {
		return err
	}
	if i < 0 || i >= e.Len() {
		return nil
	}
	e.RemoveAt(i)
	c.shiftAfterRemove(section, i)
	c.changed()
	return nil
}

// UpdateEntry sets one field of entry i. Out-of-range indices are ignored. A
// string value consumes the pending selection, whichever entry it lands in.
func (c *Controller) UpdateEntry(section types.Section, i int, field string, value any) error {
	if err := c.mutable("update entry"); err != nil {
		return err
	}
	e, err := c.entries(section)
	if err != nil {
		return err
	}
	if i < 0 || i >= e.Len() {
		return nil
	}
	if err := e.UpdateAt(i, field, value); err != nil {
		return err
	}
	if _, isText := value.(string); isText {
		c.sel.Assign()
	}
	c.changed()
	return nil
}

// MoveEntry reinserts entry from at position to. Both the step buttons and
// drag-and-drop end here.
func (c *Controller) MoveEntry(section types.Section, from, to int) error {
	if err := c.mutable("move entry"); err != nil {
		return err
	}
	e, err := c.entries(section)
	if err != nil {
		return err
	}
	n := e.Len()
	if from == to || from < 0 || from >= n || to < 0 || to >= n {
		return nil
	}
	e.Move(from, to)
	c.shiftAfterMove(section, from, to)
	c.changed()
	return nil
}

// StepEntry moves entry i one position up or down.
func (c *Controller) StepEntry(section types.Section, i int, dir listedit.Direction) error {
	switch dir {
	case listedit.Up:
		return c.MoveEntry(section, i, i-1)
	case listedit.Down:
		return c.MoveEntry(section, i, i+1)
	default:
		return &Error{Message: fmt.Sprintf("unknown direction %q", dir)}
	}
}

// DuplicateEntry appends a copy of entry i.
func (c *Controller) DuplicateEntry(section types.Section, i int) error {
	if err := c.mutable("duplicate entry"); err != nil {
		return err
	}
	e, err := c.entries(section)
	if err != nil {
		return err
	}
	if i < 0 || i >= e.Len() {
		return nil
	}
	e.Duplicate(i)
	c.changed()
	return nil
}

// ClearEntry resets entry i to empty values in place.
func (c *Controller) ClearEntry(section types.Section, i int) error {
	if err := c.mutable("clear entry"); err != nil {
		return err
	}
	e, err := c.entries(section)
	if err != nil {
		return err
	}
	if i < 0 || i >= e.Len() {
		return nil
	}
	e.ClearAt(i)
	c.changed()
	return nil
}

// ClearEntries empties section.
func (c *Controller) ClearEntries(section types.Section) error {
	if err := c.mutable("clear entries"); err != nil {
		return err
	}
	e, err := c.entries(section)
	if err != nil {
		return err
	}
	e.ClearAll()
	delete(c.active, section)
	c.changed()
	return nil
}

// StartDrag begins dragging entry i of section.
func (c *Controller) StartDrag(section types.Section, i int) error {
	if err := c.mutable("drag entry"); err != nil {
		return err
	}
	if _, err := c.entries(section); err != nil {
		return err
	}
	c.drag(section).Start(i)
	return nil
}

// DragOver records the entry under the pointer.
func (c *Controller) DragOver(section types.Section, i int) error {
	if _, err := c.entries(section); err != nil {
		return err
	}
	c.drag(section).Over(i)
	return nil
}

// DropEntry finishes the drag at target and applies the move.
func (c *Controller) DropEntry(section types.Section, target int) error {
	if _, err := c.entries(section); err != nil {
		return err
	}
	from, to, ok := c.drag(section).Drop(target)
	if !ok {
		return nil
	}
	return c.MoveEntry(section, from, to)
}

// EndDrag cancels a drag without moving anything.
func (c *Controller) EndDrag(section types.Section) {
	if d, ok := c.drags[section]; ok {
		d.End()
	}
}

func (c *Controller) drag(section types.Section) *listedit.Drag {
	d, ok := c.drags[section]
	if !ok {
		d = &listedit.Drag{}
		c.drags[section] = d
	}
	return d
}

// AddSkills splits text on commas and newlines and appends one skill per
// name. Any pending selection is consumed.
func (c *Controller) AddSkills(text string) (int, error) {
	if err := c.mutable("add skills"); err != nil {
		return 0, err
	}
	names := listedit.SplitSkills(text)
	if len(names) == 0 {
		return 0, nil
	}
	c.skills = listedit.AppendSkills(c.skills, names)
	c.sel.Assign()
	c.changed()
	return len(names), nil
}

// AddSkillsFromSelection adds skills parsed from the pending snippet.
func (c *Controller) AddSkillsFromSelection() (int, error) {
	if !c.sel.Pending() {
		return 0, &StateError{Op: "add skills from selection", Message: "no text selected"}
	}
	return c.AddSkills(c.sel.Selected())
}

// SetFloating switches between the inline and floating layouts. Leaving the
// floating layout closes the context menu.
func (c *Controller) SetFloating(floating bool) {
	c.floating = floating
	if !floating {
		c.menu = nil
	}
}

// Floating reports whether the floating layout is on.
func (c *Controller) Floating() bool { return c.floating }

// OpenContextMenu opens the "send to field" menu for text at (x, y). It is
// only available in the floating layout.
func (c *Controller) OpenContextMenu(text string, x, y int) error {
	if err := c.mutable("open context menu"); err != nil {
		return err
	}
	if !c.floating {
		return &StateError{Op: "open context menu", Message: "context menu requires the floating layout"}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return &Error{Message: "context menu needs selected text"}
	}
	c.menu = &ContextMenu{Text: text, X: x, Y: y}
	return nil
}

// CloseContextMenu closes the menu, if open.
func (c *Controller) CloseContextMenu() {
	c.menu = nil
}

// Menu returns the open context menu, or nil.
func (c *Controller) Menu() *ContextMenu { return c.menu }

// SendToField writes the context menu text into the field addressed by path
// and closes the menu. A list entry at index == len is created on demand.
func (c *Controller) SendToField(path string) error {
	if err := c.mutable("send to field"); err != nil {
		return err
	}
	if c.menu == nil {
		return &StateError{Op: "send to field", Message: "no context menu open"}
	}
	p, err := selection.ParsePath(path)
	if err != nil {
		return err
	}
	text := c.menu.Text

	if p.Section == types.SectionBasic {
		if err := listedit.BasicInfoSchema.Set(&c.basic, p.Field, text); err != nil {
			return err
		}
	} else {
		e, err := c.entries(p.Section)
		if err != nil {
			return err
		}
		if err := e.Check(p.Field, text); err != nil {
			return err
		}
		if !e.Ensure(p.Index) {
			return &selection.PathError{Path: path, Message: fmt.Sprintf("%s has only %d entries", p.Section, e.Len())}
		}
		if err := e.UpdateAt(p.Index, p.Field, text); err != nil {
			return err
		}
	}

	c.sel.AddMapped(text)
	c.menu = nil
	c.log.Debug("sent text to field", "path", p.String())
	c.changed()
	return nil
}

// Complete validates every section. On failure it raises a transient error
// notification listing each failing section and returns an
// *validation.IncompleteError. On success it hands the summary to
// OnComplete and ends the session.
func (c *Controller) Complete(ctx context.Context) (types.ProfileSummary, error) {
	if err := c.mutable("complete"); err != nil {
		return types.ProfileSummary{}, err
	}

	snap := c.Snapshot()
	if err := snap.CheckComplete(); err != nil {
		var incomplete *validation.IncompleteError
		if errors.As(err, &incomplete) {
			c.notify(NotifyCompletionError, "Cannot complete profile", incomplete.Messages, c.opts.ErrorTTL)
			c.emit(EventValidationError, incomplete.Messages)
			c.log.Info("completion blocked", "failing", incomplete.Failing)
		}
		return types.ProfileSummary{}, err
	}

	summary := snap.Summary()
	if c.opts.OnComplete != nil {
		if err := c.opts.OnComplete(ctx, summary); err != nil {
			c.log.Error("completion handoff failed", "error", err)
			return types.ProfileSummary{}, &HandoffError{Cause: err}
		}
	}

	c.completed = true
	c.summary = &summary
	c.section = types.SectionComplete
	c.Close()
	c.log.Info("profile completed",
		"experiences", summary.ExperiencesCount,
		"projects", summary.ProjectsCount,
		"education", summary.EducationCount,
		"skills", summary.SkillsCount,
	)
	c.emit(EventCompleted, summary)
	return summary, nil
}

// Summary returns the completion summary once the session is complete.
func (c *Controller) Summary() (types.ProfileSummary, bool) {
	if c.summary == nil {
		return types.ProfileSummary{}, false
	}
	return *c.summary, true
}

// ChangeResume swaps the resume file. With reset set, every list, basic info
// and the mapped set are emptied and navigation returns to basic; otherwise
// the data is kept as is.
func (c *Controller) ChangeResume(file types.ResumeFile, reset bool) error {
	if err := c.mutable("change resume"); err != nil {
		return err
	}
	previous := c.resume
	c.resume = file
	if reset {
		c.resetData()
		c.scheduleSave()
	}
	c.log.Info("resume replaced", "previous", previous.Filename, "filename", file.Filename, "cleared", reset)
	c.emit(EventResumeChanged, map[string]any{"resume": file, "cleared": reset})
	return nil
}

// Close cancels every pending timer and resets drag state. It is called when
// the session completes or its owner discards it. A timer callback that
// already fired and runs after Close does nothing.
func (c *Controller) Close() {
	c.closed = true
	if c.saveCancel != nil {
		c.saveCancel()
		c.saveCancel = nil
	}
	for kind, cancel := range c.noteCancel {
		cancel()
		delete(c.noteCancel, kind)
		delete(c.notes, kind)
	}
	for _, d := range c.drags {
		d.Reset()
	}
}
