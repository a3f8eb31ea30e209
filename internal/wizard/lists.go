package wizard

import (
	"fmt"

	"github.com/jonathan/resume-wizard/internal/listedit"
	"github.com/jonathan/resume-wizard/internal/types"
)

// entries adapts one of the controller's typed lists to the operations the
// controller needs, replacing the whole slice after every edit.
type entries interface {
	Len() int
	Check(field string, value any) error
	Append()
	RemoveAt(i int)
	UpdateAt(i int, field string, value any) error
	Move(from, to int)
	MoveStep(i int, dir listedit.Direction)
	Duplicate(i int)
	ClearAt(i int)
	ClearAll()
	Ensure(i int) bool
}

type binding[T any] struct {
	ed   *listedit.Editor[T]
	list *[]T
}

func (b binding[T]) Len() int { return len(*b.list) }

func (b binding[T]) Check(field string, value any) error {
	var probe T
	return b.ed.Schema().Set(&probe, field, value)
}

func (b binding[T]) Append()        { *b.list = b.ed.Append(*b.list) }
func (b binding[T]) RemoveAt(i int) { *b.list = b.ed.RemoveAt(*b.list, i) }

func (b binding[T]) UpdateAt(i int, field string, value any) error {
	out, err := b.ed.UpdateAt(*b.list, i, field, value)
	if err != nil {
		return err
	}
	*b.list = out
	return nil
}

func (b binding[T]) Move(from, to int) { *b.list = b.ed.Move(*b.list, from, to) }

func (b binding[T]) MoveStep(i int, dir listedit.Direction) {
	*b.list = b.ed.MoveStep(*b.list, i, dir)
}

func (b binding[T]) Duplicate(i int) { *b.list = b.ed.Duplicate(*b.list, i) }
func (b binding[T]) ClearAt(i int)   { *b.list = b.ed.ClearAt(*b.list, i) }
func (b binding[T]) ClearAll()       { *b.list = b.ed.ClearAll(*b.list) }

func (b binding[T]) Ensure(i int) bool {
	out, ok := b.ed.Ensure(*b.list, i)
	*b.list = out
	return ok
}

func (c *Controller) entries(section types.Section) (entries, error) {
	switch section {
	case types.SectionExperience:
		return binding[types.WorkExperience]{ed: listedit.Experiences, list: &c.experiences}, nil
	case types.SectionProjects:
		return binding[types.Project]{ed: listedit.Projects, list: &c.projects}, nil
	case types.SectionEducation:
		return binding[types.Education]{ed: listedit.Educations, list: &c.education}, nil
	case types.SectionSkills:
		return binding[types.Skill]{ed: listedit.Skills, list: &c.skills}, nil
	default:
		return nil, &Error{Message: fmt.Sprintf("section %q has no entries", section)}
	}
}

// shiftAfterRemove keeps the active index pointing at the same entry after
// index i is removed.
func (c *Controller) shiftAfterRemove(section types.Section, i int) {
	active, ok := c.active[section]
	switch {
	case !ok:
	case active == i:
		delete(c.active, section)
	case active > i:
		c.active[section] = active - 1
	}
}

// shiftAfterMove keeps the active index pointing at the same entry after the
// entry at from is reinserted at to.
func (c *Controller) shiftAfterMove(section types.Section, from, to int) {
	active, ok := c.active[section]
	switch {
	case !ok:
	case active == from:
		c.active[section] = to
	case from < active && active <= to:
		c.active[section] = active - 1
	case to <= active && active < from:
		c.active[section] = active + 1
	}
}
