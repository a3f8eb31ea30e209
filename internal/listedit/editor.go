package listedit

import "slices"

// Direction is a single-step move.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Editor applies list operations for one entity type. Every operation returns
// a new slice and leaves its argument untouched. Out-of-range indices are
// no-ops, never errors.
type Editor[T any] struct {
	schema *Schema[T]
}

// New creates an Editor over schema.
func New[T any](schema *Schema[T]) *Editor[T] {
	return &Editor[T]{schema: schema}
}

// Schema returns the schema the editor was built with.
func (e *Editor[T]) Schema() *Schema[T] {
	return e.schema
}

func inRange[T any](list []T, i int) bool {
	return i >= 0 && i < len(list)
}

// Append adds an empty record at the end with display_order = len(list).
func (e *Editor[T]) Append(list []T) []T {
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return append(out, e.schema.Blank(len(list)))
}

// RemoveAt deletes the record at i. Remaining display orders are not renumbered.
func (e *Editor[T]) RemoveAt(list []T, i int) []T {
	if !inRange(list, i) {
		return clone(list)
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

// UpdateAt sets one field of the record at i. An unknown field or a bad value
// is reported; an out-of-range index is silently ignored.
func (e *Editor[T]) UpdateAt(list []T, i int, field string, value any) ([]T, error) {
	out := clone(list)
	var probe T
	if inRange(list, i) {
		probe = out[i]
	}
	if err := e.schema.Set(&probe, field, value); err != nil {
		return out, err
	}
	if inRange(list, i) {
		out[i] = probe
	}
	return out, nil
}

// Move removes the record at from and reinserts it at to, shifting the
// records in between by one. Both step and drag-and-drop reordering use it.
func (e *Editor[T]) Move(list []T, from, to int) []T {
	out := clone(list)
	if from == to || !inRange(list, from) || !inRange(list, to) {
		return out
	}
	rec := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, rec)
}

// MoveStep moves the record at i one position up or down.
func (e *Editor[T]) MoveStep(list []T, i int, dir Direction) []T {
	switch dir {
	case Up:
		return e.Move(list, i, i-1)
	case Down:
		return e.Move(list, i, i+1)
	default:
		return clone(list)
	}
}

// Duplicate appends a copy of the record at i with display_order = len(list).
func (e *Editor[T]) Duplicate(list []T, i int) []T {
	if !inRange(list, i) {
		return clone(list)
	}
	dup := list[i]
	*e.schema.Order(&dup) = len(list)
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return append(out, dup)
}

// ClearAt resets the record at i to empty values with display_order = i.
func (e *Editor[T]) ClearAt(list []T, i int) []T {
	out := clone(list)
	if !inRange(list, i) {
		return out
	}
	out[i] = e.schema.Blank(i)
	return out
}

// ClearAll returns an empty list.
func (e *Editor[T]) ClearAll(_ []T) []T {
	return []T{}
}

// Ensure returns list with an entry present at i, appending a blank record
// when i == len(list). It reports false for any other missing index.
func (e *Editor[T]) Ensure(list []T, i int) ([]T, bool) {
	switch {
	case inRange(list, i):
		return clone(list), true
	case i == len(list):
		return e.Append(list), true
	default:
		return clone(list), false
	}
}

// Sanitize returns a copy of list with every record passed through the
// schema's Sanitize. Imported lists go through it.
func (e *Editor[T]) Sanitize(list []T) []T {
	out := make([]T, 0, len(list))
	for _, rec := range list {
		out = append(out, e.schema.Sanitize(rec))
	}
	return out
}

// clone copies list into a fresh, never-nil slice.
func clone[T any](list []T) []T {
	return append(make([]T, 0, len(list)), list...)
}
