package selection

import (
	"slices"
	"strings"
)

// Tracker holds the pending snippet and the set of mapped snippets. The mapped
// set only grows: clearing a field never retracts its text.
type Tracker struct {
	selected string
	mapped   map[string]struct{}
	order    []string
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{mapped: make(map[string]struct{})}
}

// Select replaces the pending snippet. Surrounding whitespace is dropped and a
// blank snippet clears the selection.
func (t *Tracker) Select(text string) {
	t.selected = strings.TrimSpace(text)
}

// Selected returns the pending snippet, or "" when none is pending.
func (t *Tracker) Selected() string {
	return t.selected
}

// Pending reports whether a snippet is waiting to be assigned.
func (t *Tracker) Pending() bool {
	return t.selected != ""
}

// Clear drops the pending snippet without mapping it.
func (t *Tracker) Clear() {
	t.selected = ""
}

// Assign moves the pending snippet into the mapped set and clears the
// selection. It returns the snippet and false when nothing was pending.
func (t *Tracker) Assign() (string, bool) {
	if t.selected == "" {
		return "", false
	}
	text := t.selected
	t.AddMapped(text)
	t.selected = ""
	return text, true
}

// AddMapped inserts text into the mapped set. Duplicates are ignored.
func (t *Tracker) AddMapped(text string) {
	if text == "" {
		return
	}
	if t.mapped == nil {
		t.mapped = make(map[string]struct{})
	}
	if _, ok := t.mapped[text]; ok {
		return
	}
	t.mapped[text] = struct{}{}
	t.order = append(t.order, text)
}

// IsMapped reports whether candidate contains a mapped snippet or is contained
// in one. The match is loose and only meant for highlighting.
func (t *Tracker) IsMapped(candidate string) bool {
	for _, m := range t.order {
		if strings.Contains(candidate, m) || strings.Contains(m, candidate) {
			return true
		}
	}
	return false
}

// Mapped returns the mapped snippets in the order they were first assigned.
func (t *Tracker) Mapped() []string {
	return slices.Clone(t.order)
}

// Len returns the size of the mapped set.
func (t *Tracker) Len() int {
	return len(t.order)
}

// Reset empties both the selection and the mapped set.
func (t *Tracker) Reset() {
	t.selected = ""
	t.mapped = make(map[string]struct{})
	t.order = nil
}

// Restore replaces the mapped set with snippets, keeping their order.
func (t *Tracker) Restore(snippets []string) {
	t.Reset()
	for _, s := range snippets {
		t.AddMapped(s)
	}
}
