package listedit

// Drag is the short-lived state of a drag-and-drop reorder. The zero value is
// idle. It is reset on drop, on drag end and when its owner is torn down.
type Drag struct {
	dragged int
	over    int
	active  bool
}

// Start records the index being dragged.
func (d *Drag) Start(i int) {
	d.dragged = i
	d.over = -1
	d.active = true
}

// Over records the index currently under the pointer.
func (d *Drag) Over(i int) {
	if d.active {
		d.over = i
	}
}

// Dragged returns the dragged index, if a drag is in progress.
func (d *Drag) Dragged() (int, bool) {
	return d.dragged, d.active
}

// OverIndex returns the hovered index, if any.
func (d *Drag) OverIndex() (int, bool) {
	return d.over, d.active && d.over >= 0
}

// Drop ends the drag at target and returns the move to apply. ok is false when
// no drag was in progress or the record was dropped onto itself.
func (d *Drag) Drop(target int) (from, to int, ok bool) {
	from, active := d.dragged, d.active
	d.Reset()
	if !active || from == target {
		return 0, 0, false
	}
	return from, target, true
}

// End cancels the drag without moving anything.
func (d *Drag) End() {
	d.Reset()
}

// Reset returns the drag to idle.
func (d *Drag) Reset() {
	*d = Drag{}
}

// DropOn applies a finished drag to list through Move.
func (e *Editor[T]) DropOn(list []T, d *Drag, target int) []T {
	from, to, ok := d.Drop(target)
	if !ok {
		return clone(list)
	}
	return e.Move(list, from, to)
}
