package wizard

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
)

// NotificationKind separates the two transient messages the wizard shows.
// At most one notification of each kind is visible at a time.
type NotificationKind string

const (
	NotifyMilestone       NotificationKind = "milestone"
	NotifyCompletionError NotificationKind = "completion_error"
)

// Notification is a message that dismisses itself at ExpiresAt.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	Items     []string         `json:"items,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// EventType names what happened in an Event.
type EventType string

const (
	EventMilestone       EventType = "milestone"
	EventDismissed       EventType = "notification_dismissed"
	EventValidationError EventType = "validation_error"
	EventAutosave        EventType = "autosave"
	EventResumeChanged   EventType = "resume_changed"
	EventCompleted       EventType = "completed"
)

// Event is delivered to Options.OnEvent.
type Event struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	At        time.Time `json:"at"`
	Data      any       `json:"data,omitempty"`
}

// AutosaveKey is the settings key holding a session's latest auto-save.
func AutosaveKey(sessionID string) string {
	return "autosave/" + sessionID
}

func (c *Controller) emit(t EventType, data any) {
	if c.opts.OnEvent == nil {
		return
	}
	c.opts.OnEvent(Event{Type: t, SessionID: c.id, At: c.now(), Data: data})
}

// notify shows a notification of kind, replacing any visible one of the same
// kind, and schedules its dismissal after ttl.
func (c *Controller) notify(kind NotificationKind, msg string, items []string, ttl time.Duration) {
	if cancel, ok := c.noteCancel[kind]; ok {
		cancel()
	}
	now := c.now()
	n := &Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   msg,
		Items:     items,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	c.notes[kind] = n
	id := n.ID
	c.noteCancel[kind] = c.opts.Scheduler.Schedule(ttl, func() { c.dismiss(kind, id) })
}

func (c *Controller) dismiss(kind NotificationKind, id string) {
	n, ok := c.notes[kind]
	if c.closed || !ok || n.ID != id {
		return
	}
	delete(c.notes, kind)
	delete(c.noteCancel, kind)
	c.emit(EventDismissed, n)
}

// Notifications returns the visible notifications, oldest first.
func (c *Controller) Notifications() []Notification {
	out := make([]Notification, 0, len(c.notes))
	for _, n := range c.notes {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// LastSaved returns the time of the last successful auto-save.
func (c *Controller) LastSaved() (time.Time, bool) {
	return c.lastSaved, !c.lastSaved.IsZero()
}

// scheduleSave restarts the auto-save debounce.
func (c *Controller) scheduleSave() {
	if c.saveCancel != nil {
		c.saveCancel()
	}
	c.saveCancel = c.opts.Scheduler.Schedule(c.opts.AutosaveDelay, c.autosave)
}

func (c *Controller) autosave() {
	c.saveCancel = nil
	if c.completed || c.closed {
		return
	}

	if c.opts.Saver != nil {
		data, err := json.Marshal(c.Export())
		if err != nil {
			c.log.Error("failed to encode auto-save", "error", err)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := c.opts.Saver.Put(ctx, AutosaveKey(c.id), data); err != nil {
			c.log.Warn("auto-save failed", "error", err)
			return
		}
	}

	c.lastSaved = c.now()
	c.log.Info("auto-saved",
		"experiences", len(c.experiences),
		"projects", len(c.projects),
		"education", len(c.education),
		"skills", len(c.skills),
	)
	c.emit(EventAutosave, map[string]any{"saved_at": c.lastSaved})
}
