// Package wizard owns one profile-building session: section navigation, the
// entity lists, the selection tracker, progress milestones and completion.
package wizard

import "fmt"

// Error represents a request the wizard cannot act on, such as naming a
// section that holds no entries.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("wizard error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("wizard error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// StateError reports an operation that is valid in general but not in the
// session's current state.
type StateError struct {
	Op      string
	Message string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s: %s", e.Op, e.Message)
}

// HandoffError wraps a failure of the completion hook. The session stays open
// so completion can be retried.
type HandoffError struct {
	Cause error
}

func (e *HandoffError) Error() string {
	return fmt.Sprintf("completion handoff failed: %v", e.Cause)
}

func (e *HandoffError) Unwrap() error {
	return e.Cause
}
