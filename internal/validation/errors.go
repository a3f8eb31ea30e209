// Package validation decides whether each profile section is complete enough
// to finish the wizard and produces the user-facing review report.
package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
)

// Error represents a general validation error
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IncompleteError is returned when completion is attempted while one or more
// sections fail their predicate. Messages line up with Failing.
type IncompleteError struct {
	Failing  []types.Section
	Messages []string
}

func (e *IncompleteError) Error() string {
	names := make([]string, len(e.Failing))
	for i, s := range e.Failing {
		names[i] = string(s)
	}
	return fmt.Sprintf("cannot complete profile: incomplete sections: %s", strings.Join(names, ", "))
}
