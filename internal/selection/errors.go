// Package selection tracks the resume snippet the user has highlighted and the
// snippets already assigned to profile fields.
package selection

import "fmt"

// Error represents an error that occurs while routing a snippet to a field
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// PathError reports a malformed "<section>.<index>.<field>" target
type PathError struct {
	Path    string
	Message string
	Cause   error
}

func (e *PathError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid field path %q: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid field path %q: %s", e.Path, e.Message)
}

func (e *PathError) Unwrap() error {
	return e.Cause
}
