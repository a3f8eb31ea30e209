// Package listedit provides pure list transforms for the repeated profile sections.
package listedit

import "fmt"

// FieldError reports an update that names an unknown field or carries a value
// the field cannot hold.
type FieldError struct {
	Entity  string
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field error: %s.%s: %s", e.Entity, e.Field, e.Message)
}
