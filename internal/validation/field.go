package validation

// FieldStatus is the visual state of a single form field.
type FieldStatus string

const (
	FieldEmpty   FieldStatus = "empty"
	FieldFocused FieldStatus = "focused"
	FieldFilled  FieldStatus = "filled"
	FieldError   FieldStatus = "error"
)

// InvalidEmailMessage is shown under a non-empty malformed email.
const InvalidEmailMessage = "Please enter a valid email address"

// EmailError returns the field error for email. An empty email has no error;
// it is caught by the section predicate instead.
func EmailError(email string) string {
	if email == "" || ValidEmail(email) {
		return ""
	}
	return InvalidEmailMessage
}

// StatusOf resolves a field's status: an error wins, then a value, then focus.
func StatusOf(value string, focused bool, fieldErr string) FieldStatus {
	switch {
	case fieldErr != "":
		return FieldError
	case value != "":
		return FieldFilled
	case focused:
		return FieldFocused
	default:
		return FieldEmpty
	}
}
