package listedit

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// Kind is the value kind a field accepts.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindEnum
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindDate:
		return "date"
	case KindEnum:
		return "enum"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field describes one settable field of T.
type Field[T any] struct {
	Name      string
	Kind      Kind
	Options   []string // allowed values for KindEnum
	MaxLength int      // 0 means unlimited

	getText func(*T) string
	setText func(*T, string)
	getBool func(*T) bool
	setBool func(*T, bool)
}

// TextField declares a free-text field backed by a string.
func TextField[T any](name string, maxLength int, ptr func(*T) *string) Field[T] {
	return Field[T]{
		Name:      name,
		Kind:      KindText,
		MaxLength: maxLength,
		getText:   func(r *T) string { return *ptr(r) },
		setText:   func(r *T, v string) { *ptr(r) = v },
	}
}

// DateField declares a date field stored as a plain string.
func DateField[T any](name string, ptr func(*T) *string) Field[T] {
	return Field[T]{
		Name:    name,
		Kind:    KindDate,
		getText: func(r *T) string { return *ptr(r) },
		setText: func(r *T, v string) { *ptr(r) = v },
	}
}

// NullableDateField declares a date field whose unset state is nil. Setting
// it to "" unsets it.
func NullableDateField[T any](name string, ptr func(*T) **string) Field[T] {
	return Field[T]{
		Name: name,
		Kind: KindDate,
		getText: func(r *T) string {
			if p := *ptr(r); p != nil {
				return *p
			}
			return ""
		},
		setText: func(r *T, v string) {
			if v == "" {
				*ptr(r) = nil
				return
			}
			*ptr(r) = &v
		},
	}
}

// EnumField declares a field restricted to options.
func EnumField[T any](name string, options []string, get func(*T) string, set func(*T, string)) Field[T] {
	return Field[T]{
		Name:    name,
		Kind:    KindEnum,
		Options: options,
		getText: get,
		setText: set,
	}
}

// BoolField declares a boolean flag.
func BoolField[T any](name string, ptr func(*T) *bool) Field[T] {
	return Field[T]{
		Name:    name,
		Kind:    KindBool,
		getBool: func(r *T) bool { return *ptr(r) },
		setBool: func(r *T, v bool) { *ptr(r) = v },
	}
}

// IsText reports whether the field takes a string value.
func (f *Field[T]) IsText() bool {
	return f.Kind != KindBool
}

// Schema is the declarative description of one entity type: its fields, its
// empty record and the fields that make an entry count as filled in.
type Schema[T any] struct {
	Entity   string
	Fields   []Field[T]
	Required []string
	Defaults func() T
	Order    func(*T) *int
	// Normalize runs after every field update to restore entity invariants.
	Normalize func(*T)
}

// Field looks up a field by name.
func (s *Schema[T]) Field(name string) (*Field[T], bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// Blank returns the empty record with the given display order.
func (s *Schema[T]) Blank(order int) T {
	rec := s.Defaults()
	if s.Order != nil {
		*s.Order(&rec) = order
	}
	return rec
}

// DisplayOrder returns the recorded display order of rec.
func (s *Schema[T]) DisplayOrder(rec T) int {
	if s.Order == nil {
		return 0
	}
	return *s.Order(&rec)
}

// Set assigns value to the named field of rec and applies Normalize.
// Text, date and enum fields take a string; bool fields take a bool.
func (s *Schema[T]) Set(rec *T, field string, value any) error {
	f, ok := s.Field(field)
	if !ok {
		return &FieldError{Entity: s.Entity, Field: field, Message: "unknown field"}
	}

	switch f.Kind {
	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return &FieldError{Entity: s.Entity, Field: field, Message: fmt.Sprintf("expected bool, got %T", value)}
		}
		f.setBool(rec, b)
	default:
		str, ok := value.(string)
		if !ok {
			return &FieldError{Entity: s.Entity, Field: field, Message: fmt.Sprintf("expected string, got %T", value)}
		}
		if f.Kind == KindEnum && !slices.Contains(f.Options, str) {
			return &FieldError{Entity: s.Entity, Field: field, Message: fmt.Sprintf("value %q not in %v", str, f.Options)}
		}
		if f.MaxLength > 0 && utf8.RuneCountInString(str) > f.MaxLength {
			return &FieldError{Entity: s.Entity, Field: field, Message: fmt.Sprintf("exceeds %d characters", f.MaxLength)}
		}
		f.setText(rec, str)
	}

	if s.Normalize != nil {
		s.Normalize(rec)
	}
	return nil
}

// Sanitize restores the invariants of a record that did not come through Set:
// enum fields outside their options take the default value, then Normalize runs.
func (s *Schema[T]) Sanitize(rec T) T {
	defaults := s.Defaults()
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Kind == KindEnum && !slices.Contains(f.Options, f.getText(&rec)) {
			f.setText(&rec, f.getText(&defaults))
		}
	}
	if s.Normalize != nil {
		s.Normalize(&rec)
	}
	return rec
}

// Text returns the string value of a text, date or enum field.
func (s *Schema[T]) Text(rec T, field string) string {
	f, ok := s.Field(field)
	if !ok || f.Kind == KindBool {
		return ""
	}
	return f.getText(&rec)
}

// Complete reports whether every required field of rec is non-empty.
func (s *Schema[T]) Complete(rec T) bool {
	for _, name := range s.Required {
		if s.Text(rec, name) == "" {
			return false
		}
	}
	return true
}

// AnyComplete reports whether at least one entry of list is complete.
func (s *Schema[T]) AnyComplete(list []T) bool {
	for _, rec := range list {
		if s.Complete(rec) {
			return true
		}
	}
	return false
}
