//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// SelectTextRequest reports a snippet highlighted in the resume view.
type SelectTextRequest struct {
	Text string `json:"text" validate:"required"`
}

// ApplySelectionRequest writes the pending snippet into a field of the active entry.
type ApplySelectionRequest struct {
	Field string `json:"field" validate:"required"`
}

// SetActiveRequest marks which list entry may consume the pending selection.
type SetActiveRequest struct {
	Section string `json:"section" validate:"required,oneof=experience projects education skills"`
	Index   int    `json:"index" validate:"min=0"`
}

// ContextMenuRequest opens the "send to field" menu on a right-click selection.
type ContextMenuRequest struct {
	Text string `json:"text" validate:"required"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// SendToFieldRequest targets a field by dotted path "<section>.<index>.<field>".
type SendToFieldRequest struct {
	Path string `json:"path" validate:"required"`
}

// LayoutRequest toggles the floating panel layout.
type LayoutRequest struct {
	Floating bool `json:"floating"`
}

// UpdateFieldRequest sets one field. Value is a JSON string or boolean.
type UpdateFieldRequest struct {
	Field string `json:"field" validate:"required"`
	Value any    `json:"value"`
}

// MoveRequest repositions an entry either by one step or to an absolute index.
type MoveRequest struct {
	Direction string `json:"direction,omitempty" validate:"omitempty,oneof=up down"`
	To        *int   `json:"to,omitempty" validate:"omitempty,min=0"`
}

// BulkSkillsRequest adds comma or newline separated skills.
type BulkSkillsRequest struct {
	Text          string `json:"text,omitempty"`
	FromSelection bool   `json:"from_selection,omitempty"`
}

// NavigateRequest jumps directly to a section.
type NavigateRequest struct {
	Section string `json:"section" validate:"required,oneof=basic experience projects education skills review"`
}

// Validate validates the SelectTextRequest using the validator.
func (r *SelectTextRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ApplySelectionRequest using the validator.
func (r *ApplySelectionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SetActiveRequest using the validator.
func (r *SetActiveRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ContextMenuRequest using the validator.
func (r *ContextMenuRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SendToFieldRequest using the validator.
func (r *SendToFieldRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateFieldRequest using the validator.
func (r *UpdateFieldRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the MoveRequest. Exactly one of Direction and To must be set.
func (r *MoveRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if (r.Direction == "") == (r.To == nil) {
		return errors.New("exactly one of direction or to is required")
	}
	return nil
}

// Validate validates the BulkSkillsRequest.
func (r *BulkSkillsRequest) Validate() error {
	if r.Text == "" && !r.FromSelection {
		return errors.New("text or from_selection is required")
	}
	return nil
}

// Validate validates the NavigateRequest using the validator.
func (r *NavigateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// DragRequest drives pointer-based reordering: start on an entry, hover over
// others, then drop or cancel.
type DragRequest struct {
	Action string `json:"action" validate:"required,oneof=start over drop end"`
	Index  int    `json:"index" validate:"min=0"`
}

// Validate validates the DragRequest using the validator.
func (r *DragRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
