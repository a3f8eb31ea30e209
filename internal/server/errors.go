// Package server provides the HTTP API for resume wizard sessions.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-wizard/internal/blobstore"
	"github.com/jonathan/resume-wizard/internal/listedit"
	"github.com/jonathan/resume-wizard/internal/schemas"
	"github.com/jonathan/resume-wizard/internal/selection"
	"github.com/jonathan/resume-wizard/internal/settings"
	"github.com/jonathan/resume-wizard/internal/upload"
	"github.com/jonathan/resume-wizard/internal/validation"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

// ErrSessionNotFound indicates an unknown or evicted session id
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound   *ErrSessionNotFound
		invalid    *ErrValidation
		rejected   *upload.RejectionError
		incomplete *validation.IncompleteError
		field      *listedit.FieldError
		path       *selection.PathError
		schema     *schemas.ValidationError
		state      *wizard.StateError
		handoff    *wizard.HandoffError
		wizErr     *wizard.Error
		validate   validator.ValidationErrors
	)

	switch {
	case errors.As(err, &notFound),
		errors.Is(err, blobstore.ErrNotFound),
		errors.Is(err, settings.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &rejected):
		switch rejected.Reason {
		case upload.ReasonSize:
			return http.StatusRequestEntityTooLarge
		case upload.ReasonType:
			return http.StatusUnsupportedMediaType
		default:
			return http.StatusBadRequest
		}
	case errors.As(err, &incomplete):
		return http.StatusUnprocessableEntity
	case errors.As(err, &state):
		return http.StatusConflict
	case errors.As(err, &handoff):
		return http.StatusBadGateway
	case errors.As(err, &invalid),
		errors.As(err, &field),
		errors.As(err, &path),
		errors.As(err, &schema),
		errors.As(err, &wizErr),
		errors.As(err, &validate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON error envelope. Failing and Messages are set when
// completion is blocked; Fields when a snapshot fails schema validation.
type errorBody struct {
	Error    string              `json:"error"`
	Failing  []string            `json:"failing,omitempty"`
	Messages []string            `json:"messages,omitempty"`
	Fields   []schemas.FieldError `json:"fields,omitempty"`
}

func newErrorBody(err error) errorBody {
	body := errorBody{Error: err.Error()}
	var incomplete *validation.IncompleteError
	if errors.As(err, &incomplete) {
		for _, s := range incomplete.Failing {
			body.Failing = append(body.Failing, string(s))
		}
		body.Messages = incomplete.Messages
	}
	var schema *schemas.ValidationError
	if errors.As(err, &schema) {
		body.Error = "snapshot does not match schema"
		body.Fields = schema.Errors
	}
	return body
}
