// Package note holds the single persisted entity of the service.
package note

import (
	"fmt"

	pkgerrors "notes-backend/pkg/errors"
)

// MaxIDLength bounds the client-chosen identifier, well under the
// DynamoDB key attribute limit.
const MaxIDLength = 1024

const (
	ErrEmptyID   = "note ID cannot be empty"
	ErrEmptyText = "note text cannot be empty"
	ErrIDTooLong = "note ID exceeds maximum length"
)

// Note is a short text record keyed by a client-chosen ID and, in the
// owner-scoped deployment, by the ID of the user who created it.
type Note struct {
	ID    string `json:"id" dynamodbav:"id"`
	Text  string `json:"text" dynamodbav:"text"`
	Owner string `json:"userId,omitempty" dynamodbav:"userId,omitempty"`
}

// Key identifies one note in the store
type Key struct {
	ID    string
	Owner string
}

// New creates a note with creation-time validation
func New(id, text, owner string) (Note, error) {
	if err := ValidateID(id); err != nil {
		return Note{}, err
	}
	if err := ValidateText(text); err != nil {
		return Note{}, err
	}
	return Note{ID: id, Text: text, Owner: owner}, nil
}

// Key returns the store key of the note
func (n Note) Key() Key {
	return Key{ID: n.ID, Owner: n.Owner}
}

// WithText returns a copy of the note carrying new text
func (n Note) WithText(text string) Note {
	n.Text = text
	return n
}

// ValidateID checks a client-chosen identifier
func ValidateID(id string) error {
	if id == "" {
		return pkgerrors.NewValidationError(ErrEmptyID)
	}
	if len(id) > MaxIDLength {
		return pkgerrors.NewValidationError(fmt.Sprintf("%s of %d bytes", ErrIDTooLong, MaxIDLength))
	}
	return nil
}

// ValidateText rejects empty text. It applies to creation and to updates.
func ValidateText(text string) error {
	if text == "" {
		return pkgerrors.NewValidationError(ErrEmptyText)
	}
	return nil
}
