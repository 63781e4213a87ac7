package ports

import (
	"context"

	"notes-backend/domain/note"
)

// NoteStore defines the interface for note persistence.
// Every method is exactly one store operation and is atomic per item.
type NoteStore interface {
	// Scan returns every note, restricted to owner when owner is non-empty.
	// Order is whatever the store yields.
	Scan(ctx context.Context, owner string) ([]note.Note, error)

	// Get returns the note stored under key, or nil when there is none
	Get(ctx context.Context, key note.Key) (*note.Note, error)

	// Put creates or replaces the note under its key and returns the stored attributes
	Put(ctx context.Context, n note.Note) (note.Note, error)

	// UpdateText sets the text of the note under key and returns all new attributes
	UpdateText(ctx context.Context, key note.Key, text string) (note.Note, error)

	// Delete removes the note under key; removing a missing note succeeds
	Delete(ctx context.Context, key note.Key) error
}
