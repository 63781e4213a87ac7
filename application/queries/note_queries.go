package queries

import (
	"notes-backend/domain/note"
)

// ListNotesQuery lists notes. An empty Owner lists every note.
type ListNotesQuery struct {
	Owner string
}

// Validate validates the ListNotesQuery
func (q ListNotesQuery) Validate() error {
	return nil
}

// GetNoteQuery represents a query to get a single note
type GetNoteQuery struct {
	Owner string
	ID    string
}

// Validate validates the GetNoteQuery
func (q GetNoteQuery) Validate() error {
	return note.ValidateID(q.ID)
}

// Key returns the store key the query reads
func (q GetNoteQuery) Key() note.Key {
	return note.Key{ID: q.ID, Owner: q.Owner}
}
