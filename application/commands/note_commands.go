package commands

import (
	"notes-backend/domain/note"
)

// CreateNoteCommand creates or replaces the note with the given ID.
// Creation is an upsert: repeating it with new text overwrites.
type CreateNoteCommand struct {
	Owner string
	ID    string
	Text  string
}

// Validate validates the CreateNoteCommand
func (c CreateNoteCommand) Validate() error {
	if err := note.ValidateID(c.ID); err != nil {
		return err
	}
	return note.ValidateText(c.Text)
}

// UpdateNoteCommand replaces the text of an existing note
type UpdateNoteCommand struct {
	Owner string
	ID    string
	Text  string
}

// Validate validates the UpdateNoteCommand
func (c UpdateNoteCommand) Validate() error {
	if err := note.ValidateID(c.ID); err != nil {
		return err
	}
	return note.ValidateText(c.Text)
}

// Key returns the store key targeted by the command
func (c UpdateNoteCommand) Key() note.Key {
	return note.Key{ID: c.ID, Owner: c.Owner}
}

// DeleteNoteCommand removes a note
type DeleteNoteCommand struct {
	Owner string
	ID    string
}

// Validate validates the DeleteNoteCommand
func (c DeleteNoteCommand) Validate() error {
	return note.ValidateID(c.ID)
}

// Key returns the store key targeted by the command
func (c DeleteNoteCommand) Key() note.Key {
	return note.Key{ID: c.ID, Owner: c.Owner}
}
