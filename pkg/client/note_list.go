package client

import (
	"context"
	"sync"

	"notes-backend/domain/note"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotesAPI is the part of Client a NoteList drives
type NotesAPI interface {
	FetchNotes(ctx context.Context) ([]note.Note, error)
	CreateNote(ctx context.Context, n note.Note) (note.Note, error)
	UpdateNote(ctx context.Context, id, text string) (note.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// NoteList holds the notes a user sees together with the new-note draft
// and the note being edited. Local state changes only after the matching
// request succeeds; failed requests are logged and otherwise ignored.
type NoteList struct {
	api    NotesAPI
	logger *zap.Logger

	mu        sync.Mutex
	notes     []note.Note
	draft     string
	editID    string
	editDraft string
}

// NewNoteList creates an empty list bound to api
func NewNoteList(api NotesAPI, logger *zap.Logger) *NoteList {
	return &NoteList{api: api, logger: logger, notes: []note.Note{}}
}

// Load fetches the full list and replaces local state with it
func (l *NoteList) Load(ctx context.Context) {
	notes, err := l.api.FetchNotes(ctx)
	if err != nil {
		l.logger.Error("API: Error fetching notes", zap.Error(err))
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.notes = append([]note.Note{}, notes...)
}

// Notes returns a copy of the current list
func (l *NoteList) Notes() []note.Note {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]note.Note{}, l.notes...)
}

func (l *NoteList) SetDraft(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.draft = text
}

func (l *NoteList) Draft() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.draft
}

// Submit creates a note from the draft under a fresh random ID. An empty
// draft is ignored.
func (l *NoteList) Submit(ctx context.Context) {
	l.mu.Lock()
	text := l.draft
	l.mu.Unlock()
	if text == "" {
		return
	}

	created, err := l.api.CreateNote(ctx, note.Note{ID: uuid.NewString(), Text: text})
	if err != nil {
		l.logger.Error("API: Error creating note", zap.Error(err))
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.notes = append(l.notes, created)
	l.draft = ""
}

// Delete removes note id remotely, then locally
func (l *NoteList) Delete(ctx context.Context, id string) {
	if err := l.api.DeleteNote(ctx, id); err != nil {
		l.logger.Error("API: Error deleting note", zap.String("noteID", id), zap.Error(err))
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.notes[:0]
	for _, n := range l.notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	l.notes = kept
}

// OpenEdit starts editing note id with text as the initial draft
func (l *NoteList) OpenEdit(id, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.editID = id
	l.editDraft = text
}

// Editing reports the note being edited and its draft
func (l *NoteList) Editing() (id, draft string, open bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.editID, l.editDraft, l.editID != ""
}

func (l *NoteList) SetEditDraft(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.editDraft = text
}

// CloseEdit drops edit state without saving
func (l *NoteList) CloseEdit() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.editID = ""
	l.editDraft = ""
}

// SubmitEdit saves the edit draft. Nothing happens when no note is open
// or the draft is empty.
func (l *NoteList) SubmitEdit(ctx context.Context) {
	l.mu.Lock()
	id, text := l.editID, l.editDraft
	l.mu.Unlock()
	if id == "" || text == "" {
		return
	}

	if _, err := l.api.UpdateNote(ctx, id, text); err != nil {
		l.logger.Error("API: Error updating note", zap.String("noteID", id), zap.Error(err))
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.notes {
		if l.notes[i].ID == id {
			l.notes[i] = l.notes[i].WithText(text)
		}
	}
	l.editID = ""
	l.editDraft = ""
}
