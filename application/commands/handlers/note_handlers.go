package handlers

import (
	"context"

	"notes-backend/application/commands"
	"notes-backend/application/ports"
	"notes-backend/domain/note"

	"go.uber.org/zap"
)

// CreateNoteHandler handles note creation. Creation writes the note under
// its key whether or not it already exists.
type CreateNoteHandler struct {
	store  ports.NoteStore
	logger *zap.Logger
}

// NewCreateNoteHandler creates a new create note handler
func NewCreateNoteHandler(store ports.NoteStore, logger *zap.Logger) *CreateNoteHandler {
	return &CreateNoteHandler{store: store, logger: logger}
}

// Handle executes the create note command
func (h *CreateNoteHandler) Handle(ctx context.Context, cmd commands.CreateNoteCommand) (note.Note, error) {
	n, err := note.New(cmd.ID, cmd.Text, cmd.Owner)
	if err != nil {
		return note.Note{}, err
	}

	stored, err := h.store.Put(ctx, n)
	if err != nil {
		h.logger.Error("POST note request failed with an error.",
			zap.String("noteID", cmd.ID),
			zap.String("userID", cmd.Owner),
			zap.Error(err),
		)
		return note.Note{}, err
	}

	h.logger.Info("POST note request succeeded.",
		zap.String("noteID", stored.ID),
		zap.String("userID", stored.Owner),
	)
	return stored, nil
}

// UpdateNoteHandler handles note text updates
type UpdateNoteHandler struct {
	store  ports.NoteStore
	logger *zap.Logger
}

// NewUpdateNoteHandler creates a new update note handler
func NewUpdateNoteHandler(store ports.NoteStore, logger *zap.Logger) *UpdateNoteHandler {
	return &UpdateNoteHandler{store: store, logger: logger}
}

// Handle executes the update note command
func (h *UpdateNoteHandler) Handle(ctx context.Context, cmd commands.UpdateNoteCommand) (note.Note, error) {
	if err := cmd.Validate(); err != nil {
		return note.Note{}, err
	}

	updated, err := h.store.UpdateText(ctx, cmd.Key(), cmd.Text)
	if err != nil {
		h.logger.Error("UPDATE note request failed with an error.",
			zap.String("noteID", cmd.ID),
			zap.String("userID", cmd.Owner),
			zap.Error(err),
		)
		return note.Note{}, err
	}

	h.logger.Info("UPDATE note request succeeded.",
		zap.String("noteID", updated.ID),
		zap.String("userID", updated.Owner),
	)
	return updated, nil
}

// DeleteNoteHandler handles note deletion
type DeleteNoteHandler struct {
	store  ports.NoteStore
	logger *zap.Logger
}

// NewDeleteNoteHandler creates a new delete note handler
func NewDeleteNoteHandler(store ports.NoteStore, logger *zap.Logger) *DeleteNoteHandler {
	return &DeleteNoteHandler{store: store, logger: logger}
}

// Handle executes the delete note command
func (h *DeleteNoteHandler) Handle(ctx context.Context, cmd commands.DeleteNoteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.store.Delete(ctx, cmd.Key()); err != nil {
		h.logger.Error("DELETE note request failed with an error.",
			zap.String("noteID", cmd.ID),
			zap.String("userID", cmd.Owner),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("DELETE note request succeeded.",
		zap.String("noteID", cmd.ID),
		zap.String("userID", cmd.Owner),
	)
	return nil
}
