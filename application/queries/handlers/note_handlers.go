package handlers

import (
	"context"

	"notes-backend/application/ports"
	"notes-backend/application/queries"
	"notes-backend/domain/note"

	"go.uber.org/zap"
)

// ListNotesHandler handles the note listing query
type ListNotesHandler struct {
	store  ports.NoteStore
	logger *zap.Logger
}

// NewListNotesHandler creates a new list notes handler
func NewListNotesHandler(store ports.NoteStore, logger *zap.Logger) *ListNotesHandler {
	return &ListNotesHandler{store: store, logger: logger}
}

// Handle scans the store. The result is never nil so it encodes as [].
func (h *ListNotesHandler) Handle(ctx context.Context, query queries.ListNotesQuery) ([]note.Note, error) {
	notes, err := h.store.Scan(ctx, query.Owner)
	if err != nil {
		h.logger.Error("GET notes request failed with an error.",
			zap.String("userID", query.Owner),
			zap.Error(err),
		)
		return nil, err
	}
	if notes == nil {
		notes = []note.Note{}
	}

	h.logger.Info("GET notes request succeeded.",
		zap.String("userID", query.Owner),
		zap.Int("count", len(notes)),
	)
	return notes, nil
}

// GetNoteHandler handles the single note query
type GetNoteHandler struct {
	store  ports.NoteStore
	logger *zap.Logger
}

// NewGetNoteHandler creates a new get note handler
func NewGetNoteHandler(store ports.NoteStore, logger *zap.Logger) *GetNoteHandler {
	return &GetNoteHandler{store: store, logger: logger}
}

// Handle reads one note. A missing note is a nil result, not an error.
func (h *GetNoteHandler) Handle(ctx context.Context, query queries.GetNoteQuery) (*note.Note, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	n, err := h.store.Get(ctx, query.Key())
	if err != nil {
		h.logger.Error("GET note request failed with an error.",
			zap.String("noteID", query.ID),
			zap.String("userID", query.Owner),
			zap.Error(err),
		)
		return nil, err
	}

	h.logger.Info("GET note request succeeded.",
		zap.String("noteID", query.ID),
		zap.String("userID", query.Owner),
		zap.Bool("found", n != nil),
	)
	return n, nil
}
