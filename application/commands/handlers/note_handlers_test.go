package handlers

import (
	"context"
	"errors"
	"testing"

	"notes-backend/application/commands"
	"notes-backend/application/ports/mocks"
	"notes-backend/domain/note"
	pkgerrors "notes-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateNoteHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := new(mocks.MockNoteStore)
	want := note.Note{ID: "n1", Text: "buy milk", Owner: "user-1"}
	store.On("Put", ctx, want).Return(want, nil)

	handler := NewCreateNoteHandler(store, zap.NewNop())

	// Act
	got, err := handler.Handle(ctx, commands.CreateNoteCommand{Owner: "user-1", ID: "n1", Text: "buy milk"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, want, got)
	store.AssertExpectations(t)
}

func TestCreateNoteHandler_Handle_EmptyTextNeverReachesStore(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockNoteStore)
	handler := NewCreateNoteHandler(store, zap.NewNop())

	_, err := handler.Handle(ctx, commands.CreateNoteCommand{ID: "n1"})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCreateNoteHandler_Handle_StoreError(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockNoteStore)
	store.On("Put", ctx, mock.AnythingOfType("note.Note")).Return(note.Note{}, errors.New("throttled"))

	handler := NewCreateNoteHandler(store, zap.NewNop())

	_, err := handler.Handle(ctx, commands.CreateNoteCommand{ID: "n1", Text: "buy milk"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
	store.AssertExpectations(t)
}

func TestUpdateNoteHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockNoteStore)
	key := note.Key{ID: "n1", Owner: "user-1"}
	want := note.Note{ID: "n1", Text: "buy oat milk", Owner: "user-1"}
	store.On("UpdateText", ctx, key, "buy oat milk").Return(want, nil)

	handler := NewUpdateNoteHandler(store, zap.NewNop())

	got, err := handler.Handle(ctx, commands.UpdateNoteCommand{Owner: "user-1", ID: "n1", Text: "buy oat milk"})

	require.NoError(t, err)
	assert.Equal(t, want, got)
	store.AssertExpectations(t)
}

func TestUpdateNoteHandler_Handle_EmptyTextRejected(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockNoteStore)
	handler := NewUpdateNoteHandler(store, zap.NewNop())

	_, err := handler.Handle(ctx, commands.UpdateNoteCommand{ID: "n1", Text: ""})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	store.AssertNotCalled(t, "UpdateText", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteNoteHandler_Handle(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctx := context.Background()
		store := new(mocks.MockNoteStore)
		store.On("Delete", ctx, note.Key{ID: "n1"}).Return(nil)

		err := NewDeleteNoteHandler(store, zap.NewNop()).Handle(ctx, commands.DeleteNoteCommand{ID: "n1"})

		assert.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("store error", func(t *testing.T) {
		ctx := context.Background()
		store := new(mocks.MockNoteStore)
		store.On("Delete", ctx, note.Key{ID: "n1"}).Return(errors.New("unavailable"))

		err := NewDeleteNoteHandler(store, zap.NewNop()).Handle(ctx, commands.DeleteNoteCommand{ID: "n1"})

		assert.Error(t, err)
		store.AssertExpectations(t)
	})
}
