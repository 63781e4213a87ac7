package handlers

import (
	"context"
	"errors"
	"testing"

	"notes-backend/application/ports/mocks"
	"notes-backend/application/queries"
	"notes-backend/domain/note"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListNotesHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := new(mocks.MockNoteStore)
	notes := []note.Note{
		{ID: "n1", Text: "a", Owner: "user-1"},
		{ID: "n2", Text: "b", Owner: "user-1"},
	}
	store.On("Scan", ctx, "user-1").Return(notes, nil)

	// Act
	result, err := NewListNotesHandler(store, zap.NewNop()).Handle(ctx, queries.ListNotesQuery{Owner: "user-1"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, notes, result)
	store.AssertExpectations(t)
}

func TestListNotesHandler_Handle_EmptyStoreYieldsEmptySlice(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockNoteStore)
	store.On("Scan", ctx, "").Return(nil, nil)

	result, err := NewListNotesHandler(store, zap.NewNop()).Handle(ctx, queries.ListNotesQuery{})

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestListNotesHandler_Handle_StoreError(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockNoteStore)
	store.On("Scan", ctx, "").Return(nil, errors.New("boom"))

	result, err := NewListNotesHandler(store, zap.NewNop()).Handle(ctx, queries.ListNotesQuery{})

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestGetNoteHandler_Handle(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		ctx := context.Background()
		store := new(mocks.MockNoteStore)
		n := &note.Note{ID: "n1", Text: "buy milk"}
		store.On("Get", ctx, note.Key{ID: "n1"}).Return(n, nil)

		result, err := NewGetNoteHandler(store, zap.NewNop()).Handle(ctx, queries.GetNoteQuery{ID: "n1"})

		require.NoError(t, err)
		assert.Equal(t, n, result)
	})

	t.Run("missing is not an error", func(t *testing.T) {
		ctx := context.Background()
		store := new(mocks.MockNoteStore)
		store.On("Get", ctx, note.Key{ID: "n1", Owner: "user-1"}).Return(nil, nil)

		result, err := NewGetNoteHandler(store, zap.NewNop()).Handle(ctx, queries.GetNoteQuery{ID: "n1", Owner: "user-1"})

		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("empty id", func(t *testing.T) {
		ctx := context.Background()
		store := new(mocks.MockNoteStore)

		_, err := NewGetNoteHandler(store, zap.NewNop()).Handle(ctx, queries.GetNoteQuery{})

		assert.Error(t, err)
		store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}
