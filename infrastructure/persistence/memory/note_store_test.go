package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"notes-backend/domain/note"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewNoteStore(false)

	notes, err := store.Scan(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, notes)

	_, err = store.Put(ctx, note.Note{ID: "n1", Text: "buy milk"})
	require.NoError(t, err)

	got, err := store.Get(ctx, note.Key{ID: "n1"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "buy milk", got.Text)

	updated, err := store.UpdateText(ctx, note.Key{ID: "n1"}, "buy oat milk")
	require.NoError(t, err)
	assert.Equal(t, note.Note{ID: "n1", Text: "buy oat milk"}, updated)

	require.NoError(t, store.Delete(ctx, note.Key{ID: "n1"}))
	got, err = store.Get(ctx, note.Key{ID: "n1"})
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, store.Delete(ctx, note.Key{ID: "n1"}), "deleting an absent note succeeds")
}

func TestNoteStore_PutReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewNoteStore(false)

	_, _ = store.Put(ctx, note.Note{ID: "n1", Text: "a"})
	_, _ = store.Put(ctx, note.Note{ID: "n1", Text: "b"})

	notes, err := store.Scan(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []note.Note{{ID: "n1", Text: "b"}}, notes)
}

func TestNoteStore_UpdateTextCreatesAbsentNote(t *testing.T) {
	ctx := context.Background()
	store := NewNoteStore(true)

	updated, err := store.UpdateText(ctx, note.Key{ID: "n9", Owner: "user-1"}, "x")

	require.NoError(t, err)
	assert.Equal(t, note.Note{ID: "n9", Text: "x", Owner: "user-1"}, updated)
}

func TestNoteStore_ScopedIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewNoteStore(true)

	_, _ = store.Put(ctx, note.Note{ID: "n1", Text: "mine", Owner: "user-1"})
	_, _ = store.Put(ctx, note.Note{ID: "n1", Text: "theirs", Owner: "user-2"})

	mine, err := store.Scan(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []note.Note{{ID: "n1", Text: "mine", Owner: "user-1"}}, mine)

	got, err := store.Get(ctx, note.Key{ID: "n1", Owner: "user-2"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "theirs", got.Text)

	require.NoError(t, store.Delete(ctx, note.Key{ID: "n1", Owner: "user-1"}))
	all, _ := store.Scan(ctx, "")
	assert.Len(t, all, 1)
}

func TestNoteStore_UnscopedIgnoresOwner(t *testing.T) {
	ctx := context.Background()
	store := NewNoteStore(false)

	_, _ = store.Put(ctx, note.Note{ID: "n1", Text: "a", Owner: "user-1"})

	got, err := store.Get(ctx, note.Key{ID: "n1", Owner: "someone-else"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Owner)
}

func TestNoteStore_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := NewNoteStore(false)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = store.Put(ctx, note.Note{ID: fmt.Sprintf("n%02d", i), Text: "x"})
		}(i)
	}
	wg.Wait()

	notes, err := store.Scan(ctx, "")
	require.NoError(t, err)
	assert.Len(t, notes, 50)
	assert.Equal(t, "n00", notes[0].ID)
}
