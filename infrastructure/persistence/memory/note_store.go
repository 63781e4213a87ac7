// Package memory provides an in-process note store for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"notes-backend/application/ports"
	"notes-backend/domain/note"
)

// NoteStore keeps notes in a map guarded by a RWMutex
type NoteStore struct {
	mu     sync.RWMutex
	notes  map[note.Key]note.Note
	scoped bool
}

// NewNoteStore creates an empty store. An unscoped store ignores owners in keys.
func NewNoteStore(scoped bool) ports.NoteStore {
	return &NoteStore{
		notes:  make(map[note.Key]note.Note),
		scoped: scoped,
	}
}

func (s *NoteStore) key(k note.Key) note.Key {
	if !s.scoped {
		k.Owner = ""
	}
	return k
}

// Scan returns notes ordered by ID so results are stable
func (s *NoteStore) Scan(ctx context.Context, owner string) ([]note.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]note.Note, 0, len(s.notes))
	for _, n := range s.notes {
		if owner != "" && n.Owner != owner {
			continue
		}
		notes = append(notes, n)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

func (s *NoteStore) Get(ctx context.Context, key note.Key) (*note.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[s.key(key)]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (s *NoteStore) Put(ctx context.Context, n note.Note) (note.Note, error) {
	if !s.scoped {
		n.Owner = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes[n.Key()] = n
	return n, nil
}

func (s *NoteStore) UpdateText(ctx context.Context, key note.Key, text string) (note.Note, error) {
	key = s.key(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[key]
	if !ok {
		n = note.Note{ID: key.ID, Owner: key.Owner}
	}
	n = n.WithText(text)
	s.notes[key] = n
	return n, nil
}

func (s *NoteStore) Delete(ctx context.Context, key note.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.notes, s.key(key))
	return nil
}
