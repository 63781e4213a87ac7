// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"

	"notes-backend/domain/note"

	"github.com/stretchr/testify/mock"
)

// MockNoteStore is a mock implementation of ports.NoteStore
type MockNoteStore struct {
	mock.Mock
}

func (m *MockNoteStore) Scan(ctx context.Context, owner string) ([]note.Note, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]note.Note), args.Error(1)
}

func (m *MockNoteStore) Get(ctx context.Context, key note.Key) (*note.Note, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*note.Note), args.Error(1)
}

func (m *MockNoteStore) Put(ctx context.Context, n note.Note) (note.Note, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(note.Note), args.Error(1)
}

func (m *MockNoteStore) UpdateText(ctx context.Context, key note.Key, text string) (note.Note, error) {
	args := m.Called(ctx, key, text)
	return args.Get(0).(note.Note), args.Error(1)
}

func (m *MockNoteStore) Delete(ctx context.Context, key note.Key) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
