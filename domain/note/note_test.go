package note

import (
	"strings"
	"testing"

	pkgerrors "notes-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		text    string
		owner   string
		wantErr string
	}{
		{name: "valid ownerless note", id: "n1", text: "buy milk"},
		{name: "valid owned note", id: "n1", text: "buy milk", owner: "user-1"},
		{name: "empty id", id: "", text: "buy milk", wantErr: ErrEmptyID},
		{name: "empty text", id: "n1", text: "", wantErr: ErrEmptyText},
		{name: "id too long", id: strings.Repeat("x", MaxIDLength+1), text: "t", wantErr: "maximum length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := New(tt.id, tt.text, tt.owner)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.True(t, pkgerrors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, n.ID)
			assert.Equal(t, tt.text, n.Text)
			assert.Equal(t, tt.owner, n.Owner)
		})
	}
}

func TestNote_KeyAndWithText(t *testing.T) {
	n := Note{ID: "n1", Text: "buy milk", Owner: "user-1"}

	assert.Equal(t, Key{ID: "n1", Owner: "user-1"}, n.Key())

	updated := n.WithText("buy oat milk")
	assert.Equal(t, "buy oat milk", updated.Text)
	assert.Equal(t, n.ID, updated.ID)
	assert.Equal(t, "buy milk", n.Text)
}

func TestValidateText_WhitespaceIsAllowed(t *testing.T) {
	assert.NoError(t, ValidateText(" "))
}
