package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"notes-backend/domain/note"
	"notes-backend/infrastructure/di"
	"notes-backend/infrastructure/persistence/memory"
	"notes-backend/interfaces/http/rest"
	"notes-backend/pkg/auth"
	"notes-backend/pkg/client"
	"notes-backend/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAPIServer(t *testing.T, scoped bool) *httptest.Server {
	t.Helper()

	logger := zap.NewNop()
	store := memory.NewNoteStore(scoped)
	tracer := observability.NewTracer("notes-test", false)
	metrics := observability.NewMetrics("Notes/test", nil, logger)

	commandBus, err := di.ProvideCommandBus(store, tracer, metrics, logger)
	require.NoError(t, err)
	queryBus, err := di.ProvideQueryBus(store, tracer, metrics, logger)
	require.NoError(t, err)

	// The client sends its token as the raw Authorization value, which the
	// header resolver takes verbatim as the caller.
	resolver := auth.TrustedHeader("Authorization")
	router := rest.NewRouter(commandBus, queryBus, resolver, metrics, rest.Options{
		ScopeByOwner: scoped,
		MaxBodyBytes: 4096,
	}, logger)

	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_AgainstRouter(t *testing.T) {
	srv := newAPIServer(t, false)
	c := client.New(srv.URL + "/")
	ctx := context.Background()

	notes, err := c.FetchNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	created, err := c.CreateNote(ctx, note.Note{ID: "n1", Text: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, note.Note{ID: "n1", Text: "buy milk"}, created)

	got, err := c.GetNote(ctx, "n1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "buy milk", got.Text)

	updated, err := c.UpdateNote(ctx, "n1", "buy oat milk")
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", updated.Text)

	require.NoError(t, c.DeleteNote(ctx, "n1"))

	got, err = c.GetNote(ctx, "n1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClient_ScopedByToken(t *testing.T) {
	srv := newAPIServer(t, true)
	ctx := context.Background()

	alice := client.New(srv.URL, client.WithTokenSource(client.StaticToken("alice")))
	bob := client.New(srv.URL, client.WithTokenSource(client.StaticToken("bob")))

	_, err := alice.CreateNote(ctx, note.Note{ID: "n1", Text: "alice's"})
	require.NoError(t, err)

	notes, err := bob.FetchNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	_, err = client.New(srv.URL).FetchNotes(ctx)
	var statusErr *client.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := client.New(srv.URL).DeleteNote(context.Background(), "n1")

	var statusErr *client.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, "/notes/n1", statusErr.Path)
}

func TestClient_SendsRawToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, client.WithTokenSource(client.StaticToken("id-token")))
	_, err := c.FetchNotes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "id-token", gotAuth)
}
