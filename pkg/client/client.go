// Package client talks to the note API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"notes-backend/domain/note"
)

// TokenSource returns the identity token sent with each request. An empty
// token sends no Authorization header.
type TokenSource func(ctx context.Context) (string, error)

// StaticToken always returns token
func StaticToken(token string) TokenSource {
	return func(context.Context) (string, error) { return token, nil }
}

// StatusError is returned for any non-2xx answer
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Client calls the five note routes
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets the token sent as the raw Authorization header
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchNotes lists every note visible to the caller
func (c *Client) FetchNotes(ctx context.Context) ([]note.Note, error) {
	var notes []note.Note
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []note.Note{}
	}
	return notes, nil
}

// GetNote reads one note. A missing note is returned as nil.
func (c *Client) GetNote(ctx context.Context, id string) (*note.Note, error) {
	var n note.Note
	if err := c.do(ctx, http.MethodGet, notePath(id), nil, &n); err != nil {
		return nil, err
	}
	if n.ID == "" {
		return nil, nil
	}
	return &n, nil
}

// CreateNote posts a note and returns what the server stored
func (c *Client) CreateNote(ctx context.Context, n note.Note) (note.Note, error) {
	var created note.Note
	body := map[string]string{"id": n.ID, "text": n.Text}
	if err := c.do(ctx, http.MethodPost, "/notes", body, &created); err != nil {
		return note.Note{}, err
	}
	return created, nil
}

// UpdateNote replaces the text of note id
func (c *Client) UpdateNote(ctx context.Context, id, text string) (note.Note, error) {
	var updated note.Note
	if err := c.do(ctx, http.MethodPut, notePath(id), map[string]string{"text": text}, &updated); err != nil {
		return note.Note{}, err
	}
	return updated, nil
}

// DeleteNote removes note id
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, notePath(id), nil, nil)
}

func notePath(id string) string {
	return "/notes/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		token, err := c.token(ctx)
		if err != nil {
			return fmt.Errorf("failed to get token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
