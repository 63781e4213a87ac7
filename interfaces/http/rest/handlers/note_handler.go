package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"notes-backend/application/commands"
	"notes-backend/application/commands/bus"
	"notes-backend/application/queries"
	querybus "notes-backend/application/queries/bus"
	"notes-backend/domain/note"
	"notes-backend/pkg/auth"
	pkgerrors "notes-backend/pkg/errors"
	"notes-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NoteHandler handles note-related HTTP requests
type NoteHandler struct {
	commandBus   *bus.CommandBus
	queryBus     *querybus.QueryBus
	errorHandler *pkgerrors.ErrorHandler
	scoped       bool
	maxBodyBytes int64
	logger       *zap.Logger
}

// NewNoteHandler creates a new note handler. When scoped is set every
// request must carry a caller identity and acts on that caller's notes only.
func NewNoteHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	scoped bool,
	maxBodyBytes int64,
	logger *zap.Logger,
) *NoteHandler {
	return &NoteHandler{
		commandBus:   commandBus,
		queryBus:     queryBus,
		errorHandler: pkgerrors.NewErrorHandler(logger),
		scoped:       scoped,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// CreateNoteRequest represents the request body for creating a note
type CreateNoteRequest struct {
	ID   string `json:"id" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// UpdateNoteRequest represents the request body for updating a note
type UpdateNoteRequest struct {
	Text string `json:"text" validate:"required"`
}

// ListNotes handles GET /notes
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListNotesQuery{Owner: owner})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	notes, _ := result.([]note.Note)
	if notes == nil {
		notes = []note.Note{}
	}
	h.respondJSON(w, http.StatusOK, notes)
}

// GetNote handles GET /notes/{id}. A missing note is answered with {}.
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetNoteQuery{
		Owner: owner,
		ID:    id,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	n, _ := result.(*note.Note)
	if n == nil {
		h.respondJSON(w, http.StatusOK, struct{}{})
		return
	}
	h.respondJSON(w, http.StatusOK, n)
}

// CreateNote handles POST /notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req CreateNoteRequest
	if !h.parseBody(w, r, &req) {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.CreateNoteCommand{
		Owner: owner,
		ID:    req.ID,
		Text:  req.Text,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// UpdateNote handles PUT /notes/{id}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if !h.parseBody(w, r, &req) {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.UpdateNoteCommand{
		Owner: owner,
		ID:    id,
		Text:  req.Text,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// DeleteNote handles DELETE /notes/{id}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	if _, err := h.commandBus.Send(r.Context(), commands.DeleteNoteCommand{
		Owner: owner,
		ID:    id,
	}); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// InvalidRoute answers every (method, path) outside the route table
func (h *NoteHandler) InvalidRoute(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("Invalid route.",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	w.WriteHeader(http.StatusNotFound)
}

// owner returns the key owner for the request. In ownerless mode it is
// always empty; in scoped mode a request without a caller is answered 401.
func (h *NoteHandler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	if !h.scoped {
		return "", true
	}

	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("Unauthorized"))
		return "", false
	}
	return userID, true
}

// noteID returns the decoded {id} path value. chi routes on the escaped path
// when the URL has one, so the value is still percent-encoded in that case.
func (h *NoteHandler) noteID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id, true
	}

	decoded, err := url.PathUnescape(id)
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("Invalid note ID"))
		return "", false
	}
	return decoded, true
}

// parseBody decodes and validates a JSON body, answering 400 on failure
func (h *NoteHandler) parseBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(
				fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit)))
			return false
		}
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("Invalid request body: "+err.Error()))
		return false
	}

	if err := utils.ValidateStruct(dst); err != nil {
		h.errorHandler.Handle(w, r, err)
		return false
	}
	return true
}

func (h *NoteHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
