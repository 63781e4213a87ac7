package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse represents the body sent for caller errors
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ErrorHandler turns errors into HTTP responses.
// Caller errors (4xx) get a JSON body; server errors are logged and
// answered with an empty body so store details never reach the caller.
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle processes an error and sends an HTTP response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	status := StatusOf(err)
	fields := []zap.Field{
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", fields...)
		w.WriteHeader(status)
		return
	}

	h.logger.Warn("Request rejected", fields...)
	message := err.Error()
	if appErr := GetAppError(err); appErr != nil {
		message = appErr.Message
	}
	h.HandleStatus(w, status, message)
}

// HandleStatus sends a caller-error response with a specific status code
func (h *ErrorHandler) HandleStatus(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   true,
		Message: message,
		Code:    status,
	}); err != nil {
		h.logger.Error("Failed to encode error response", zap.Error(err))
	}
}
