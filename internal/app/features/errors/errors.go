// internal/app/features/errors/errors.go

// Package errors renders the API's uniform JSON error body and logs
// the server-side detail that never reaches the client.
package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs response writing with structured logging so
// handlers report failures in one call.
type ErrorLogger struct {
	log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// errorBody is the JSON shape every error response carries.
type errorBody struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the uniform error body without logging. Use it for
// plain validation outcomes the logs do not need.
func WriteError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Error: msg})
}

// LogServerError logs err with request context and responds 500 with
// userMsg. The error detail stays in the log.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	WriteError(w, http.StatusInternalServerError, userMsg)
}

// LogBadRequest logs err at warn level and responds 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Warn(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	WriteError(w, http.StatusBadRequest, userMsg)
}

// LogUnavailable logs err and responds 503. Used when the backing
// store is unreachable: the page degrades, it does not crash.
func (e *ErrorLogger) LogUnavailable(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	WriteError(w, http.StatusServiceUnavailable, userMsg)
}
