package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/saturday-stats/internal/http/middleware"
	"github.com/preston-bernstein/saturday-stats/internal/logging"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err, logging.FieldStatusCode, status)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	body := ErrorResponse{Error: message, RequestID: requestID(r)}
	if status >= http.StatusInternalServerError {
		logging.Warn(loggerFromContext(r, logger), "request failed",
			logging.FieldStatusCode, status,
			"error", message,
		)
	}
	writeJSON(w, status, body, logger)
}

// requestID prefers the id assigned by the logging middleware over the raw header.
func requestID(r *http.Request) string {
	if r == nil {
		return ""
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	return r.Header.Get("X-Request-ID")
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
