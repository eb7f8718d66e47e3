package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Envelope is the uniform wrapper every endpoint returns. Data is kept raw
// so the client can decode it into whatever the caller expects.
type Envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	Timestamp string          `json:"timestamp"`
}

func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func WriteData(w http.ResponseWriter, logger *slog.Logger, data any, status int) bool {
	raw, err := json.Marshal(data)
	if err != nil {
		logger.Error("failed to serialize response data", "error", err)
		WriteError(w, http.StatusInternalServerError, "failed json marshal")
		return false
	}

	return write(w, logger, Envelope{
		Success:   true,
		Data:      raw,
		Timestamp: Now(),
	}, status)
}

func WriteMessage(w http.ResponseWriter, logger *slog.Logger, msg string, status int) bool {
	return write(w, logger, Envelope{
		Success:   true,
		Message:   msg,
		Timestamp: Now(),
	}, status)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope{
		Success:   false,
		Error:     msg,
		Timestamp: Now(),
	}); err != nil {
		return
	}
}

func write(w http.ResponseWriter, logger *slog.Logger, env Envelope, status int) bool {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger.Error("failed to write JSON response", slog.Any("err", err))
		return false
	}
	return true
}
