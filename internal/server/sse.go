package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/generation"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteProgress sends a progress event for one export stage
func (s *SSEWriter) WriteProgress(event generation.ProgressEvent) {
	s.WriteEvent("progress", event) //nolint:errcheck
}

// WriteError sends an error event with the status the request would have had
func (s *SSEWriter) WriteError(status int, message string) {
	s.WriteEvent("error", map[string]any{ //nolint:errcheck
		"status": status,
		"error":  message,
	})
}

// WriteComplete sends a completion event listing the saved downloads
func (s *SSEWriter) WriteComplete(downloads []generation.Download) {
	s.WriteEvent("complete", map[string]any{ //nolint:errcheck
		"status":    "completed",
		"downloads": downloads,
	})
}
