package generation

import (
	"errors"
	"fmt"
)

// ErrExportInFlight is returned when an export is requested while another
// one is still running.
var ErrExportInFlight = errors.New("an export is already in progress")

// GenerationError wraps any failure while producing a document. UserMessage
// is safe to show as-is; Cause carries the underlying error.
type GenerationError struct {
	UserMessage string
	Cause       error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Cause)
	}
	return e.UserMessage
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// DownloadError is a failure handing finished bytes to the Saver
type DownloadError struct {
	Filename string
	Cause    error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to save %s: %v", e.Filename, e.Cause)
}

func (e *DownloadError) Unwrap() error {
	return e.Cause
}
