package generation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Saver hands a finished document to the user, e.g. by writing it to disk or
// streaming it as an attachment. It returns where the document went.
type Saver interface {
	Save(ctx context.Context, filename, mediaType string, data []byte) (string, error)
}

// SaverFunc adapts a function to Saver
type SaverFunc func(ctx context.Context, filename, mediaType string, data []byte) (string, error)

// Save implements Saver
func (f SaverFunc) Save(ctx context.Context, filename, mediaType string, data []byte) (string, error) {
	return f(ctx, filename, mediaType, data)
}

// DirSaver writes documents into Dir, replacing files of the same name
type DirSaver struct {
	Dir string
}

// Save implements Saver
func (s DirSaver) Save(ctx context.Context, filename, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	// the name comes from user input, so keep it inside Dir
	path := filepath.Join(s.Dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
