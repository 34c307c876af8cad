package storage

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
)

// FileStore keeps one file per key under Dir
type FileStore struct {
	Dir string
}

// NewFileStore creates dir if needed and returns a store rooted there
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &Error{Op: "open", Key: dir, Cause: err}
	}
	return &FileStore{Dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.Dir, url.PathEscape(key)+".json")
}

// Get implements Store
func (f *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &Error{Op: "get", Key: key, Cause: err}
	}
	return string(data), true, nil
}

// Set writes the value through a temp file and rename so a crash never
// leaves a half-written snapshot behind.
func (f *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.Dir, ".tmp-*")
	if err != nil {
		return &Error{Op: "set", Key: key, Cause: err}
	}
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return &Error{Op: "set", Key: key, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return &Error{Op: "set", Key: key, Cause: err}
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		_ = os.Remove(tmp.Name())
		return &Error{Op: "set", Key: key, Cause: err}
	}
	return nil
}

// Remove implements Store. Removing a missing key is not an error.
func (f *FileStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &Error{Op: "remove", Key: key, Cause: err}
	}
	return nil
}
