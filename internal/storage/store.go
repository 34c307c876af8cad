// Package storage provides the key/value stores that hold builder snapshots.
package storage

import (
	"context"
	"fmt"
)

// Store is a small key/value store. Get reports found=false for a missing
// key rather than returning an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Error wraps a failure from a backing store
type Error struct {
	Op    string
	Key   string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
