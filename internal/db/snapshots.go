package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-builder/internal/storage"
)

// SnapshotStore is a storage.Store scoped to one user's rows in builder_snapshots
type SnapshotStore struct {
	db     *DB
	userID uuid.UUID
}

var _ storage.Store = (*SnapshotStore)(nil)

// Snapshots returns the snapshot store for userID
func (db *DB) Snapshots(userID uuid.UUID) *SnapshotStore {
	return &SnapshotStore{db: db, userID: userID}
}

// Get implements storage.Store
func (s *SnapshotStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.pool.QueryRow(ctx,
		`SELECT value FROM builder_snapshots WHERE user_id = $1 AND key = $2`,
		s.userID, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &storage.Error{Op: "get", Key: key, Cause: err}
	}
	return value, true, nil
}

// Set implements storage.Store
func (s *SnapshotStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO builder_snapshots (user_id, key, value) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, key) DO UPDATE SET value = $3, updated_at = NOW()`,
		s.userID, key, value,
	)
	if err != nil {
		return &storage.Error{Op: "set", Key: key, Cause: err}
	}
	return nil
}

// Remove implements storage.Store
func (s *SnapshotStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.pool.Exec(ctx,
		`DELETE FROM builder_snapshots WHERE user_id = $1 AND key = $2`,
		s.userID, key,
	)
	if err != nil {
		return &storage.Error{Op: "remove", Key: key, Cause: err}
	}
	return nil
}
