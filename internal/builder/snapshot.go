package builder

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-builder/internal/schemas"
)

// StorageKey is the fixed key the builder snapshot is persisted under
const StorageKey = "resume-builder-state"

// Encode serializes the whole state as a snapshot record
func Encode(s State) ([]byte, error) {
	s.ResumeData.Normalize()
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode builder snapshot: %w", err)
	}
	return data, nil
}

// Decode parses and validates a snapshot record. The returned state has
// been normalized the same way Hydrate normalizes it.
func Decode(data []byte) (State, error) {
	if err := schemas.ValidateSnapshot(data); err != nil {
		return State{}, err
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("failed to decode builder snapshot: %w", err)
	}
	return hydrate(s), nil
}
