package builder

import "fmt"

// PersistenceError is a failed load or save of the builder snapshot.
// Background saves log it; explicit SaveProgress/LoadProgress return it.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("builder %s failed: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
