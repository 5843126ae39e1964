package store

import "fmt"

// PersistenceError wraps connectivity and permission faults from the
// document store. Not retried by the core; surfaced to the caller.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("document store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
