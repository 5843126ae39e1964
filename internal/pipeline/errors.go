package pipeline

import "fmt"

// EmptySourceError marks a document whose rasterization produced zero
// pages. Terminal for that document, never retried: it signals a
// malformed or empty source file, not a transient fault.
type EmptySourceError struct {
	Key string
}

func (e *EmptySourceError) Error() string {
	return fmt.Sprintf("document %s produced no pages", e.Key)
}
