package agent

import "fmt"

// ValidationError reports a tool submission the model could not repair
// within the allowed corrective re-asks.
type ValidationError struct {
	Tool string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("tool %s: submission rejected: %v", e.Tool, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
