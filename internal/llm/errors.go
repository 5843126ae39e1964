package llm

import "fmt"

// GenerationError wraps a provider or network fault. Transient; callers
// decide whether to retry.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// SchemaValidationError means the model produced output that could not be
// coerced into the requested shape.
type SchemaValidationError struct {
	Err error
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("schema validation: %v", e.Err)
}

func (e *SchemaValidationError) Unwrap() error { return e.Err }
