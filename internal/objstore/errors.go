package objstore

import "fmt"

// StorageError wraps connectivity and permission faults from the object
// store. The client never retries; the caller decides.
type StorageError struct {
	Op     string
	Bucket string
	Key    string
	Err    error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("object store %s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	return fmt.Sprintf("object store %s %s: %v", e.Op, e.Bucket, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
