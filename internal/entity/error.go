package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no metadata record (or blob) exists for the
	// given keys.
	ErrNotFound = errors.New("not found")
	// ErrDecode means the uploaded bytes are not a supported image
	// encoding.
	ErrDecode = errors.New("decode image")
	// ErrStorage means a backing store was unreachable or rejected the
	// operation.
	ErrStorage = errors.New("storage")
)

// PartialFailureError reports drift between the two stores: one half
// of a blob+record pair was written or deleted while the other half
// failed. Nothing auto-heals this, so it must stay distinguishable
// from a generic failure all the way to the boundary.
type PartialFailureError struct {
	// Op is the operation that drifted, "upload" or "delete".
	Op string
	// Key is the blob key left orphaned (upload) or left behind
	// (delete).
	Key string
	// Err is the failure of the step that did not complete.
	Err error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("partial failure during %s, blob key %s: %v", e.Op, e.Key, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}
