package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports an operation on a filename with no indexed chunks,
	// or a corpus operation on an entirely empty store.
	ErrNotFound = errors.New("not found")

	// ErrEmptyContent reports ingestion of text with nothing to index.
	ErrEmptyContent = errors.New("no extractable content")

	// ErrInvalidArgument reports a malformed or out-of-range caller input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStaleEpoch reports an insert whose session epoch was superseded by a
	// reset. The write loses; the chunk is not stored.
	ErrStaleEpoch = errors.New("session epoch superseded by reset")
)

// UpstreamError wraps a failure from one of the external collaborators:
// the embedder, the generator, or the chunk store backend.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Upstream wraps err as an UpstreamError for the named collaborator.
// A nil err returns nil.
func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Op: op, Err: err}
}
