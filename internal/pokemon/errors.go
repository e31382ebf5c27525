package pokemon

import "errors"

var (
	// ErrNotFound marks a creature (or other resource) that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrLookupFailure marks a failed fetch from an external source.
	ErrLookupFailure = errors.New("lookup failure")
	// ErrComputationFailure marks degenerate input to a derived computation.
	ErrComputationFailure = errors.New("computation failure")
)
