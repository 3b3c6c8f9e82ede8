package scansession

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a missing file or an unknown session id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState indicates an operation that cannot proceed in the
	// current state, e.g. importing positional scans before a reference
	// list has been loaded.
	ErrInvalidState = errors.New("invalid state")

	// ErrStorage indicates the durable store could not complete a read or
	// write. Operations fail as a whole; nothing is retried.
	ErrStorage = errors.New("storage failure")
)

// storageErr wraps a database error as an ErrStorage failure kind.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
