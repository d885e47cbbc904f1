package store

import (
	"errors"
	"fmt"
)

// ErrDuplicate is returned when an insert collides with a unique index.
var ErrDuplicate = errors.New("duplicate key")

// DataUnavailableError indicates a read against the store failed. Callers
// treat it as transient: the operation can be retried later.
type DataUnavailableError struct {
	Op  string
	Err error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("data unavailable (%s): %v", e.Op, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

func unavailable(op string, err error) error {
	return &DataUnavailableError{Op: op, Err: err}
}
