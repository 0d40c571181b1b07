package core

import (
	"errors"
	"fmt"

	"github.com/0xRadioAc7iv/go-simpledb/internal/storage"
)

var (
	// ErrFault marks a storage failure. Once returned, the DB refuses all
	// further operations.
	ErrFault = errors.New("storage fault")

	// ErrClosed is returned by operations on a closed DB.
	ErrClosed = errors.New("database is closed")

	// ErrInvalidMaxBytesPerFile is returned by New when the backend reports a
	// zero compaction threshold.
	ErrInvalidMaxBytesPerFile = storage.ErrInvalidMaxBytesPerFile
)

// FaultError describes a storage failure hit while running Op. It matches
// both ErrFault and the underlying storage error with errors.Is.
type FaultError struct {
	Op  string // "open", "get", "set" or "compact"
	Key string // Key being processed, if any
	Err error
}

func (e *FaultError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s: %v", ErrFault, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s %q: %v", ErrFault, e.Op, e.Key, e.Err)
}

func (e *FaultError) Unwrap() []error {
	return []error{ErrFault, e.Err}
}
