// Package lock guards a log file against being opened by two instances at
// once.
package lock

import "errors"

// ErrLocked is returned when another instance already holds the lock.
var ErrLocked = errors.New("log file already in use by another simpledb instance")
