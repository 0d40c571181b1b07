// Package storage provides the file-access capability used by the log
// engine: append-only writes, random-offset reads of the current log file,
// size queries and file lifecycle operations.
//
// Every Backend call either succeeds or returns an error. The engine treats
// any returned error as a fault and never retries.
package storage

import (
	"errors"
	"fmt"
)

const (
	OneMegabyte = 1024 * 1024 // 1024 (1KB) * 1024 => 1MB

	DefaultLogFileName     = "log"
	DefaultMaxBytesPerFile = 10 * OneMegabyte

	TmpLogFileExt = ".tmp"  // Suffix of the log being built during compaction
	OldLogFileExt = ".old"  // Suffix of the replaced log during compaction
	LockFileExt   = ".lock" // Suffix of the lock file held by FileBackend
)

var (
	// ErrNotExist is returned when a file the caller expects is missing.
	ErrNotExist = errors.New("file does not exist")

	// ErrShortRead is returned when fewer bytes than requested could be read.
	ErrShortRead = errors.New("short read")

	// ErrInvalidMaxBytesPerFile is returned when the compaction threshold is not positive.
	ErrInvalidMaxBytesPerFile = errors.New("max bytes per file must be strictly positive")
)

// Backend is the set of file operations the engine relies on.
//
// Path names the current log file. ReadAt always reads from that file, while
// Append takes an explicit path so that compaction can fill a temporary file.
type Backend interface {
	// Path returns the path of the current log file.
	Path() string

	// Size returns the number of bytes currently in the log file.
	Size() (uint64, error)

	// MaxBytesPerFile returns the compaction threshold.
	MaxBytesPerFile() uint64

	// CreateIfAbsent creates an empty file at path unless one exists.
	CreateIfAbsent(path string) error

	// Append writes value at the end of the file at path and returns the
	// exact number of bytes written.
	Append(value []byte, path string) (int, error)

	// ReadAt reads exactly length bytes starting at offset in the log file.
	ReadAt(offset uint64, length int) ([]byte, error)

	// Delete removes the file at path. Missing files are ignored.
	Delete(path string) error

	// Rename moves oldPath to newPath. A missing oldPath is ignored.
	Rename(oldPath, newPath string) error
}

// TmpLogFilePath returns the fixed name of the file compaction writes into.
func TmpLogFilePath(logPath string) string {
	return logPath + TmpLogFileExt
}

// OldLogFilePath returns the fixed name the current log is moved to while
// the compacted log takes its place.
func OldLogFilePath(logPath string) string {
	return logPath + OldLogFileExt
}

func shortRead(path string, offset uint64, got, want int) error {
	return fmt.Errorf("%w: got %d of %d bytes at offset %d in %s", ErrShortRead, got, want, offset, path)
}
