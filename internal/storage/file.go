package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/0xRadioAc7iv/go-simpledb/internal/lock"
	"github.com/0xRadioAc7iv/go-simpledb/internal/utils"
)

// FileBackend is a Backend over regular files.
//
// Files are opened for the duration of a single call, so the current log can
// be renamed underneath the backend during compaction. The backend holds an
// exclusive lock on "<log>.lock" until Close is called.
type FileBackend struct {
	path            string
	maxBytesPerFile uint64
	lockFile        *os.File
}

// DefaultLogFilePath returns "log" inside the working directory.
func DefaultLogFilePath() string {
	wd, err := os.Getwd()
	if err != nil {
		return DefaultLogFileName
	}
	return filepath.Join(wd, DefaultLogFileName)
}

// NewFileBackend locks the log at path and returns a backend for it. An
// empty path selects DefaultLogFilePath.
func NewFileBackend(path string, maxBytesPerFile uint64) (*FileBackend, error) {
	if maxBytesPerFile == 0 {
		return nil, ErrInvalidMaxBytesPerFile
	}
	if path == "" {
		path = DefaultLogFilePath()
	}

	lf, err := lock.LockFile(path + LockFileExt)
	if err != nil {
		return nil, err
	}

	return &FileBackend{
		path:            path,
		maxBytesPerFile: maxBytesPerFile,
		lockFile:        lf,
	}, nil
}

func (fb *FileBackend) Path() string {
	return fb.path
}

func (fb *FileBackend) MaxBytesPerFile() uint64 {
	return fb.maxBytesPerFile
}

func (fb *FileBackend) Size() (uint64, error) {
	info, err := os.Stat(fb.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrNotExist, fb.path)
		}
		return 0, fmt.Errorf("unable to get metadata for file %s: %w", fb.path, err)
	}
	return uint64(info.Size()), nil
}

func (fb *FileBackend) CreateIfAbsent(path string) error {
	if utils.PathExists(path) {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	return f.Close()
}

func (fb *FileBackend) Append(value []byte, path string) (int, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	n, err := f.Write(value)
	if err != nil {
		return n, fmt.Errorf("failed to write to file %s: %w", path, err)
	}

	return n, f.Close()
}

func (fb *FileBackend) ReadAt(offset uint64, length int) ([]byte, error) {
	f, err := os.Open(fb.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, fb.path)
		}
		return nil, fmt.Errorf("unable to open file %s: %w", fb.path, err)
	}
	defer f.Close()

	buf := make([]byte, length)
	n, err := f.ReadAt(buf, int64(offset))
	if n < length {
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("unable to read %d bytes from file %s: %w", length, fb.path, err)
		}
		return nil, shortRead(fb.path, offset, n, length)
	}

	return buf, nil
}

func (fb *FileBackend) Delete(path string) error {
	if !utils.PathExists(path) {
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("unable to delete file %s: %w", path, err)
	}
	return nil
}

func (fb *FileBackend) Rename(oldPath, newPath string) error {
	if !utils.PathExists(oldPath) {
		return nil
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("unable to rename file %s to %s: %w", oldPath, newPath, err)
	}
	return nil
}

// Close releases the lock on the log file.
func (fb *FileBackend) Close() error {
	if fb.lockFile != nil {
		lock.UnlockFile(fb.lockFile)
		fb.lockFile = nil
	}
	return nil
}
