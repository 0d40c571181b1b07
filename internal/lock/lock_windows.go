//go:build windows

package lock

import (
	"fmt"
	"os"
)

// LockFile attempts to acquire an exclusive lock by creating the file at
// path.
//
// On Windows, this is implemented by atomically creating the file. If it
// already exists, the log guarded by path is assumed to be owned by another
// instance.
//
// The returned file handle must be kept open for the duration of the lock.
func LockFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	return f, nil
}

// UnlockFile releases a lock acquired via LockFile.
//
// On Windows, this removes the lock file from disk. UnlockFile should be
// called exactly once for each successful LockFile call.
func UnlockFile(f *os.File) {
	name := f.Name()
	f.Close()
	os.Remove(name)
}
