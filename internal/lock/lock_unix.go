//go:build unix

package lock

import (
	"fmt"
	"os"
	"syscall"
)

// LockFile attempts to acquire an exclusive, non-blocking advisory lock on
// the file at path, creating it if needed.
//
// On Unix systems, this uses flock(2). If the lock cannot be acquired, the
// log guarded by path is assumed to be owned by another instance.
//
// The returned file handle must remain open for the duration of the lock.
func LockFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to open lock file: %w", err)
	}

	err = syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	return f, nil
}

// UnlockFile releases a lock acquired via LockFile.
//
// On Unix systems, this releases the advisory flock, closes the file and
// removes it.
func UnlockFile(f *os.File) {
	name := f.Name()
	syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	f.Close()
	os.Remove(name)
}
