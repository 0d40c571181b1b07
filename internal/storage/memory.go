package storage

import (
	"fmt"

	"github.com/zhangyunhao116/skipmap"
)

type fileSet = skipmap.FuncMap[string, []byte]

// MemoryBackend keeps every file in memory, keyed by path. It behaves like
// FileBackend without touching the disk and is meant for tests and demos.
type MemoryBackend struct {
	path            string
	maxBytesPerFile uint64
	files           *fileSet
}

// NewMemoryBackend returns a backend whose current log is named path. An
// empty path selects DefaultLogFileName.
func NewMemoryBackend(path string, maxBytesPerFile uint64) (*MemoryBackend, error) {
	if maxBytesPerFile == 0 {
		return nil, ErrInvalidMaxBytesPerFile
	}
	if path == "" {
		path = DefaultLogFileName
	}

	return &MemoryBackend{
		path:            path,
		maxBytesPerFile: maxBytesPerFile,
		files: skipmap.NewFunc[string, []byte](func(a, b string) bool {
			return a < b
		}),
	}, nil
}

func (mb *MemoryBackend) Path() string {
	return mb.path
}

func (mb *MemoryBackend) MaxBytesPerFile() uint64 {
	return mb.maxBytesPerFile
}

func (mb *MemoryBackend) Size() (uint64, error) {
	data, ok := mb.files.Load(mb.path)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotExist, mb.path)
	}
	return uint64(len(data)), nil
}

func (mb *MemoryBackend) CreateIfAbsent(path string) error {
	if _, ok := mb.files.Load(path); !ok {
		mb.files.Store(path, []byte{})
	}
	return nil
}

func (mb *MemoryBackend) Append(value []byte, path string) (int, error) {
	data, _ := mb.files.Load(path)

	grown := make([]byte, len(data), len(data)+len(value))
	copy(grown, data)
	grown = append(grown, value...)
	mb.files.Store(path, grown)

	return len(value), nil
}

func (mb *MemoryBackend) ReadAt(offset uint64, length int) ([]byte, error) {
	data, ok := mb.files.Load(mb.path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, mb.path)
	}

	if offset > uint64(len(data)) {
		return nil, shortRead(mb.path, offset, 0, length)
	}
	available := len(data) - int(offset)
	if available < length {
		return nil, shortRead(mb.path, offset, available, length)
	}

	buf := make([]byte, length)
	copy(buf, data[offset:])
	return buf, nil
}

func (mb *MemoryBackend) Delete(path string) error {
	mb.files.Delete(path)
	return nil
}

func (mb *MemoryBackend) Rename(oldPath, newPath string) error {
	data, ok := mb.files.Load(oldPath)
	if !ok {
		return nil
	}
	mb.files.Store(newPath, data)
	mb.files.Delete(oldPath)
	return nil
}

// Paths lists every file currently held, in sorted order.
func (mb *MemoryBackend) Paths() []string {
	paths := make([]string, 0, mb.files.Len())
	mb.files.Range(func(path string, _ []byte) bool {
		paths = append(paths, path)
		return true
	})
	return paths
}

// Bytes returns a copy of the file at path.
func (mb *MemoryBackend) Bytes(path string) ([]byte, bool) {
	data, ok := mb.files.Load(path)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}
