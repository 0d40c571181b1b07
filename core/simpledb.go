package core

import (
	"io"

	"github.com/phuslu/log"

	"github.com/0xRadioAc7iv/go-simpledb/internal/storage"
)

// DB is a log-structured key-value store over a single log file.
//
// Values are appended to the log and the KeyDir remembers where the latest
// value of each key lives. DB is not safe for concurrent use: it assumes a
// single owner of both the index and the log file.
type DB struct {
	keyDir      KeyDir
	backend     storage.Backend
	logger      log.Logger
	compactions uint64

	fault  error // first storage failure; sticky
	closed bool
}

// Stats is a snapshot of the engine's bookkeeping.
type Stats struct {
	Keys         int    // Number of live keys
	LiveBytes    uint64 // Bytes referenced by the KeyDir
	LogSize      uint64 // Bytes in the current log file
	GarbageBytes uint64 // LogSize - LiveBytes
	Compactions  uint64 // Compactions completed since New
}

// New returns a DB over backend, creating the log file if it does not exist.
//
// The KeyDir always starts empty. Bytes already present in an existing log
// are not scanned; they stay unreachable until the next compaction drops
// them.
func New(logger log.Logger, backend storage.Backend) (*DB, error) {
	if backend.MaxBytesPerFile() == 0 {
		return nil, ErrInvalidMaxBytesPerFile
	}

	if err := backend.CreateIfAbsent(backend.Path()); err != nil {
		logger.Error().Err(err).Str("path", backend.Path()).Msg("unable to create log file")
		return nil, &FaultError{Op: "open", Err: err}
	}

	logger.Debug().
		Str("path", backend.Path()).
		Uint64("max_bytes_per_file", backend.MaxBytesPerFile()).
		Msg("log opened")

	return &DB{
		keyDir:  make(KeyDir),
		backend: backend,
		logger:  logger,
	}, nil
}

// Get returns the latest value stored for key. A missing key is reported by
// found == false and a nil error.
func (db *DB) Get(key string) (value string, found bool, err error) {
	if err := db.usable(); err != nil {
		return "", false, err
	}

	loc, ok := db.keyDir[key]
	if !ok {
		return "", false, nil
	}

	data, err := db.backend.ReadAt(loc.Offset, loc.Length)
	if err != nil {
		return "", false, db.fail("get", key, err)
	}

	return string(data), true, nil
}

// Set appends value to the log and points key at it. Any previous value of
// key becomes garbage. If the log has grown past the threshold, Set compacts
// it before returning.
func (db *DB) Set(key, value string) error {
	if err := db.usable(); err != nil {
		return err
	}

	offset, err := db.backend.Size()
	if err != nil {
		return db.fail("set", key, err)
	}

	n, err := db.backend.Append([]byte(value), db.backend.Path())
	if err != nil {
		return db.fail("set", key, err)
	}

	loc := Location{Offset: offset, Length: n}
	db.keyDir[key] = loc

	if loc.End() > db.backend.MaxBytesPerFile() {
		return db.compact()
	}

	return nil
}

// Delete drops key from the index. Deleting a missing key is a no-op.
func (db *DB) Delete(key string) error {
	if err := db.usable(); err != nil {
		return err
	}

	delete(db.keyDir, key)
	return nil
}

// Stats reports index and log sizes. The log size is zero if it cannot be
// read.
func (db *DB) Stats() Stats {
	live := db.keyDir.LiveBytes()

	stats := Stats{
		Keys:        len(db.keyDir),
		LiveBytes:   live,
		Compactions: db.compactions,
	}

	if db.closed || db.fault != nil {
		return stats
	}

	if size, err := db.backend.Size(); err == nil {
		stats.LogSize = size
		if size > live {
			stats.GarbageBytes = size - live
		}
	}

	return stats
}

// Close releases the backend. The DB cannot be used afterwards.
func (db *DB) Close() error {
	if db.closed {
		return ErrClosed
	}
	db.closed = true

	if c, ok := db.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (db *DB) usable() error {
	if db.closed {
		return ErrClosed
	}
	return db.fault
}

// fail records the first storage failure. The log can no longer be trusted
// to match the KeyDir, so every later call returns the same error.
func (db *DB) fail(op, key string, err error) error {
	fault := &FaultError{Op: op, Key: key, Err: err}
	db.fault = fault

	db.logger.Error().Err(err).Str("op", op).Str("key", key).Msg("storage fault")
	return fault
}
