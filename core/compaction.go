package core

import (
	"time"

	"github.com/0xRadioAc7iv/go-simpledb/internal/storage"
)

// compact rewrites every live value into a fresh log file and swaps it in
// place of the current one.
//
// Steps:
//  1. create "<log>.tmp", dropping any leftover from an aborted run
//  2. copy each indexed value into it, building a new KeyDir
//  3. rename "<log>" to "<log>.old", then "<log>.tmp" to "<log>"
//  4. install the new KeyDir
//  5. remove "<log>.old" and "<log>.tmp"
//
// The two renames are not atomic. A crash between them leaves no file at the
// log path and nothing here recovers from that.
func (db *DB) compact() error {
	start := time.Now()
	logPath := db.backend.Path()
	tmpPath := storage.TmpLogFilePath(logPath)
	oldPath := storage.OldLogFilePath(logPath)

	sizeBefore, err := db.backend.Size()
	if err != nil {
		return db.fail("compact", "", err)
	}

	db.logger.Info().
		Str("path", logPath).
		Uint64("size", sizeBefore).
		Int("keys", len(db.keyDir)).
		Msg("log file size before compaction")

	// A stale temp file would shift every offset recorded below.
	if err := db.backend.Delete(tmpPath); err != nil {
		return db.fail("compact", "", err)
	}
	if err := db.backend.CreateIfAbsent(tmpPath); err != nil {
		return db.fail("compact", "", err)
	}

	compacted := make(KeyDir, len(db.keyDir))
	var written uint64

	for key, loc := range db.keyDir {
		value, err := db.backend.ReadAt(loc.Offset, loc.Length)
		if err != nil {
			return db.fail("compact", key, err)
		}

		n, err := db.backend.Append(value, tmpPath)
		if err != nil {
			return db.fail("compact", key, err)
		}

		compacted[key] = Location{Offset: written, Length: n}
		written += uint64(n)
	}

	if err := db.backend.Rename(logPath, oldPath); err != nil {
		return db.fail("compact", "", err)
	}
	if err := db.backend.Rename(tmpPath, logPath); err != nil {
		return db.fail("compact", "", err)
	}

	db.keyDir = compacted
	db.compactions++

	if err := db.backend.Delete(oldPath); err != nil {
		return db.fail("compact", "", err)
	}
	if err := db.backend.Delete(tmpPath); err != nil {
		return db.fail("compact", "", err)
	}

	sizeAfter, err := db.backend.Size()
	if err != nil {
		return db.fail("compact", "", err)
	}

	db.logger.Info().
		Str("path", logPath).
		Uint64("size", sizeAfter).
		Uint64("reclaimed", sizeBefore-min(sizeBefore, sizeAfter)).
		Dur("took", time.Since(start)).
		Msg("log file size after compaction")

	return nil
}
