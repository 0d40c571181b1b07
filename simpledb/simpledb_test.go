package simpledb_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xRadioAc7iv/go-simpledb/internal"
	"github.com/0xRadioAc7iv/go-simpledb/internal/lock"
	"github.com/0xRadioAc7iv/go-simpledb/internal/logging"
	"github.com/0xRadioAc7iv/go-simpledb/simpledb"
)

func mustOpen(t *testing.T, opts ...simpledb.Option) *simpledb.DB {
	t.Helper()

	opts = append([]simpledb.Option{simpledb.WithLogger(logging.NewDiscardLogger())}, opts...)

	db, err := simpledb.Open(opts...)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestOpenSetGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log")
	db := mustOpen(t, simpledb.WithLogFilePath(path))

	if err := db.Set("foo", "bar"); err != nil {
		t.Fatal(err)
	}

	val, found, err := db.Get("foo")
	if err != nil {
		t.Fatal(err)
	}
	if !found || val != "bar" {
		t.Fatalf("expected bar, got %q (found=%v)", val, found)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "bar" {
		t.Fatalf("expected raw log to hold bar, got %q", data)
	}
}

func TestOpenWithCompression(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log")
	db := mustOpen(t,
		simpledb.WithLogFilePath(path),
		simpledb.WithCompression("zstd"),
		simpledb.WithMaxBytesPerFile(256),
	)

	for i := 0; i < 20; i++ {
		if err := db.Set("city", "new york"); err != nil {
			t.Fatal(err)
		}
	}

	val, found, err := db.Get("city")
	if err != nil {
		t.Fatal(err)
	}
	if !found || val != "new york" {
		t.Fatalf("expected new york, got %q", val)
	}

	if db.Stats().Compactions == 0 {
		t.Fatal("expected at least one compaction")
	}
}

func TestOpenRejectsInvalidThreshold(t *testing.T) {
	_, err := simpledb.Open(
		simpledb.WithLogger(logging.NewDiscardLogger()),
		simpledb.WithLogFilePath(filepath.Join(t.TempDir(), "log")),
		simpledb.WithMaxBytesPerFile(0),
	)
	if !errors.Is(err, internal.ErrInvalidMaxBytesPerFile) {
		t.Fatalf("expected ErrInvalidMaxBytesPerFile, got %v", err)
	}
}

func TestOpenTwiceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log")
	mustOpen(t, simpledb.WithLogFilePath(path))

	_, err := simpledb.Open(
		simpledb.WithLogger(logging.NewDiscardLogger()),
		simpledb.WithLogFilePath(path),
	)
	if !errors.Is(err, lock.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestOpenWithConfig(t *testing.T) {
	cfg := internal.DefaultConfig()
	cfg.LogFilePath = filepath.Join(t.TempDir(), "log")
	cfg.MaxBytesPerFile = 8

	db := mustOpen(t, simpledb.WithConfig(cfg))

	if err := db.Set("a", "123456789"); err != nil {
		t.Fatal(err)
	}

	if got := db.Stats().Compactions; got != 1 {
		t.Fatalf("expected 1 compaction, got %d", got)
	}
}
