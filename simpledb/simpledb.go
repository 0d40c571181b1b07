package simpledb

import (
	"fmt"
	"strings"

	"github.com/0xRadioAc7iv/go-simpledb/core"
	"github.com/0xRadioAc7iv/go-simpledb/internal"
	"github.com/0xRadioAc7iv/go-simpledb/internal/logging"
	"github.com/0xRadioAc7iv/go-simpledb/internal/storage"
)

// DB is the engine returned by Open.
type DB = core.DB

// Open locks the configured log file and returns an engine over it.
func Open(opts ...Option) (*DB, error) {
	o := &options{cfg: internal.DefaultConfig()}
	for _, opt := range opts {
		opt(o)
	}

	cfg := o.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = logging.NewLogger(cfg.Logger.Level)
	}

	fb, err := storage.NewFileBackend(cfg.LogFilePath, uint64(cfg.MaxBytesPerFile))
	if err != nil {
		return nil, err
	}

	var backend storage.Backend = fb
	if strings.EqualFold(cfg.Compression, internal.CompressionZstd) {
		cb, err := storage.NewCompressedBackend(fb)
		if err != nil {
			fb.Close()
			return nil, err
		}
		backend = cb
	}

	db, err := core.New(*logger, backend)
	if err != nil {
		fb.Close()
		return nil, fmt.Errorf("failed to open %s: %w", cfg.LogFilePath, err)
	}

	return db, nil
}
