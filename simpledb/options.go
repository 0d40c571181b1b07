package simpledb

import (
	"github.com/phuslu/log"

	"github.com/0xRadioAc7iv/go-simpledb/internal"
)

type options struct {
	cfg    *internal.Config
	logger *log.Logger
}

type Option func(*options)

func WithLogFilePath(path string) Option {
	return func(o *options) {
		o.cfg.LogFilePath = path
	}
}

func WithMaxBytesPerFile(n int64) Option {
	return func(o *options) {
		o.cfg.MaxBytesPerFile = n
	}
}

// WithCompression selects "none" or "zstd".
func WithCompression(algorithm string) Option {
	return func(o *options) {
		o.cfg.Compression = algorithm
	}
}

func WithLogLevel(level string) Option {
	return func(o *options) {
		o.cfg.Logger.Level = level
	}
}

// WithConfig replaces all settings with cfg. Options after it still apply.
func WithConfig(cfg *internal.Config) Option {
	return func(o *options) {
		copied := *cfg
		o.cfg = &copied
	}
}

// WithLogger overrides the logger built from the configured level.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
