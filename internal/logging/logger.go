package logging

import (
	"io"

	"github.com/phuslu/log"
)

// NewLogger returns a console logger at the given level ("trace", "debug",
// "info", "warn", "error"). Unknown levels fall back to info.
func NewLogger(level string) *log.Logger {
	return &log.Logger{
		Level:  log.ParseLevel(level),
		Caller: 0,
		Writer: &log.ConsoleWriter{
			ColorOutput:    false,
			EndWithMessage: true,
		},
	}
}

// NewDiscardLogger returns a logger that drops everything.
func NewDiscardLogger() *log.Logger {
	return &log.Logger{
		Level:  log.ErrorLevel,
		Writer: &log.IOWriter{Writer: io.Discard},
	}
}
