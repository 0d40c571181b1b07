package internal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xRadioAc7iv/go-simpledb/internal"
	"github.com/0xRadioAc7iv/go-simpledb/internal/storage"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "simpledb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := internal.DefaultConfig()

	assert.Equal(t, int64(10*1024*1024), cfg.MaxBytesPerFile)
	assert.Equal(t, storage.DefaultLogFileName, filepath.Base(cfg.LogFilePath))
	assert.Equal(t, internal.CompressionNone, cfg.Compression)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := internal.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, internal.DefaultConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
log_file_path: /tmp/simpledb/log
max_bytes_per_file: 2048
compression: zstd
logger:
  level: debug
`)

	cfg, err := internal.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/simpledb/log", cfg.LogFilePath)
	assert.Equal(t, int64(2048), cfg.MaxBytesPerFile)
	assert.Equal(t, internal.CompressionZstd, cfg.Compression)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadConfigKeepsDefaultsForOmittedFields(t *testing.T) {
	path := writeConfig(t, "compression: zstd\n")

	cfg, err := internal.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(storage.DefaultMaxBytesPerFile), cfg.MaxBytesPerFile)
	assert.Equal(t, internal.DefaultConfig().LogFilePath, cfg.LogFilePath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*internal.Config)
		err    error
	}{
		{"zero threshold", func(c *internal.Config) { c.MaxBytesPerFile = 0 }, internal.ErrInvalidMaxBytesPerFile},
		{"negative threshold", func(c *internal.Config) { c.MaxBytesPerFile = -1 }, internal.ErrInvalidMaxBytesPerFile},
		{"unknown compression", func(c *internal.Config) { c.Compression = "lz4" }, internal.ErrUnknownCompression},
		{"unknown log level", func(c *internal.Config) { c.Logger.Level = "loud" }, internal.ErrUnknownLogLevel},
		{"upper case values", func(c *internal.Config) { c.Compression = "ZSTD"; c.Logger.Level = "WARN" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := internal.DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoadConfigRejectsZeroThreshold(t *testing.T) {
	path := writeConfig(t, "max_bytes_per_file: 0\n")

	_, err := internal.LoadConfig(path)
	assert.ErrorIs(t, err, internal.ErrInvalidMaxBytesPerFile)
}
