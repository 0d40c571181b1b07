package internal

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/0xRadioAc7iv/go-simpledb/internal/storage"
)

const (
	CompressionNone = "none"
	CompressionZstd = "zstd"

	DEFAULT_LOG_LEVEL = "info"
)

var (
	ErrInvalidMaxBytesPerFile = storage.ErrInvalidMaxBytesPerFile
	ErrUnknownCompression     = errors.New("unknown compression")
	ErrUnknownLogLevel        = errors.New("unknown log level")
)

type Config struct {
	LogFilePath     string       `yaml:"log_file_path"`
	MaxBytesPerFile int64        `yaml:"max_bytes_per_file"`
	Compression     string       `yaml:"compression"`
	Logger          LoggerConfig `yaml:"logger"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		LogFilePath:     storage.DefaultLogFilePath(),
		MaxBytesPerFile: storage.DefaultMaxBytesPerFile,
		Compression:     CompressionNone,
		Logger: LoggerConfig{
			Level: DEFAULT_LOG_LEVEL,
		},
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig. A missing file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if c.MaxBytesPerFile <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxBytesPerFile, c.MaxBytesPerFile)
	}

	switch strings.ToLower(c.Compression) {
	case "", CompressionNone, CompressionZstd:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCompression, c.Compression)
	}

	switch strings.ToLower(c.Logger.Level) {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLogLevel, c.Logger.Level)
	}

	return nil
}
