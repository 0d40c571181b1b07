package storage

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// CompressedBackend wraps another Backend and stores every value as its own
// zstd frame. Append reports the compressed size, so locations recorded by
// the engine address frames rather than raw values.
type CompressedBackend struct {
	Backend

	enc *zstd.Encoder
	dec *zstd.Decoder
}

func NewCompressedBackend(inner Backend) (*CompressedBackend, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &CompressedBackend{Backend: inner, enc: enc, dec: dec}, nil
}

func (cb *CompressedBackend) Append(value []byte, path string) (int, error) {
	frame := cb.enc.EncodeAll(value, nil)
	return cb.Backend.Append(frame, path)
}

func (cb *CompressedBackend) ReadAt(offset uint64, length int) ([]byte, error) {
	frame, err := cb.Backend.ReadAt(offset, length)
	if err != nil {
		return nil, err
	}

	value, err := cb.dec.DecodeAll(frame, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %d bytes at offset %d: %w", length, offset, err)
	}
	return value, nil
}

// Close releases the codecs and closes the wrapped backend if it holds
// resources.
func (cb *CompressedBackend) Close() error {
	cb.dec.Close()
	err := cb.enc.Close()

	if c, ok := cb.Backend.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil {
			return cerr
		}
	}
	return err
}
