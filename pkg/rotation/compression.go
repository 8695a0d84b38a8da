// Package rotation decides which generated files are compressed and
// compresses them next to the original.
package rotation

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/DataDog/zstd"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Codec defines the compression algorithm used for rotated files.
type Codec int

const (
	// CodecGzip writes <path>.gz
	CodecGzip Codec = iota
	// CodecZstd writes <path>.zst
	CodecZstd
)

// String returns the codec name.
func (c Codec) String() string {
	switch c {
	case CodecGzip:
		return "gzip"
	case CodecZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// Extension returns the suffix appended to compressed files.
func (c Codec) Extension() string {
	switch c {
	case CodecZstd:
		return ".zst"
	default:
		return ".gz"
	}
}

// ParseCodec parses a codec name.
func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gzip", "gz":
		return CodecGzip, nil
	case "zstd", "zst":
		return CodecZstd, nil
	default:
		return CodecGzip, fmt.Errorf("unsupported codec: %s", s)
	}
}

// SupportedCodecs returns all codecs a Compressor can use.
func SupportedCodecs() []Codec {
	return []Codec{CodecGzip, CodecZstd}
}

// IsEligible reports whether a file should be compressed, judged by its name
// alone. The live file (.log) and the first rotation (.log.1) stay plain.
func IsEligible(name string) bool {
	return !strings.HasSuffix(name, ".log") && !strings.HasSuffix(name, ".log.1")
}

type writerFactory func(io.Writer) (io.WriteCloser, error)

func gzipWriter(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriterLevel(w, gzip.DefaultCompression)
}

func zstdWriter(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriterLevel(w, zstd.DefaultCompression), nil
}

// Compressor compresses finished files and removes the originals.
// It is not safe for concurrent use.
type Compressor struct {
	codec          Codec
	newWriter      writerFactory
	metricsHandler func(string)
}

// NewCompressor creates a compressor for the given codec.
func NewCompressor(codec Codec) (*Compressor, error) {
	c := &Compressor{codec: codec}
	switch codec {
	case CodecGzip:
		c.newWriter = gzipWriter
	case CodecZstd:
		c.newWriter = zstdWriter
	default:
		return nil, fmt.Errorf("invalid codec: %d", codec)
	}
	return c, nil
}

// SetMetricsHandler sets a callback invoked with an event name after each
// successful compression.
func (c *Compressor) SetMetricsHandler(handler func(string)) {
	c.metricsHandler = handler
}

// Codec returns the configured codec.
func (c *Compressor) Codec() Codec {
	return c.codec
}

// CompressedPath returns where path is compressed to.
func (c *Compressor) CompressedPath(path string) string {
	return filepath.Clean(path) + c.codec.Extension()
}

// Compress writes a compressed copy of path next to it and then deletes
// path. It returns the compressed file's path. A failure at any step leaves
// whatever was already written in place.
func (c *Compressor) Compress(path string) (compressedPath string, err error) {
	cleanPath := filepath.Clean(path)
	compressedPath = c.CompressedPath(cleanPath)

	src, err := os.Open(cleanPath)
	if err != nil {
		return "", errors.Wrap(err, "opening source file for compression")
	}
	defer func() {
		_ = src.Close() // read-only handle
	}()

	dst, err := os.OpenFile(compressedPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644) // #nosec G302 - generated log fixtures
	if err != nil {
		return "", errors.Wrap(err, "creating compressed file")
	}
	dstClosed := false
	defer func() {
		if !dstClosed {
			_ = dst.Close()
		}
	}()

	cw, err := c.newWriter(dst)
	if err != nil {
		return "", errors.Wrapf(err, "creating %s writer", c.codec)
	}

	if _, err = io.Copy(cw, src); err != nil {
		return "", errors.Wrap(err, "compressing file")
	}

	if err = cw.Close(); err != nil {
		return "", errors.Wrapf(err, "finishing %s stream", c.codec)
	}

	dstClosed = true
	if err = dst.Close(); err != nil {
		return "", errors.Wrap(err, "closing compressed file")
	}

	if err = os.Remove(cleanPath); err != nil {
		return "", errors.Wrap(err, "removing original file after compression")
	}

	if c.metricsHandler != nil {
		c.metricsHandler("compression_completed")
	}

	return compressedPath, nil
}

// CompressIfEligible compresses path when its name is eligible. It returns
// the final artifact path and whether compression happened.
func (c *Compressor) CompressIfEligible(path string) (string, bool, error) {
	if !IsEligible(filepath.Base(path)) {
		return path, false, nil
	}
	compressed, err := c.Compress(path)
	if err != nil {
		return "", false, err
	}
	return compressed, true, nil
}
