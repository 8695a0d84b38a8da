package generator

import (
	"time"

	"github.com/wayneeseguin/loggen/internal/logging"
	"github.com/wayneeseguin/loggen/internal/metrics"
	"github.com/wayneeseguin/loggen/pkg/backends"
	"github.com/wayneeseguin/loggen/pkg/clock"
	"github.com/wayneeseguin/loggen/pkg/notify"
	"github.com/wayneeseguin/loggen/pkg/record"
	"github.com/wayneeseguin/loggen/pkg/rotation"
)

// DefaultOutputDir is where files are written when no directory is configured.
const DefaultOutputDir = "/tmp/logs"

// Config contains all configuration options for a Generator.
type Config struct {
	OutputDir string    // Directory receiving the generated files
	StartTime time.Time // Timestamp of the first record
	ResetDir  bool      // Remove and recreate OutputDir before writing

	Provider record.FieldProvider // Field values; nil means a time-seeded RandomProvider
	Codec    rotation.Codec       // Compression codec for old rotations

	BufferSize int             // Write buffer size per file
	Opener     backends.Opener // Creates the per-file writer

	Logger   *logging.Logger    // Progress logger; nil discards
	Notifier notify.Notifier    // Lifecycle events; nil means notify.Nop
	Metrics  *metrics.Collector // Run counters; nil allocates one
}

// DefaultConfig returns a Config with the defaults of the command line tool.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:  DefaultOutputDir,
		StartTime:  clock.DefaultStart,
		ResetDir:   true,
		Codec:      rotation.CodecGzip,
		BufferSize: backends.DefaultBufferSize,
		Opener:     backends.OpenFile,
	}
}

// Option is a functional option for configuring a Generator
type Option func(*Config) error

// WithOutputDir sets the output directory
func WithOutputDir(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewError(ErrCodeArgument, "config", "", nil).
				WithContext("error", "output directory cannot be empty")
		}
		c.OutputDir = dir
		return nil
	}
}

// WithStartTime sets the timestamp of the first record
func WithStartTime(t time.Time) Option {
	return func(c *Config) error {
		if t.IsZero() {
			return NewError(ErrCodeArgument, "config", "", nil).
				WithContext("error", "start time cannot be zero")
		}
		c.StartTime = t
		return nil
	}
}

// WithResetDir controls whether the output directory is wiped first
func WithResetDir(reset bool) Option {
	return func(c *Config) error {
		c.ResetDir = reset
		return nil
	}
}

// WithProvider sets the field provider
func WithProvider(p record.FieldProvider) Option {
	return func(c *Config) error {
		c.Provider = p
		return nil
	}
}

// WithSeed uses a RandomProvider seeded with seed
func WithSeed(seed int64) Option {
	return WithProvider(record.NewSeededProvider(seed))
}

// WithDeterministic uses the fixed field values
func WithDeterministic() Option {
	return WithProvider(record.DefaultFixedProvider())
}

// WithCodec sets the compression codec
func WithCodec(codec rotation.Codec) Option {
	return func(c *Config) error {
		if codec != rotation.CodecGzip && codec != rotation.CodecZstd {
			return NewError(ErrCodeArgument, "config", "", nil).
				WithContext("codec", int(codec))
		}
		c.Codec = codec
		return nil
	}
}

// WithBufferSize sets the per-file write buffer size
func WithBufferSize(size int) Option {
	return func(c *Config) error {
		if size <= 0 {
			return NewError(ErrCodeArgument, "config", "", nil).
				WithContext("buffer_size", size)
		}
		c.BufferSize = size
		return nil
	}
}

// WithOpener replaces the writer factory
func WithOpener(opener backends.Opener) Option {
	return func(c *Config) error {
		c.Opener = opener
		return nil
	}
}

// WithLogger sets the progress logger
func WithLogger(l *logging.Logger) Option {
	return func(c *Config) error {
		c.Logger = l
		return nil
	}
}

// WithNotifier sets the lifecycle event notifier
func WithNotifier(n notify.Notifier) Option {
	return func(c *Config) error {
		c.Notifier = n
		return nil
	}
}

// WithMetrics sets the metrics collector
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Config) error {
		c.Metrics = m
		return nil
	}
}
