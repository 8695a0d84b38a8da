// Package backends holds the file sinks generated records are written to.
package backends

import (
	"github.com/wayneeseguin/loggen/pkg/record"
)

// RecordWriter writes rendered records to one output file.
type RecordWriter interface {
	// WriteRecord renders r and writes it followed by a newline
	WriteRecord(r record.Record) error

	// Flush ensures all buffered data reaches the file
	Flush() error

	// Close flushes, syncs and releases the file
	Close() error

	// Path returns the file path
	Path() string

	// GetStats returns write statistics
	GetStats() Stats
}

// Opener creates a RecordWriter for path.
type Opener func(path string, bufferSize int) (RecordWriter, error)

// Stats represents statistics for a writer
type Stats struct {
	Path         string
	WriteCount   uint64
	BytesWritten uint64
}
