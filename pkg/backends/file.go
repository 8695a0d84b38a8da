package backends

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"

	"github.com/wayneeseguin/loggen/pkg/record"
)

// DefaultBufferSize for file operations
const DefaultBufferSize = 32 * 1024

// ErrFileLocked is returned when another process holds the output file.
var ErrFileLocked = errors.New("file is locked by another process")

// FileWriter writes records sequentially to a freshly created file.
// The file stays locked from creation until Close.
type FileWriter struct {
	file    *os.File
	writer  *bufio.Writer
	lock    *flock.Flock
	path    string
	line    []byte
	written uint64
	records uint64
	closed  bool
}

var _ RecordWriter = (*FileWriter)(nil)

// OpenFile is the default Opener.
func OpenFile(path string, bufferSize int) (RecordWriter, error) {
	return NewFileWriter(path, bufferSize)
}

// NewFileWriter creates (or truncates) path and locks it for writing.
func NewFileWriter(path string, bufferSize int) (*FileWriter, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	cleanPath := filepath.Clean(path)

	file, err := os.OpenFile(cleanPath, os.O_CREATE|os.O_WRONLY, 0644) // #nosec G302 - generated log fixtures
	if err != nil {
		return nil, errors.Wrap(err, "create file")
	}

	lock := flock.New(cleanPath)
	locked, err := lock.TryLock()
	if err != nil {
		_ = file.Close()
		return nil, errors.Wrap(err, "acquire lock")
	}
	if !locked {
		_ = file.Close()
		return nil, errors.WithStack(ErrFileLocked)
	}

	if err := file.Truncate(0); err != nil {
		_ = lock.Unlock()
		_ = file.Close()
		return nil, errors.Wrap(err, "truncate file")
	}

	return &FileWriter{
		file:   file,
		writer: bufio.NewWriterSize(file, bufferSize),
		lock:   lock,
		path:   cleanPath,
		line:   make([]byte, 0, 256),
	}, nil
}

// WriteRecord writes one record terminated by a newline.
func (fw *FileWriter) WriteRecord(r record.Record) error {
	fw.line = append(r.AppendTo(fw.line[:0]), '\n')
	n, err := fw.writer.Write(fw.line)
	fw.written += uint64(n)
	if err != nil {
		return errors.Wrap(err, "write record")
	}
	fw.records++
	return nil
}

// Flush flushes buffered data to the file
func (fw *FileWriter) Flush() error {
	if err := fw.writer.Flush(); err != nil {
		return errors.Wrap(err, "flush")
	}
	return nil
}

// Close flushes and syncs the file, then releases the lock and handle.
// Calling Close more than once is a no-op.
func (fw *FileWriter) Close() error {
	if fw.closed {
		return nil
	}
	fw.closed = true

	var first error
	keep := func(err error) {
		if first == nil && err != nil {
			first = err
		}
	}

	keep(fw.Flush())
	if err := fw.file.Sync(); err != nil {
		keep(errors.Wrap(err, "sync"))
	}
	if err := fw.lock.Unlock(); err != nil {
		keep(errors.Wrap(err, "unlock"))
	}
	if err := fw.file.Close(); err != nil {
		keep(errors.Wrap(err, "close file"))
	}
	return first
}

// Path returns the file path
func (fw *FileWriter) Path() string {
	return fw.path
}

// GetStats returns write statistics
func (fw *FileWriter) GetStats() Stats {
	return Stats{
		Path:         fw.path,
		WriteCount:   fw.records,
		BytesWritten: fw.written,
	}
}

// FileSize returns the size of path as stored on disk.
func FileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, errors.Wrap(err, "stat file")
	}
	if info.Size() < 0 {
		return 0, nil
	}
	return uint64(info.Size()), nil
}
