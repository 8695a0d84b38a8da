package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector accumulates counters for a generation run.
// Counters are atomic so a collector can be read while a run is in progress.
type Collector struct {
	filesWritten     uint64
	recordsWritten   uint64
	bytesWritten     uint64
	compressionCount uint64

	errorCount     uint64
	errorsBySource sync.Map // map[string]*atomic.Uint64

	fileCount     uint64
	totalFileTime int64 // nanoseconds
	maxFileTime   int64 // nanoseconds
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Metrics is a point-in-time snapshot of a Collector.
type Metrics struct {
	FilesWritten     uint64            `json:"files_written"`
	RecordsWritten   uint64            `json:"records_written"`
	BytesWritten     uint64            `json:"bytes_written"`
	CompressionCount uint64            `json:"compression_count"`
	ErrorCount       uint64            `json:"error_count"`
	ErrorsBySource   map[string]uint64 `json:"errors_by_source"`
	AverageFileTime  time.Duration     `json:"average_file_time"`
	MaxFileTime      time.Duration     `json:"max_file_time"`
}

// GetMetrics returns current metrics snapshot.
func (c *Collector) GetMetrics() Metrics {
	m := Metrics{
		FilesWritten:     atomic.LoadUint64(&c.filesWritten),
		RecordsWritten:   atomic.LoadUint64(&c.recordsWritten),
		BytesWritten:     atomic.LoadUint64(&c.bytesWritten),
		CompressionCount: atomic.LoadUint64(&c.compressionCount),
		ErrorCount:       atomic.LoadUint64(&c.errorCount),
		ErrorsBySource:   make(map[string]uint64),
		MaxFileTime:      time.Duration(atomic.LoadInt64(&c.maxFileTime)),
	}

	c.errorsBySource.Range(func(key, value interface{}) bool {
		if count := value.(*atomic.Uint64).Load(); count > 0 {
			m.ErrorsBySource[key.(string)] = count
		}
		return true
	})

	if n := atomic.LoadUint64(&c.fileCount); n > 0 {
		m.AverageFileTime = time.Duration(atomic.LoadInt64(&c.totalFileTime)) / time.Duration(n)
	}

	return m
}

// ResetMetrics resets all metrics counters.
func (c *Collector) ResetMetrics() {
	atomic.StoreUint64(&c.filesWritten, 0)
	atomic.StoreUint64(&c.recordsWritten, 0)
	atomic.StoreUint64(&c.bytesWritten, 0)
	atomic.StoreUint64(&c.compressionCount, 0)
	atomic.StoreUint64(&c.errorCount, 0)
	atomic.StoreUint64(&c.fileCount, 0)
	atomic.StoreInt64(&c.totalFileTime, 0)
	atomic.StoreInt64(&c.maxFileTime, 0)

	c.errorsBySource.Range(func(key, value interface{}) bool {
		value.(*atomic.Uint64).Store(0)
		return true
	})
}

// TrackFile records a completed file.
func (c *Collector) TrackFile(records, bytes uint64, duration time.Duration) {
	atomic.AddUint64(&c.filesWritten, 1)
	atomic.AddUint64(&c.recordsWritten, records)
	atomic.AddUint64(&c.bytesWritten, bytes)
	atomic.AddUint64(&c.fileCount, 1)
	atomic.AddInt64(&c.totalFileTime, int64(duration))

	for {
		oldMax := atomic.LoadInt64(&c.maxFileTime)
		if int64(duration) <= oldMax {
			break
		}
		if atomic.CompareAndSwapInt64(&c.maxFileTime, oldMax, int64(duration)) {
			break
		}
	}
}

// TrackCompression increments the compression counter.
func (c *Collector) TrackCompression() {
	atomic.AddUint64(&c.compressionCount, 1)
}

// TrackEvent adapts string events from component callbacks.
func (c *Collector) TrackEvent(event string) {
	switch event {
	case "compression_completed":
		c.TrackCompression()
	}
}

// TrackError increments the error counter and tracks by source.
func (c *Collector) TrackError(source string) {
	atomic.AddUint64(&c.errorCount, 1)

	val, _ := c.errorsBySource.LoadOrStore(source, &atomic.Uint64{})
	val.(*atomic.Uint64).Add(1)
}

// GetErrorCount returns the total error count.
func (c *Collector) GetErrorCount() uint64 {
	return atomic.LoadUint64(&c.errorCount)
}

// GetErrorCountBySource returns the error count for a specific source.
func (c *Collector) GetErrorCountBySource(source string) uint64 {
	if val, ok := c.errorsBySource.Load(source); ok {
		if counter, ok := val.(*atomic.Uint64); ok {
			return counter.Load()
		}
	}
	return 0
}
