package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestNewCollector(t *testing.T) {
	c := NewCollector()
	if c == nil {
		t.Fatal("NewCollector() returned nil")
	}

	m := c.GetMetrics()
	if m.FilesWritten != 0 || m.BytesWritten != 0 || m.ErrorCount != 0 {
		t.Errorf("Expected zeroed metrics, got %+v", m)
	}
}

func TestTrackFile(t *testing.T) {
	c := NewCollector()

	c.TrackFile(10, 1500, 2*time.Second)
	c.TrackFile(20, 3000, 4*time.Second)

	m := c.GetMetrics()
	if m.FilesWritten != 2 {
		t.Errorf("FilesWritten = %d, want 2", m.FilesWritten)
	}
	if m.RecordsWritten != 30 {
		t.Errorf("RecordsWritten = %d, want 30", m.RecordsWritten)
	}
	if m.BytesWritten != 4500 {
		t.Errorf("BytesWritten = %d, want 4500", m.BytesWritten)
	}
	if m.AverageFileTime != 3*time.Second {
		t.Errorf("AverageFileTime = %v, want 3s", m.AverageFileTime)
	}
	if m.MaxFileTime != 4*time.Second {
		t.Errorf("MaxFileTime = %v, want 4s", m.MaxFileTime)
	}
}

func TestTrackEvent(t *testing.T) {
	c := NewCollector()

	c.TrackEvent("compression_completed")
	c.TrackEvent("compression_completed")
	c.TrackEvent("something_else")

	if got := c.GetMetrics().CompressionCount; got != 2 {
		t.Errorf("CompressionCount = %d, want 2", got)
	}
}

func TestTrackError(t *testing.T) {
	c := NewCollector()

	tests := []struct {
		source string
		count  int
	}{
		{"write", 3},
		{"compress", 1},
	}

	for _, tt := range tests {
		for i := 0; i < tt.count; i++ {
			c.TrackError(tt.source)
		}
		if got := c.GetErrorCountBySource(tt.source); got != uint64(tt.count) {
			t.Errorf("GetErrorCountBySource(%q) = %d, want %d", tt.source, got, tt.count)
		}
	}

	if got := c.GetErrorCount(); got != 4 {
		t.Errorf("GetErrorCount() = %d, want 4", got)
	}
	if got := c.GetErrorCountBySource("unknown"); got != 0 {
		t.Errorf("Expected 0 for unknown source, got %d", got)
	}
	if got := c.GetMetrics().ErrorsBySource["write"]; got != 3 {
		t.Errorf("ErrorsBySource[write] = %d, want 3", got)
	}
}

func TestResetMetrics(t *testing.T) {
	c := NewCollector()
	c.TrackFile(1, 100, time.Second)
	c.TrackCompression()
	c.TrackError("create")

	c.ResetMetrics()

	m := c.GetMetrics()
	if m.FilesWritten != 0 || m.CompressionCount != 0 || m.ErrorCount != 0 || m.MaxFileTime != 0 {
		t.Errorf("Expected reset metrics, got %+v", m)
	}
	if len(m.ErrorsBySource) != 0 {
		t.Errorf("Expected no error sources after reset, got %v", m.ErrorsBySource)
	}
}

func TestConcurrentReads(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.TrackFile(1, 10, time.Millisecond)
				_ = c.GetMetrics()
			}
		}()
	}
	wg.Wait()

	if got := c.GetMetrics().FilesWritten; got != 400 {
		t.Errorf("FilesWritten = %d, want 400", got)
	}
}
