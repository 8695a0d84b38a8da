package rotation

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DataDog/zstd"
	"github.com/klauspost/compress/gzip"
)

func TestIsEligible(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"/tmp/access.log", false},
		{"/tmp/access.log.1", false},
		{"/tmp/access.log.2", true},
		{"/tmp/access.log.10", true},
		{"/tmp/access.log.11", true},
		{"access.log", false},
		{"access.log.1", false},
		{"access.log.21", true},
	}

	for _, tt := range tests {
		if got := IsEligible(tt.name); got != tt.want {
			t.Errorf("IsEligible(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseCodec(t *testing.T) {
	tests := []struct {
		input   string
		want    Codec
		wantErr bool
	}{
		{"gzip", CodecGzip, false},
		{"", CodecGzip, false},
		{"ZSTD", CodecZstd, false},
		{"zst", CodecZstd, false},
		{"lz4", CodecGzip, true},
	}

	for _, tt := range tests {
		got, err := ParseCodec(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCodec(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCodec(%q): unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseCodec(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewCompressorRejectsUnknownCodec(t *testing.T) {
	if _, err := NewCompressor(Codec(99)); err == nil {
		t.Error("Expected error for unknown codec")
	}
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestCompressGzip(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("8.8.8.8 - - [01/Jan/2022:00:00:00 +0100] \"GET / HTTP/1.1\" 200 77 \"-\" \"agent\"\n", 100)
	path := writeFixture(t, dir, "access.log.2", content)

	c, err := NewCompressor(CodecGzip)
	if err != nil {
		t.Fatalf("NewCompressor failed: %v", err)
	}

	events := 0
	c.SetMetricsHandler(func(event string) {
		if event == "compression_completed" {
			events++
		}
	})

	compressed, err := c.Compress(path)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	if compressed != path+".gz" {
		t.Errorf("Expected %s, got %s", path+".gz", compressed)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Original file should have been removed")
	}
	if events != 1 {
		t.Errorf("Expected 1 metrics event, got %d", events)
	}

	f, err := os.Open(compressed)
	if err != nil {
		t.Fatalf("Failed to open compressed file: %v", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("Failed to create gzip reader: %v", err)
	}
	defer gr.Close()

	data, err := io.ReadAll(gr)
	if err != nil {
		t.Fatalf("Failed to read gzip data: %v", err)
	}
	if string(data) != content {
		t.Error("Decompressed content does not match original")
	}
}

func TestCompressZstd(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("zstd line\n", 500)
	path := writeFixture(t, dir, "access.log.3", content)

	c, err := NewCompressor(CodecZstd)
	if err != nil {
		t.Fatalf("NewCompressor failed: %v", err)
	}

	compressed, err := c.Compress(path)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if compressed != path+".zst" {
		t.Errorf("Expected %s, got %s", path+".zst", compressed)
	}

	raw, err := os.ReadFile(compressed)
	if err != nil {
		t.Fatalf("Failed to read compressed file: %v", err)
	}
	data, err := zstd.Decompress(nil, raw)
	if err != nil {
		t.Fatalf("Failed to decompress: %v", err)
	}
	if string(data) != content {
		t.Error("Decompressed content does not match original")
	}
}

func TestCompressMissingFile(t *testing.T) {
	c, _ := NewCompressor(CodecGzip)
	if _, err := c.Compress(filepath.Join(t.TempDir(), "missing.log.2")); err == nil {
		t.Error("Expected error compressing a missing file")
	}
}

func TestCompressIfEligible(t *testing.T) {
	dir := t.TempDir()
	c, _ := NewCompressor(CodecGzip)

	plain := writeFixture(t, dir, "access.log.1", "line\n")
	got, compressed, err := c.CompressIfEligible(plain)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if compressed || got != plain {
		t.Errorf("access.log.1 must stay plain, got %s (compressed=%v)", got, compressed)
	}
	if _, err := os.Stat(plain); err != nil {
		t.Errorf("Plain file should remain: %v", err)
	}

	old := writeFixture(t, dir, "access.log.2", "line\n")
	got, compressed, err = c.CompressIfEligible(old)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !compressed || got != old+".gz" {
		t.Errorf("access.log.2 should be compressed, got %s (compressed=%v)", got, compressed)
	}
}

func TestCodecStrings(t *testing.T) {
	for _, codec := range SupportedCodecs() {
		parsed, err := ParseCodec(codec.String())
		if err != nil || parsed != codec {
			t.Errorf("Codec %v did not survive String/ParseCodec: %v %v", codec, parsed, err)
		}
	}
	if Codec(42).String() != "unknown" {
		t.Error("Expected unknown for invalid codec")
	}
}
