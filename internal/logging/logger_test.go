package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func newTestLogger(level int) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(&buf, level)
	l.now = func() time.Time { return time.Date(2022, time.January, 1, 12, 0, 0, 0, time.UTC) }
	return l, &buf
}

func TestInfof(t *testing.T) {
	l, buf := newTestLogger(LevelInfo)
	l.Infof("Creating file of %v GB", 1.5)

	want := "[2022-01-01 12:00:00.000] [INFO] Creating file of 1.5 GB\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newTestLogger(LevelWarn)
	l.Debugf("hidden")
	l.Infof("hidden")
	l.Warnf("shown")
	l.Errorf("shown too")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "[WARN] shown") || !strings.Contains(lines[1], "[ERROR] shown too") {
		t.Errorf("Unexpected output %q", buf.String())
	}
}

func TestInfoWithFieldsSorted(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)
	l.InfoWithFields("File created", map[string]interface{}{
		"path":  "/tmp/logs/access.log",
		"bytes": 100213,
		"name":  "with space",
	})

	want := `[2022-01-01 12:00:00.000] [INFO] File created bytes=100213 name="with space" path=/tmp/logs/access.log` + "\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Errorf("nothing")
	if l.GetLevel() <= LevelError {
		t.Error("Discard logger should filter every level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]int{
		"trace":   LevelTrace,
		"DEBUG":   LevelDebug,
		"Info":    LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"bogus":   LevelInfo,
	}
	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %d, want %d", input, got, want)
		}
	}
}

func TestLevelName(t *testing.T) {
	if LevelName(LevelWarn) != "WARN" || LevelName(99) != "LOG" {
		t.Error("Unexpected level names")
	}
}
