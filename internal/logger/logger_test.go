package logger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func captureLogger(t *testing.T, level Level) (*Logger, func() string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "log.jsonl")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })

	read := func() string {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}
	return New(level, f), read
}

func TestLogEntryShape(t *testing.T) {
	l, read := captureLogger(t, LevelDebug)

	l.Info("parsed schedule", Fields{"cards": 3})

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(read())), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("level = %q, want INFO", entry.Level)
	}
	if entry.Message != "parsed schedule" {
		t.Errorf("message = %q", entry.Message)
	}
	if entry.Fields["cards"] != float64(3) {
		t.Errorf("fields = %v", entry.Fields)
	}
	if _, err := time.Parse(time.RFC3339, entry.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", entry.Timestamp, err)
	}
}

func TestLogErrorField(t *testing.T) {
	l, read := captureLogger(t, LevelDebug)

	l.Error("fetch failed", Fields{"url": "https://example.com"}, errors.New("connection refused"))

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(read())), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if entry.Error != "connection refused" {
		t.Errorf("error = %q", entry.Error)
	}
}

func TestLevelFiltering(t *testing.T) {
	l, read := captureLogger(t, LevelWarn)

	l.Debug("dropped", nil)
	l.Info("dropped too", nil)
	l.Warn("kept", nil)
	l.Error("also kept", nil, nil)

	out := read()
	if strings.Contains(out, "dropped") {
		t.Errorf("messages below minimum level should be discarded:\n%s", out)
	}
	if lines := strings.Count(strings.TrimSpace(out), "\n") + 1; lines != 2 {
		t.Errorf("expected 2 log lines, got %d:\n%s", lines, out)
	}
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("fetches")
	m.IncrCounter("fetches")
	m.RecordTiming("parse", 100*time.Millisecond)
	m.RecordTiming("parse", 50*time.Millisecond)

	snap := m.GetSnapshot()
	counters := snap["counters"].(map[string]int64)
	if counters["fetches"] != 2 {
		t.Errorf("fetches counter = %d, want 2", counters["fetches"])
	}
	timings := snap["timings"].(map[string]string)
	if timings["parse"] != "150ms" {
		t.Errorf("parse timing = %q, want 150ms", timings["parse"])
	}
}
