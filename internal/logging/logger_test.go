package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("probe complete", String("path", "/media/test.mp4"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "probe complete" {
		t.Fatalf("unexpected message %v", record["msg"])
	}
	if record["path"] != "/media/test.mp4" {
		t.Fatalf("unexpected path attr %v", record["path"])
	}
}

func TestNewHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("should be suppressed")
	logger.Warn("should appear")

	output := buf.String()
	if strings.Contains(output, "suppressed") {
		t.Fatalf("info line leaked through warn level: %q", output)
	}
	if !strings.Contains(output, "should appear") {
		t.Fatalf("warn line missing: %q", output)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewMirrorsToLogDir(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf, LogDir: dir})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("mirrored line")

	data, err := os.ReadFile(filepath.Join(dir, "clipkit.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "mirrored line") {
		t.Fatalf("log file missing mirrored line: %q", data)
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should be disabled at every level")
	}
	logger.Error("goes nowhere", Error(nil))
}
