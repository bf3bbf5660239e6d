package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_WritesToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "nested", "bookshelf.log")
	logger, closeFn, err := Setup(path, false)
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	logger.Info("search completed", "query", "title:dune")
	logger.Debug("hidden")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `msg="search completed"`) || !strings.Contains(out, "query=title:dune") {
		t.Fatalf("log output = %q, want message and query attr", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %q", out)
	}
}

func TestSetup_DebugEnablesDebugLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "bookshelf.log")
	logger, closeFn, err := Setup(path, true)
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	logger.Debug("search superseded")
	_ = closeFn()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "level=DEBUG") {
		t.Fatalf("log output = %q, want DEBUG line", data)
	}
}

func TestSetup_EmptyPathDiscards(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger, closeFn, err := Setup("  ", false)
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("logger = nil")
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelWarn).Info("dropped")
	New(&buf, slog.LevelWarn).Warn("kept")
	if got := buf.String(); strings.Contains(got, "dropped") || !strings.Contains(got, "kept") {
		t.Fatalf("output = %q", got)
	}
}
