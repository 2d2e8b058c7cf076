package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"summarizer/internal/config"
	"summarizer/internal/logging"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Logging.Format = "json"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	logger.Info("hello", logging.DocumentID(7), logging.Stage(2))

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "summarizer.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"document_id":7`) {
		t.Fatalf("log file missing document attribute: %s", data)
	}
}

func TestFromContextFallsBackToNop(t *testing.T) {
	logger := logging.FromContext(nil)
	if logger == nil {
		t.Fatal("expected non-nil fallback logger")
	}
	logger.Info("should not panic")
}
