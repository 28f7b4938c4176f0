package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aliskhannn/quizmentor/internal/config"
)

// TestNewFileWritesToPath verifies terminal-free logging goes to the file.
func TestNewFileWritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.log")
	lg, err := NewFile(&config.Config{Env: "local"}, path)
	if err != nil {
		t.Fatalf("new file logger: %v", err)
	}
	lg.Info("hello from test")
	_ = lg.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Fatalf("expected message in log, got %q", data)
	}
}

// TestNewFileEmptyPathIsNop verifies logging can be disabled.
func TestNewFileEmptyPathIsNop(t *testing.T) {
	lg, err := NewFile(&config.Config{}, "")
	if err != nil || lg == nil {
		t.Fatalf("expected nop logger, got %v", err)
	}
	lg.Info("dropped")
}
