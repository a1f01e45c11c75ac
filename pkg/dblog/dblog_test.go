package dblog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitThenCloseAllowsReinit(t *testing.T) {
	t.Cleanup(func() { _ = Close() })

	if err := Init(Config{Level: LevelDebug}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := Init(Config{}); err == nil {
		t.Fatal("expected error calling Init twice without Close")
	}
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := Init(Config{}); err != nil {
		t.Fatalf("Init after Close should succeed: %v", err)
	}
}

func TestInitWritesToOutputPathFile(t *testing.T) {
	t.Cleanup(func() { _ = Close() })

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "db.log")
	if err := Init(Config{OutputPath: path, Format: "json"}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	Info("hello", "k", "v")

	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected log file at %s: %v", path, err)
	}
}

func TestGetLazilyInitializes(t *testing.T) {
	t.Cleanup(func() { _ = Close() })

	l := Get()
	if l == nil {
		t.Fatal("Get() returned nil logger")
	}
}
