package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	want := filepath.Join(configDir, "logs", "cadence.log")
	if Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if Logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want %v", Logger.GetLevel(), log.WarnLevel)
	}

	Warn("written to file")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file missing message: %q", data)
	}
}

func TestInitDebugMode(t *testing.T) {
	if err := Init(Config{Debug: true, ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want %v", Logger.GetLevel(), log.DebugLevel)
	}
}

func TestNewUsesPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, log.InfoLevel, false)
	l.Info("analysis complete", "insights", 3)

	out := buf.String()
	if !strings.Contains(out, "cadence") || !strings.Contains(out, "insights=3") {
		t.Errorf("unexpected log line: %q", out)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// must not panic
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
	if With("component", "engine") != nil {
		t.Error("With() before Init should return nil")
	}
}
