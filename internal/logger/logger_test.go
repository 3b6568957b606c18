package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestInit(t *testing.T) {
	stderr = io.Discard
	t.Cleanup(func() {
		Close()
		stderr = os.Stderr
	})

	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")
	before := Log

	if err := Init("debug", first); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if Log != before {
		t.Error("Init replaced the logger")
	}
	if Log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %s, want debug", Log.GetLevel())
	}
	Log.Debug("loaded first")

	if err := Init("loud", second); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %s, want info fallback", Log.GetLevel())
	}
	Log.Info("loaded second")

	got := readLog(t, first)
	if !strings.Contains(got, "loaded first") || strings.Contains(got, "loaded second") {
		t.Errorf("first log = %q", got)
	}
	got = readLog(t, second)
	if !strings.Contains(got, "Unknown log level") || !strings.Contains(got, "loaded second") {
		t.Errorf("second log = %q", got)
	}

	if err := Init("info", filepath.Join(dir, "missing", "x.log")); err == nil {
		t.Error("expected an error for an unwritable log path")
	}
}
