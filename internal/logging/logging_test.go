package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func TestSetupDisabledByDefault(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	logFile, err := Setup(t.TempDir(), false)
	if err != nil {
		t.Fatal(err)
	}
	if logFile != nil {
		logFile.Close()
		t.Fatal("expected nil log file when debug=false")
	}
	if log.Writer() != io.Discard {
		t.Fatalf("expected log output to be io.Discard, got %v", log.Writer())
	}
}

func TestSetupEnabledWithDebug(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	logDir := filepath.Join(t.TempDir(), "logs")

	logFile, err := Setup(logDir, true)
	if err != nil {
		t.Fatal(err)
	}
	defer logFile.Close()

	log.Println("test log message")

	info, err := os.Stat(filepath.Join(logDir, LogFileName))
	if err != nil {
		t.Fatalf("failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("expected log file to contain content")
	}
}

func TestSetupRotation(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	logDir := t.TempDir()
	logPath := filepath.Join(logDir, LogFileName)

	if err := os.WriteFile(logPath, make([]byte, MaxLogSize+1), 0o644); err != nil {
		t.Fatal(err)
	}

	logFile, err := Setup(logDir, true)
	if err != nil {
		t.Fatal(err)
	}
	defer logFile.Close()

	if _, err := os.Stat(logPath + ".old"); err != nil {
		t.Fatalf("expected rotated log file: %v", err)
	}
	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() >= MaxLogSize {
		t.Fatal("expected a fresh log file after rotation")
	}
}
