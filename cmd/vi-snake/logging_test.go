package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// restoreLogger puts the standard logger back after a test redirects it
func restoreLogger(t *testing.T) {
	t.Helper()
	out, flags := log.Writer(), log.Flags()
	t.Cleanup(func() {
		log.SetOutput(out)
		log.SetFlags(flags)
	})
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	restoreLogger(t)
	dir := filepath.Join(t.TempDir(), logDir)

	if logFile := setupLogging(dir, false); logFile != nil {
		logFile.Close()
		t.Fatal("Expected nil log file when debug=false")
	}

	if log.Writer() != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", log.Writer())
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("Log directory should not be created without debug")
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	restoreLogger(t)
	dir := filepath.Join(t.TempDir(), logDir)

	logFile := setupLogging(dir, true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer logFile.Close()

	log.Println("coin #1 at (3,4)")

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "coin #1 at (3,4)") {
		t.Errorf("Log file missing message:\n%s", data)
	}

	if out := log.Writer(); out == os.Stdout || out == os.Stderr {
		t.Error("Log output must not go to the terminal")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	restoreLogger(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, logFileName)

	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("Failed to create large log file: %v", err)
	}

	logFile := setupLogging(dir, true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read log directory: %v", err)
	}

	rotated := 0
	for _, e := range entries {
		if e.Name() != logFileName && strings.HasPrefix(e.Name(), "vi-snake-") && filepath.Ext(e.Name()) == ".log" {
			rotated++
		}
	}
	if rotated != 1 {
		t.Errorf("Expected one rotated log file, found %d", rotated)
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("New log file should start small, got %d bytes", info.Size())
	}
}

func TestSetupLogging_SmallFileKept(t *testing.T) {
	restoreLogger(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, logFileName)

	if err := os.WriteFile(logPath, []byte("previous run\n"), 0644); err != nil {
		t.Fatal(err)
	}

	logFile := setupLogging(dir, true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	data, _ := os.ReadFile(logPath)
	if !strings.HasPrefix(string(data), "previous run\n") {
		t.Error("Small log file should be appended to, not rotated")
	}
}
