package logging

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWithFile(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	file := filepath.Join(t.TempDir(), "quiz.log")
	closer := Init(Config{File: file, MaxSizeMB: 1, MaxBackups: 1})
	if closer == nil {
		t.Fatal("expected a closer for the log file")
	}
	log.Print("hello from the test")
	if err := closer.Close(); err != nil {
		t.Fatalf("error closing log file: %v", err)
	}

	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("error reading log file: %v", err)
	}
	if !strings.Contains(string(b), "hello from the test") {
		t.Errorf("expected log file to contain the message but got %q", string(b))
	}
}

func TestInitWithoutFile(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	if closer := Init(Config{}); closer != nil {
		t.Errorf("expected no closer but got %v", closer)
	}
}
