// Package logging points the standard logger at stderr and, optionally, a
// rotated log file.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	// Empty disables the log file.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// Init returns a closer for the log file, or nil if none was configured.
func Init(config Config) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if config.File == "" {
		log.SetOutput(os.Stderr)
		return nil
	}

	rotator := NewRotator(config)
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	log.Printf("logging to %s", config.File)
	return rotator
}

func NewRotator(config Config) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   config.File,
		MaxSize:    config.MaxSizeMB,
		MaxBackups: config.MaxBackups,
		Compress:   true,
	}
}
