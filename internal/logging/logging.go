package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

const (
	LogFileName = "battleships.log"

	// MaxLogSize is the size past which the log file is rotated on startup
	MaxLogSize = 10 * 1024 * 1024
)

// Setup points the standard logger at logDir/battleships.log when debug
// is on and discards everything otherwise. The terminal UI owns stdout,
// so logs never go there. The returned file is nil when logging is off.
func Setup(logDir string, debug bool) (*os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	logPath := filepath.Join(logDir, LogFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > MaxLogSize {
		if err := os.Rename(logPath, logPath+".old"); err != nil {
			log.SetOutput(io.Discard)
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil, fmt.Errorf("open log file: %w", err)
	}

	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	log.Println("logging started")
	return logFile, nil
}
