package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"classmate/internal/config"
)

// setupLogging points the standard logger at cfg. The returned closer
// releases the log file, if one was opened.
// FUNCTIONAL DISCOVERY: log lines share the terminal with the shell, so they
// are discarded unless logging was asked for
func setupLogging(cfg *config.LogConfig) (io.Closer, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		return nopCloser{}, nil
	}
	if cfg.File == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return logFile{f}, nil
}

// logFile hands the logger back to stderr before closing.
type logFile struct {
	f *os.File
}

func (l logFile) Close() error {
	log.SetOutput(os.Stderr)
	return l.f.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
