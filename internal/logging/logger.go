// Package logging sets up the process-wide zerolog logger: human-readable
// console output on stderr plus a dated log file under the voicekit home
// directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	Dir     string        // log file directory; empty means ~/.voicekit/logs
	Level   zerolog.Level // minimum level
	Console bool          // also write to stderr
}

// DefaultConfig returns the standard setup: info level, console on.
func DefaultConfig() Config {
	return Config{Level: zerolog.InfoLevel, Console: true}
}

// Logger owns the log file handle alongside the configured zerolog.Logger.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New builds the logger. The log directory is created on demand and the
// file name carries the date, so each day starts a fresh file.
func New(cfg Config) (*Logger, error) {
	dir := cfg.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".voicekit", "logs")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("voicekit_%s.log", time.Now().Format("2006-01-02")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	writers := []io.Writer{file}
	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
		})
	}

	zlog := zerolog.New(io.MultiWriter(writers...)).
		Level(cfg.Level).
		With().Timestamp().Logger()

	return &Logger{Logger: zlog, file: file}, nil
}

// Path returns the active log file path.
func (l *Logger) Path() string {
	return l.file.Name()
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	return l.file.Close()
}
