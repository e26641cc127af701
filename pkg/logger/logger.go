// Package logger is a tiny leveled logger used across the engine instead
// of ad-hoc fmt.Println calls. Every usecase/repository package declares
// its own narrow Logger interface (Info/Warn/Error) and is handed this
// concrete type at wiring time.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level controls which messages are actually written.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func parseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes leveled, prefixed lines to an underlying *log.Logger.
type Logger struct {
	level Level
	std   *log.Logger
	file  *os.File
}

// New builds a Logger. An empty path writes to stdout; otherwise the
// named file is opened in append mode and owned by the returned Logger
// (Close must be called to release it).
func New(path string, level string) (*Logger, error) {
	var w io.Writer = os.Stdout
	var f *os.File

	if path != "" {
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open %s: %w", path, err)
		}
		w = f
	}

	return &Logger{
		level: parseLevel(level),
		std:   log.New(w, "", log.LstdFlags|log.Lmicroseconds),
		file:  f,
	}, nil
}

// Close releases the underlying log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) log(level Level, tag string, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	l.std.Printf("["+tag+"] "+format, v...)
}

// Debug logs a debug-level message.
func (l *Logger) Debug(format string, v ...interface{}) { l.log(LevelDebug, "DEBUG", format, v...) }

// Info logs an info-level message.
func (l *Logger) Info(format string, v ...interface{}) { l.log(LevelInfo, "INFO", format, v...) }

// Warn logs a warn-level message.
func (l *Logger) Warn(format string, v ...interface{}) { l.log(LevelWarn, "WARN", format, v...) }

// Error logs an error-level message.
func (l *Logger) Error(format string, v ...interface{}) { l.log(LevelError, "ERROR", format, v...) }

// Fatal logs an error-level message and exits the process.
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log(LevelError, "FATAL", format, v...)
	os.Exit(1)
}
