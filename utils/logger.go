package utils

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger provides leveled logging throughout the application.
type Logger struct {
	base *log.Logger
}

// NewLogger creates a new Logger writing to stderr.
func NewLogger() *Logger {
	return NewLoggerTo(os.Stderr)
}

// NewLoggerTo creates a Logger writing to w.
func NewLoggerTo(w io.Writer) *Logger {
	return &Logger{
		base: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "2006-01-02 15:04:05",
			Level:           log.InfoLevel,
		}),
	}
}

// SetDebug toggles debug output.
func (l *Logger) SetDebug(on bool) {
	if on {
		l.base.SetLevel(log.DebugLevel)
		return
	}
	l.base.SetLevel(log.InfoLevel)
}

func (l *Logger) DebugEnabled() bool {
	return l.base.GetLevel() <= log.DebugLevel
}

func (l *Logger) Info(format string, args ...any) {
	l.base.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.base.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.base.Errorf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.base.Debugf(format, args...)
}
