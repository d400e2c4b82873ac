// Package logger provides the CLI's charmbracelet/log setup.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates the default logger writing to stderr.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportTimestamp: false,
		Level:           log.InfoLevel,
	})
}

// NewVerbose creates a debug-level logger for -v runs.
func NewVerbose(prefix string) *log.Logger {
	l := New(prefix)
	l.SetLevel(log.DebugLevel)
	return l
}
