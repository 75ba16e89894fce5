// Package logging sets up the charmbracelet/log logger used by the board.
// The TUI owns the terminal, so output goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Options holds configuration for the board logger.
type Options struct {
	Path            string
	Level           string
	Formatter       log.Formatter
	ReportTimestamp bool
	Prefix          string
}

// DefaultOptions returns options for a text log at info level.
func DefaultOptions(path string) Options {
	return Options{
		Path:            path,
		Level:           "info",
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
		Prefix:          "kanban",
	}
}

// ParseLevel maps a config string to a log level. An empty string means
// info.
func ParseLevel(level string) (log.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// Open creates the log file (and its directory) in append mode and returns
// a logger writing to it. The caller closes the returned file.
func Open(opts Options) (*log.Logger, io.Closer, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", opts.Path, err)
	}

	return NewWithWriter(f, lvl, opts), f, nil
}

// NewWithWriter builds a logger on w. Useful in tests.
func NewWithWriter(w io.Writer, lvl log.Level, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
