// Package logging sets up sessioner's structured log. The UI owns the
// terminal, so logs always go to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
)

const maxLogSize = 1 << 20 // 1 MB

// RotatingFile is an io.Writer over a log file that truncates itself once
// it grows past a size limit.
type RotatingFile struct {
	mu    sync.Mutex
	path  string
	limit int64
	file  *os.File
}

// OpenFile opens (or creates) the log file at path for appending.
func OpenFile(path string, limit int64) (*RotatingFile, error) {
	if limit <= 0 {
		limit = maxLogSize
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return &RotatingFile{path: path, limit: limit, file: f}, nil
}

// Write appends p, truncating the file first if it is over the limit.
func (r *RotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return len(p), nil
	}
	r.rotateIfNeeded()
	if r.file == nil {
		return len(p), nil
	}
	return r.file.Write(p)
}

func (r *RotatingFile) rotateIfNeeded() {
	info, err := r.file.Stat()
	if err != nil || info.Size() < r.limit {
		return
	}

	// Truncate by closing, recreating.
	r.file.Close()
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		r.file = nil
		return
	}
	r.file = f
}

// Close closes the underlying file. Later writes are dropped.
func (r *RotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ParseLevel maps a config level name onto a log level. Unknown names
// mean info.
func ParseLevel(s string) charmlog.Level {
	lvl, err := charmlog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return charmlog.InfoLevel
	}
	return lvl
}

// New returns a logger writing JSON lines to w at the given level. The
// charm logger doubles as the slog handler so call sites keep slog's
// typed attrs.
func New(w io.Writer, level string) *slog.Logger {
	h := charmlog.NewWithOptions(w, charmlog.Options{
		Formatter:       charmlog.JSONFormatter,
		Level:           ParseLevel(level),
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	return slog.New(h)
}

// Open creates a logger writing to the file at path. If the file cannot be
// opened the returned logger discards everything, and the closer is a no-op.
func Open(path, level string) (*slog.Logger, io.Closer) {
	f, err := OpenFile(path, maxLogSize)
	if err != nil {
		return Discard(), nopCloser{}
	}
	return New(f, level), f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return New(io.Discard, "error")
}
