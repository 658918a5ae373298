// Package errsink collects the non-fatal warnings (WalkWarning, HashWarning)
// that can occur during a scan without aborting it, via a structured-logging
// wrapper around log/slog.
package errsink

import (
	"log/slog"
	"sync"
)

// Kind distinguishes the two warning categories a scan can emit.
type Kind string

const (
	WalkWarning Kind = "walk_warning"
	HashWarning Kind = "hash_warning"
)

// Sink receives non-fatal warnings as the scan progresses. Implementations
// must be safe for concurrent use: every stage's worker pool calls Warn from
// many goroutines.
type Sink interface {
	Warn(kind Kind, path string, err error)
}

// Slog is the default Sink, logging through a *slog.Logger.
type Slog struct {
	Logger *slog.Logger
}

// NewSlog returns a Slog sink. A nil logger falls back to slog.Default().
func NewSlog(logger *slog.Logger) *Slog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Slog{Logger: logger}
}

func (s *Slog) Warn(kind Kind, path string, err error) {
	s.Logger.Warn("scan warning",
		slog.String("kind", string(kind)),
		slog.String("path", path),
		slog.String("err", err.Error()),
	)
}

// Recording is a Sink that appends every warning to a slice, for tests.
type Recording struct {
	mu       sync.Mutex
	Warnings []Warning
}

// Warning is one recorded event.
type Warning struct {
	Kind Kind
	Path string
	Err  error
}

func (r *Recording) Warn(kind Kind, path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, Warning{Kind: kind, Path: path, Err: err})
}
