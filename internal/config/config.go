// Package config defines the immutable run configuration consumed by the
// pipeline, built with a functional-options pattern.
package config

import (
	"fmt"
	"runtime"

	"github.com/filetools/dupfind/internal/metrics"
)

// Stage identifies which pipeline stage a progress callback fired for.
type Stage int

const (
	StageWalk Stage = iota
	StagePartialHash
	StageFullHash
)

func (s Stage) String() string {
	switch s {
	case StageWalk:
		return "walk"
	case StagePartialHash:
		return "partial-hash"
	case StageFullHash:
		return "full-hash"
	default:
		return "unknown"
	}
}

// ConfigError reports an invalid or missing configuration value. It is
// always fatal and always surfaced before any I/O.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

// validFormats are the renderer formats the pipeline's caller may request.
// The pipeline itself never reads Format; it is validated here so that a bad
// value fails fast instead of surfacing as an OutputError after the scan.
var validFormats = map[string]bool{"txt": true, "csv": true, "json": true}

// Config is the immutable run configuration. Construct with [New].
type Config struct {
	Roots          []string
	Threads        int
	FollowSymlinks bool
	Format         string
	OutputPath     string
	OnProgress     func(Stage, metrics.Snapshot)
}

// Option sets an option on a [Config] during construction.
type Option func(*Config)

// WithRoots sets the scan roots. At least one is required.
func WithRoots(roots ...string) Option {
	return func(c *Config) { c.Roots = append(c.Roots, roots...) }
}

// WithThreads sets the worker pool size. Must be positive.
func WithThreads(n int) Option {
	return func(c *Config) { c.Threads = n }
}

// WithFollowSymlinks sets whether the walker follows symbolic links to
// directories. Default false.
func WithFollowSymlinks(follow bool) Option {
	return func(c *Config) { c.FollowSymlinks = follow }
}

// WithFormat sets the renderer format: one of "txt", "csv", "json".
func WithFormat(format string) Option {
	return func(c *Config) { c.Format = format }
}

// WithOutputPath sets the renderer's destination. Empty means stdout.
func WithOutputPath(path string) Option {
	return func(c *Config) { c.OutputPath = path }
}

// WithOnProgress registers a callback invoked once after each pipeline stage
// completes.
// It is purely observational and never affects the Report's content.
func WithOnProgress(fn func(Stage, metrics.Snapshot)) Option {
	return func(c *Config) { c.OnProgress = fn }
}

// New builds a validated Config. Any returned error is a [*ConfigError].
func New(opts ...Option) (*Config, error) {
	c := &Config{
		Threads: runtime.NumCPU(),
		Format:  "txt",
	}
	for _, opt := range opts {
		opt(c)
	}

	if len(c.Roots) == 0 {
		return nil, &ConfigError{Field: "roots", Msg: "at least one root is required"}
	}
	if c.Threads <= 0 {
		return nil, &ConfigError{Field: "threads", Msg: "must be positive"}
	}
	if !validFormats[c.Format] {
		return nil, &ConfigError{Field: "format", Msg: fmt.Sprintf("unrecognized format %q", c.Format)}
	}
	return c, nil
}
