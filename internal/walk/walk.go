// Package walk implements parallel recursive traversal of one or more roots,
// yielding a FileEntry for every regular file with size > 0. Directories are
// fanned out across a bounded github.com/panjf2000/ants/v2 pool sized by the
// configured thread count, with follow-symlinks support guarded by
// device+inode cycle detection.
package walk

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/filetools/dupfind/internal/errsink"
	"github.com/filetools/dupfind/internal/metrics"
	"github.com/filetools/dupfind/internal/model"
)

// RootAccessError reports that a supplied root could not be stat'd or
// opened. It is always fatal: a scan with no accessible roots can't proceed.
type RootAccessError struct {
	Root string
	Err  error
}

func (e *RootAccessError) Error() string {
	return fmt.Sprintf("walk: root %q inaccessible: %v", e.Root, e.Err)
}

func (e *RootAccessError) Unwrap() error { return e.Err }

// Walker traverses one or more roots and yields regular files.
type Walker struct {
	Threads        int
	FollowSymlinks bool
	Sink           errsink.Sink
	Metrics        *metrics.Metrics
}

// Walk traverses every root and returns every discovered regular file with
// size > 0. Errors visiting a nested directory or entry are reported to
// w.Sink as a WalkWarning and the entry is skipped; a root itself that
// cannot be opened and read is always fatal and returned as a
// *RootAccessError, since a scan can't silently skip a root the caller asked
// for.
func (w *Walker) Walk(roots []string) ([]model.FileEntry, error) {
	rootEntries := make(map[string][]fs.DirEntry, len(roots))
	for _, root := range roots {
		dirEntries, err := os.ReadDir(root)
		if err != nil {
			return nil, &RootAccessError{Root: root, Err: err}
		}
		rootEntries[root] = dirEntries
	}

	pool, err := ants.NewPool(w.poolSize())
	if err != nil {
		return nil, fmt.Errorf("walk: creating worker pool: %w", err)
	}
	defer pool.Release()

	var visited *visitedSet
	if w.FollowSymlinks {
		visited = newVisitedSet()
		for _, root := range roots {
			if info, err := os.Stat(root); err == nil {
				visited.enter(info)
			}
		}
	}

	var (
		mu      sync.Mutex
		entries []model.FileEntry
		wg      sync.WaitGroup
	)
	emit := func(e model.FileEntry) {
		mu.Lock()
		entries = append(entries, e)
		mu.Unlock()
	}

	for _, root := range roots {
		root := root
		wg.Add(1)
		task := func() {
			defer wg.Done()
			w.processDir(pool, &wg, root, rootEntries[root], visited, emit)
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			task()
		}
	}
	wg.Wait()

	return entries, nil
}

func (w *Walker) poolSize() int {
	if w.Threads > 0 {
		return w.Threads
	}
	return 1
}

// walkDir reads one nested directory and processes its entries. Unlike a
// root, a nested directory that fails to open is reported as a WalkWarning
// and skipped rather than aborting the whole scan.
func (w *Walker) walkDir(pool *ants.Pool, wg *sync.WaitGroup, dir string, visited *visitedSet, emit func(model.FileEntry)) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		w.warn(dir, err)
		return
	}
	w.processDir(pool, wg, dir, dirEntries, visited, emit)
}

// processDir visits dirEntries (already read from dir), recursing into
// subdirectories via the pool and reporting regular files through emit.
// Each directory is visited at most once: symlinked directories are only
// descended into when FollowSymlinks is set, guarded by visited.
func (w *Walker) processDir(pool *ants.Pool, wg *sync.WaitGroup, dir string, dirEntries []fs.DirEntry, visited *visitedSet, emit func(model.FileEntry)) {
	for _, dirEntry := range dirEntries {
		path := filepath.Join(dir, dirEntry.Name())
		info, err := dirEntry.Info()
		if err != nil {
			w.warn(path, err)
			continue
		}

		switch {
		case dirEntry.Type()&fs.ModeSymlink != 0:
			w.handleSymlink(pool, wg, path, visited, emit)
		case dirEntry.IsDir():
			if visited != nil && !visited.enter(info) {
				continue // already visited via another path
			}
			wg.Add(1)
			subdir := path
			task := func() {
				defer wg.Done()
				w.walkDir(pool, wg, subdir, visited, emit)
			}
			if err := pool.Submit(task); err != nil {
				task()
			}
		case info.Mode().IsRegular():
			if info.Size() > 0 {
				emit(model.FileEntry{Path: path, Size: info.Size()})
			}
		default:
			// device, named pipe, socket, etc: not a regular file, skip.
		}
	}
}

// handleSymlink does nothing unless FollowSymlinks is enabled. When it is, it
// resolves the symlink and, if it points at a directory, recurses into it with
// cycle protection; if it points at a regular file, the file is emitted using
// the target's size.
func (w *Walker) handleSymlink(pool *ants.Pool, wg *sync.WaitGroup, path string, visited *visitedSet, emit func(model.FileEntry)) {
	if visited == nil {
		return // not following symlinks
	}
	target, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			w.warn(path, err)
		}
		return
	}
	if target.IsDir() {
		if !visited.enter(target) {
			return
		}
		wg.Add(1)
		task := func() {
			defer wg.Done()
			w.walkDir(pool, wg, path, visited, emit)
		}
		if err := pool.Submit(task); err != nil {
			task()
		}
		return
	}
	if target.Mode().IsRegular() && target.Size() > 0 {
		emit(model.FileEntry{Path: path, Size: target.Size()})
	}
}

func (w *Walker) warn(path string, err error) {
	if w.Metrics != nil {
		w.Metrics.AddErrors(1)
	}
	if w.Sink != nil {
		w.Sink.Warn(errsink.WalkWarning, path, err)
	}
}
