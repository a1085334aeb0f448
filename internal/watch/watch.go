// Package watch re-runs a full render whenever the source tree or one of the
// configuration files changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/tmplwalk/internal/fsutil"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period after the last event before a run starts.
const DefaultDebounce = 200 * time.Millisecond

// Watcher observes a source tree and a set of files.
type Watcher struct {
	fs       *fsnotify.Watcher
	log      zerolog.Logger
	root     string
	ignore   string
	files    map[string]struct{}
	debounce time.Duration
}

// New watches every directory under root plus the given files. Events under
// ignore (typically the output root) are dropped.
func New(log zerolog.Logger, root, ignore string, files []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fs:       fw,
		log:      log,
		files:    make(map[string]struct{}, len(files)),
		debounce: DefaultDebounce,
	}
	if w.root, err = fsutil.Resolve(root); err != nil {
		fw.Close()
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}
	if ignore != "" {
		if w.ignore, err = fsutil.Resolve(ignore); err != nil {
			fw.Close()
			return nil, fmt.Errorf("resolving %s: %w", ignore, err)
		}
	}

	if err := w.addTree(w.root); err != nil {
		fw.Close()
		return nil, err
	}

	// Editors often replace files by rename, so watch the parent directory.
	dirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := fsutil.Resolve(f)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("resolving %s: %w", f, err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return w, nil
}

// SetDebounce overrides DefaultDebounce.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run calls fn after each burst of relevant events until ctx is cancelled.
// An error from fn is logged and watching continues.
func (w *Watcher) Run(ctx context.Context, fn func() error) error {
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("change detected")
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && w.inTree(ev.Name) {
					if err := w.addTree(ev.Name); err != nil {
						w.log.Warn().Err(err).Msg("watching new directory")
					}
				}
			}
			pending = time.After(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watch error")
		case <-pending:
			pending = nil
			if err := fn(); err != nil {
				w.log.Error().Err(err).Msg("render failed")
			}
		}
	}
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignore != "" && fsutil.Within(w.ignore, path) {
			return fs.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) inTree(path string) bool {
	if !fsutil.Within(w.root, path) {
		return false
	}
	return w.ignore == "" || !fsutil.Within(w.ignore, path)
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if _, ok := w.files[ev.Name]; ok {
		return true
	}
	return w.inTree(ev.Name)
}
