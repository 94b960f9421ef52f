// Package watch re-runs work when assessment inputs change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a change batch fires
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc receives the sorted paths changed since the previous call
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher watches input files and directories. Files are watched through
// their parent directory so editors that replace files on save are seen.
type Watcher struct {
	fw       *fsnotify.Watcher
	files    map[string]bool
	dirs     map[string]bool
	debounce time.Duration
	logger   *slog.Logger
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets the quiet period
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for watcher errors
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New starts watching paths. Empty entries are skipped; a missing path is an error.
// Directories are watched recursively.
func New(paths []string, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fw:       fw,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := w.add(p); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	if len(w.files) == 0 && len(w.dirs) == 0 {
		_ = fw.Close()
		return nil, fmt.Errorf("nothing to watch")
	}

	return w, nil
}

func (w *Watcher) add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}

	if !info.IsDir() {
		w.files[abs] = true
		if err := w.fw.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("cannot watch %s: %w", path, err)
		}
		return nil
	}

	return filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != abs && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		w.dirs[p] = true
		if err := w.fw.Add(p); err != nil {
			return fmt.Errorf("cannot watch %s: %w", p, err)
		}
		return nil
	})
}

// Close stops watching. Run closes the watcher on return.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

// Run calls fn after each debounced batch of changes until ctx is done.
// Calls are serialized: changes arriving while fn runs form the next batch.
func (w *Watcher) Run(ctx context.Context, fn ChangeFunc) error {
	defer func() { _ = w.fw.Close() }()

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) && w.dirs[filepath.Dir(ev.Name)] {
				w.watchNewDir(ev.Name)
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("input changed", "path", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = true
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)
			fn(ctx, changed)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) watchNewDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || isHidden(filepath.Base(path)) {
		return
	}
	if err := w.fw.Add(path); err != nil {
		w.logger.Warn("cannot watch new directory", "path", path, "error", err)
		return
	}
	w.dirs[path] = true
}

// relevant reports whether ev touches a watched input. Chmod-only events,
// hidden files and editor backups are ignored.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(ev.Name)
	if w.files[name] {
		return true
	}
	if !w.dirs[filepath.Dir(name)] {
		return false
	}
	return !isHidden(filepath.Base(name)) && !isBackup(name)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func isBackup(name string) bool {
	return strings.HasSuffix(name, "~") ||
		strings.HasSuffix(name, ".swp") ||
		strings.HasSuffix(name, ".tmp")
}
