package dev

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/shwimple/shwimple/pkg/pagefile"
)

// DefaultDebounce is the quiet period before a batch of changes is reported.
const DefaultDebounce = 100 * time.Millisecond

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Dir is the directory to watch, recursively.
	Dir string

	// Debounce is the delay before triggering on change.
	Debounce time.Duration

	// Filter selects the files that count as changes.
	// Default: pagefile.IsPageFile
	Filter func(path string) bool

	// Logger receives watcher diagnostics. Default: slog.Default()
	Logger *slog.Logger
}

// Watcher monitors a directory for page file changes.
type Watcher struct {
	config WatcherConfig
	fs     *fsnotify.Watcher
}

// NewWatcher creates a watcher on config.Dir and every directory below it.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if config.Filter == nil {
		config.Filter = pagefile.IsPageFile
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	w := &Watcher{config: config, fs: fs}
	if err := w.addRecursive(config.Dir); err != nil {
		_ = fs.Close()
		return nil, err
	}
	return w, nil
}

// Run delivers debounced batches of changed paths to onChange until ctx is
// cancelled. Paths in a batch are sorted and unique. Run closes the watcher
// before returning.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	defer w.fs.Close()

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.config.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.handle(ev) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(w.config.Debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.config.Logger.Warn("watcher error", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)
			onChange(paths)
		}
	}
}

// Close stops the watcher without running it.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// handle reports whether ev is a relevant page change. New directories are
// added to the watch set.
func (w *Watcher) handle(ev fsnotify.Event) bool {
	if shouldIgnore(ev.Name) || ev.Op == fsnotify.Chmod {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			_ = w.addRecursive(ev.Name)
			return false
		}
	}
	if !w.config.Filter(ev.Name) {
		return false
	}
	w.config.Logger.Debug("page change detected", "path", ev.Name, "op", ev.Op.String())
	return true
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && shouldIgnore(path) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// shouldIgnore skips hidden entries and editor temp files.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".tmp")
}
