// File: pkg/project/watcher.go
package project

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"ezcode/pkg/editable"
	"ezcode/pkg/ignore"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the Watcher waits for events to settle.
const DefaultDebounce = 500 * time.Millisecond

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the debounce duration for file change events.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatchLogger sets the logger for the watcher.
func WithWatchLogger(l *zap.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithWatchIgnore skips directories matched by gi. With prune set, it also
// skips directories that can never hold editable files.
func WithWatchIgnore(gi *ignore.Matcher, prune bool) WatcherOption {
	return func(w *Watcher) {
		w.ignore = gi
		w.prune = prune
	}
}

// Watcher refreshes a CodeView whenever files under the project root change
// and reports the new editable list when it differs from the last one.
type Watcher struct {
	view     *CodeView
	root     string
	onChange func([]string)
	debounce time.Duration
	logger   *zap.Logger
	ignore   *ignore.Matcher
	prune    bool

	fsWatcher *fsnotify.Watcher
	done      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup

	mu        sync.Mutex
	pending   bool
	lastEvent time.Time
	last      []string
}

// NewWatcher creates a Watcher for the project at root. onChange receives the
// editable list after every refresh that changed it.
func NewWatcher(view *CodeView, root string, onChange func([]string), opts ...WatcherOption) *Watcher {
	w := &Watcher{
		view:     view,
		root:     root,
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   zap.NewNop(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start records the current editable list and begins watching the project tree.
func (w *Watcher) Start() error {
	root, err := filepath.Abs(w.root)
	if err != nil {
		return fmt.Errorf("watcher: resolve root: %w", err)
	}
	w.root = root

	w.last = w.view.Files()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: create fsnotify: %w", err)
	}
	w.fsWatcher = fsw

	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watcher: watch %s: %w", root, err)
	}

	w.wg.Add(1)
	go w.loop()
	w.logger.Info("Watching project", zap.String("root", root), zap.Int("directories", len(fsw.WatchList())))
	return nil
}

// Stop terminates the watcher and waits for the background goroutine to exit.
// It is safe to call Stop multiple times.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		w.wg.Wait()
		if w.fsWatcher != nil {
			err = w.fsWatcher.Close()
		}
	})
	return err
}

// addTree watches dir and every directory beneath it that is not skipped.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("Error accessing path while adding watches", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.skipDir(path) {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return err
		}
		w.logger.Debug("Watching directory", zap.String("directory", path))
		return nil
	})
}

func (w *Watcher) skipDir(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)
	if w.ignore.MatchesPath(rel + "/") {
		return true
	}
	return w.prune && editable.PrunesDir(rel)
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	interval := w.debounce / 2
	if interval <= 0 {
		interval = w.debounce
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", zap.Error(err))

		case <-ticker.C:
			w.processPending()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}
	w.logger.Debug("File event", zap.String("path", event.Name), zap.String("op", event.Op.String()))

	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.skipDir(event.Name) {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", zap.String("directory", event.Name), zap.Error(err))
			}
		}
	}

	w.mu.Lock()
	w.pending = true
	w.lastEvent = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) processPending() {
	w.mu.Lock()
	if !w.pending || time.Since(w.lastEvent) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.mu.Unlock()

	files, err := w.view.Refresh(context.Background())
	if err != nil {
		w.logger.Error("Failed to refresh code view", zap.Error(err))
		return
	}
	if slices.Equal(files, w.last) {
		w.logger.Debug("Editable list unchanged")
		return
	}
	w.last = files
	if w.onChange != nil {
		w.onChange(slices.Clone(files))
	}
}
