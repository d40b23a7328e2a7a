// Package watch re-runs a callback when files under a library tree
// change. Events are debounced so editors that write in bursts trigger
// a single run.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/internal/logging"
)

// defaultDebounce collapses rapid event bursts into one callback run.
const defaultDebounce = 500 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// Watcher observes a directory tree and invokes a callback after
// changes settle.
type Watcher struct {
	root     string
	onChange func()
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	timer   *time.Timer
}

// New creates a Watcher over root. onChange runs on the watch
// goroutine after events settle.
func New(root string, onChange func(), opts ...Option) *Watcher {
	w := &Watcher{
		root:     root,
		onChange: onChange,
		debounce: defaultDebounce,
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. The watch goroutine stops when ctx is
// cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	w.mu.Lock()
	w.watcher = watcher
	w.mu.Unlock()

	if err := w.addTree(w.root); err != nil {
		watcher.Close()
		return err
	}

	w.logger.Info("watching library", "root", w.root)
	go w.loop(ctx)
	return nil
}

// Stop closes the underlying watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		w.watcher.Close()
	}
	if w.timer != nil {
		w.timer.Stop()
	}
}

// addTree registers root and every non-hidden subdirectory.
func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return fs.SkipDir
		}
		return w.watcher.Add(path)
	})
	if err != nil {
		return errors.Wrapf(err, "watching %s", root)
	}
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			w.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Chmod) {
				continue
			}
			w.logger.Debug("file event", "op", event.Op.String(), "path", event.Name)

			// New directories join the watch so nested writes are seen.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !strings.HasPrefix(filepath.Base(event.Name), ".") {
						_ = w.watcher.Add(event.Name)
					}
				}
			}
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// schedule resets the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}
