// Package watcher debounces filesystem notifications for configuration
// reload.
//
// The watch covers the configuration file's directory rather than the file
// itself: editors replace files by rename, which strands a watch pinned to
// the old inode. Events for other files in the directory are filtered out
// by name.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the delay between the first change notification and
// the reload. A single save produces several events in quick succession;
// the delay coalesces them into one reload.
const DefaultDebounce = 300 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.log = logger
		}
	}
}

// Watcher watches one file and invokes a reload callback, debounced, when
// the file changes. The debounce is a single slot: the first notification
// arms a timer, further notifications while it is armed (or while the
// reload is running) are no-ops, and the slot reopens once the reload
// completes.
type Watcher struct {
	path     string
	debounce time.Duration
	reload   func()
	log      *zap.SugaredLogger

	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	pending  *time.Timer
	watching bool
	closeCh  chan struct{}
	wg       sync.WaitGroup
}

// New creates a watcher for path. The reload callback runs on a timer
// goroutine; it must do its own locking.
func New(path string, reload func(), opts ...Option) *Watcher {
	w := &Watcher{
		path:     path,
		debounce: DefaultDebounce,
		reload:   reload,
		log:      zap.NewNop().Sugar(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Start begins watching the file's directory. Calling Start while already
// watching is a no-op.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watching {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	w.fsw = fsw
	w.closeCh = make(chan struct{})
	w.watching = true

	w.wg.Add(1)
	go w.processLoop(fsw, w.closeCh)

	w.log.Debugw("Watching for changes", "dir", dir, "file", filepath.Base(w.path))
	return nil
}

// Stop releases the watch and disposes any pending debounce timer so no
// reload fires after teardown. A reload whose timer already fired still
// runs to completion. Calling Stop while not watching is a no-op.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.watching {
		w.mu.Unlock()
		return
	}
	w.watching = false

	if w.closeCh != nil {
		close(w.closeCh)
		w.closeCh = nil
	}
	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
	fsw := w.fsw
	w.fsw = nil
	w.mu.Unlock()

	if fsw != nil {
		fsw.Close()
	}
	w.wg.Wait()
}

// IsWatching reports whether the watch is active.
func (w *Watcher) IsWatching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watching
}

// processLoop drains fsnotify channels until the watcher stops.
func (w *Watcher) processLoop(fsw *fsnotify.Watcher, closeCh chan struct{}) {
	defer w.wg.Done()

	for {
		select {
		case <-closeCh:
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				w.bump()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Warnw("Watch error", "error", err)
		}
	}
}

// relevant filters directory events down to changes touching the watched
// file. Removal alone is ignored; an editor that removes and recreates the
// file reports the create.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != filepath.Base(w.path) {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}

// bump arms the debounce timer. A notification that finds the slot
// occupied is dropped; the slot reopens after the reload completes.
func (w *Watcher) bump() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.watching || w.pending != nil {
		return
	}
	w.pending = time.AfterFunc(w.debounce, w.fire)
}

// fire runs the reload once and reopens the slot.
func (w *Watcher) fire() {
	w.mu.Lock()
	if !w.watching {
		w.pending = nil
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	w.safeReload()

	w.mu.Lock()
	w.pending = nil
	w.mu.Unlock()
}

// safeReload calls the reload callback, recovering a panic into a log
// entry.
func (w *Watcher) safeReload() {
	defer func() {
		if r := recover(); r != nil {
			w.log.Errorw("Reload panicked", "panic", r)
		}
	}()
	w.reload()
}
