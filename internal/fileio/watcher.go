package fileio

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/bethropolis/scribe/internal/clock"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when using a closed watcher.
var ErrWatcherClosed = errors.New("watcher closed")

// DefaultSettle is how long the watcher waits for a burst of writes to end.
const DefaultSettle = 100 * time.Millisecond

// Watcher reports changes to a single file. It watches the parent
// directory so that editors which replace files by renaming are noticed.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	clock    clock.Clock
	settle   time.Duration
	onChange func(path string)

	dir    string
	target string
	timer  clock.Timer
	closed bool

	closeCh chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher starts a watcher. onChange runs on the watcher's goroutine.
func NewWatcher(clk clock.Clock, onChange func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if clk == nil {
		clk = clock.Real{}
	}
	w := &Watcher{
		watcher:  fsw,
		clock:    clk,
		settle:   DefaultSettle,
		onChange: onChange,
		closeCh:  make(chan struct{}),
	}
	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Watch switches the watcher to path. An empty path stops watching.
func (w *Watcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}

	if w.dir != "" {
		if err := w.watcher.Remove(w.dir); err != nil {
			logger.DebugTagf("fileio", "Unwatching %s: %v", w.dir, err)
		}
		w.dir, w.target = "", ""
	}
	if path == "" {
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	w.dir, w.target = dir, abs
	logger.DebugTagf("fileio", "Watching %s", abs)
	return nil
}

// Target returns the absolute path being watched.
func (w *Watcher) Target() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.target
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	return w.watcher.Close()
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("File watcher error: %v", err)
		}
	}
}

// handle schedules a notification for events on the target file.
func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
		return
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || name != w.target {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	target := w.target
	w.timer = w.clock.AfterFunc(w.settle, func() {
		w.mu.Lock()
		current := w.target
		w.mu.Unlock()
		if current == target && w.onChange != nil {
			w.onChange(target)
		}
	})
}
