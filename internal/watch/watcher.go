// Package watch notifies the UI when the current directory changes on
// disk so the listing can refresh without a manual reload.
package watch

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"quickswitch/internal/log"
)

// Change is a coalesced notification that the watched directory's
// contents changed.
type Change struct {
	Dir       string
	Timestamp time.Time
}

// Watcher monitors a single directory at a time using fsnotify. Moving
// the navigator into a new directory retargets the watch.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	changes   chan Change
	stopChan  chan struct{}
	loopDone  sync.WaitGroup

	mutex   sync.RWMutex
	current string
	running bool
}

// New creates a directory watcher.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		changes:   make(chan Change, 10),
		stopChan:  make(chan struct{}),
	}, nil
}

// Changes returns the channel delivering change notifications.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Retarget switches the watch to dir, dropping the previous directory.
func (w *Watcher) Retarget(dir string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.current == dir {
		return nil
	}
	if w.current != "" {
		// Removal can fail if the old directory was deleted; the watch
		// is already gone in that case.
		_ = w.fsWatcher.Remove(w.current)
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		w.current = ""
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	w.current = dir
	log.WithFields(log.F("directory", dir)).Debug("watching directory")
	return nil
}

// Start begins delivering change notifications. The event loop
// coalesces bursts: an event only produces a notification if the
// channel has room, so a flood of writes collapses into one refresh.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.mutex.Unlock()

	w.loopDone.Add(1)
	go func() {
		defer w.loopDone.Done()
		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
					!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
					continue
				}

				w.mutex.RLock()
				dir := w.current
				w.mutex.RUnlock()

				select {
				case w.changes <- Change{Dir: dir, Timestamp: time.Now()}:
				default:
					// A refresh is already pending.
				}

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.Warnf("fsnotify watcher error: %v", err)

			case <-w.stopChan:
				return
			}
		}
	}()

	return nil
}

// Stop halts the watcher and closes the change channel. The channel is
// only closed after the event goroutine has exited, so it can never
// race a send against the close.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if !w.running {
		w.mutex.Unlock()
		return
	}

	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.Warnf("error closing fsnotify watcher: %v", err)
	}
	w.running = false
	w.mutex.Unlock()

	w.loopDone.Wait()
	close(w.changes)
}

// IsRunning returns whether the watcher is currently active.
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
