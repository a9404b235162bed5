package vfs

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher surfaces external changes to the store's directory tree as
// coalesced notifications. The TUI drains Events and refreshes the store;
// it then calls Sync so newly created folders are watched too.
type Watcher struct {
	fsw    *fsnotify.Watcher
	Events chan struct{}
	done   chan struct{}
}

// Watch starts watching every folder currently in the store's forest.
func (s *Store) Watch() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:    fsw,
		Events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	w.Sync(s.FolderPaths())

	go w.run()
	return w, nil
}

// Sync adds directories to the watch set. Already-watched paths are no-ops;
// deleted paths are dropped by fsnotify itself.
func (w *Watcher) Sync(dirs []string) {
	for _, dir := range dirs {
		// Best effort: a directory can vanish between scan and watch.
		_ = w.fsw.Add(dir)
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

// run coalesces bursts of filesystem events into single notifications so a
// branch checkout does not trigger hundreds of rescans.
func (w *Watcher) run() {
	const settle = 100 * time.Millisecond
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case _, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if timer == nil {
				timer = time.NewTimer(settle)
				timerC = timer.C
			} else {
				timer.Reset(settle)
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case w.Events <- struct{}{}:
			default:
			}
		}
	}
}
