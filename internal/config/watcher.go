package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of events editors emit on save.
const debounceDelay = 100 * time.Millisecond

// Watcher reloads the rc file when it changes on disk.
type Watcher struct {
	path string
	fsw  *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching path and calls onReload with the freshly
// loaded config (or the load error) after each change. The directory
// is watched rather than the file, so atomic-rename saves are seen.
func Watch(path string, onReload func(*Config, error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{path: path, fsw: fsw, done: make(chan struct{})}
	go w.loop(onReload)
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop(onReload func(*Config, error)) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				fire = timer.C
			} else {
				timer.Reset(debounceDelay)
			}

		case <-fire:
			timer = nil
			fire = nil
			onReload(Load(w.path))

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}
