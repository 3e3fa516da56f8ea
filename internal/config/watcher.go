package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// debounceWindow coalesces the burst of write events editors emit when
// saving a file.
const debounceWindow = 500 * time.Millisecond

// SourceWatcher monitors one inventory source file and invokes a callback
// when it changes.
type SourceWatcher struct {
	sourcePath string
	watcher    *fsnotify.Watcher
	stopChan   chan struct{}
	stopOnce   sync.Once
	onChange   func()
}

// NewSourceWatcher creates a watcher for the given source file. The
// callback runs on the watcher goroutine; it must not block indefinitely.
func NewSourceWatcher(sourcePath string, onChange func()) (*SourceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &SourceWatcher{
		sourcePath: sourcePath,
		watcher:    watcher,
		stopChan:   make(chan struct{}),
		onChange:   onChange,
	}, nil
}

// Start begins watching. The parent directory is watched rather than the
// file itself so that editors which replace the file on save (rename over
// the original) keep being observed.
func (w *SourceWatcher) Start() error {
	dir := filepath.Dir(w.sourcePath)
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	go w.watchForChanges()
	log.Info().Str("source", w.sourcePath).Msg("Watching inventory source for changes")
	return nil
}

// Stop stops the watcher.
func (w *SourceWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		w.watcher.Close()
	})
}

func (w *SourceWatcher) watchForChanges() {
	var timer *time.Timer

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.sourcePath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			log.Debug().Str("event", event.Op.String()).Str("source", event.Name).Msg("Inventory source changed")

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, w.onChange)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("Inventory source watcher error")

		case <-w.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}
