// Package watch re-runs a callback whenever a schema file changes on disk.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 500 * time.Millisecond

// Watcher watches a single file and invokes a callback after each change.
type Watcher struct {
	file     string
	callback func() error
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// NewWatcher watches file. The callback runs once when Start is called and
// again after every change, debounced so a burst of editor events triggers a
// single run.
func NewWatcher(file string, callback func() error) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	absPath, err := filepath.Abs(file)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch: %w", err)
	}

	// Watch the parent directory. Editors that save through a rename replace
	// the file, which drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	return &Watcher{
		file:     absPath,
		callback: callback,
		watcher:  watcher,
		done:     make(chan struct{}),
	}, nil
}

// Start runs the callback once, then watches in the background until Stop.
func (w *Watcher) Start() error {
	if err := w.callback(); err != nil {
		return err
	}

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	timer := time.NewTimer(debounce)
	timer.Stop()
	var pending <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			eventPath, err := filepath.Abs(event.Name)
			if err != nil || eventPath != w.file {
				continue
			}
			timer.Reset(debounce)
			pending = timer.C

		case <-pending:
			if err := w.callback(); err != nil {
				fmt.Fprintf(os.Stderr, "watch: %v\n", err)
			}
			pending = nil

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)

		case <-w.done:
			return
		}
	}
}

// Stop ends the watch.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}
