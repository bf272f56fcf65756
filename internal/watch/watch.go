// Package watch monitors a port root directory for portfile.toml changes,
// debouncing bursts of events into a single notification per quiet period.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change describes one detected edit to a port's portfile.toml.
type Change struct {
	Port string // port directory name
	File string // absolute path to the portfile.toml that changed
}

// Watcher monitors a port root directory using fsnotify, also adding each
// immediate port subdirectory that exists at Start so portfile.toml writes
// inside it surface. Deeper directories and port directories created after
// Start are not watched.
type Watcher struct {
	Root    string
	Changes <-chan Change

	changes chan Change
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// New creates a Watcher rooted at root. Call Start to begin watching.
func New(root string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	return &Watcher{
		Root:    root,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start begins watching root and every existing immediate subdirectory.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Root); err != nil {
		return err
	}
	entries, err := filepathGlobPortDirs(w.Root)
	if err != nil {
		return err
	}
	for _, dir := range entries {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}

	go w.loop()
	return nil
}

// Stop closes the underlying watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	const debounce = 150 * time.Millisecond
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				for file := range pending {
					w.emit(file)
				}
				return
			}
			if filepath.Base(event.Name) != "portfile.toml" {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending[event.Name] = time.Now()
			}

		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			now := time.Now()
			for file, t := range pending {
				if now.Sub(t) >= debounce {
					w.emit(file)
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Ignore watch errors; they're non-fatal to the planning loop.
		}
	}
}

func (w *Watcher) emit(file string) {
	w.changes <- Change{
		Port: filepath.Base(filepath.Dir(file)),
		File: file,
	}
}
