package app

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher posts EvtListingStale whenever the watched directory
// changes on disk, so the prompt's next redraw rescans instead of
// polling (§1 "keeps its own visual model of the filesystem
// synchronized with external changes"), and EvtSelectionChanged when
// the shared selbox file it also watches is rewritten by another
// process.
type Watcher struct {
	w          *fsnotify.Watcher
	box        *EventBox
	selboxPath string
}

func NewWatcher(box *EventBox) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	watcher := &Watcher{w: w, box: box}
	go watcher.loop()
	return watcher, nil
}

// WatchSelbox adds a one-time watch on the selbox file's path (and,
// since most filesystems report rewrites against the directory entry
// rather than a stable inode watch, its parent directory so rewrites
// via create-temp-then-rename still surface).
func (w *Watcher) WatchSelbox(path string) error {
	w.selboxPath = path
	if err := w.w.Add(path); err != nil {
		return err
	}
	return w.w.Add(filepath.Dir(path))
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if w.selboxPath != "" && ev.Name == w.selboxPath {
				w.box.Set(EvtSelectionChanged, ev.Name)
				continue
			}
			w.box.Set(EvtListingStale, ev.Name)
		case _, ok := <-w.w.Errors:
			if !ok {
				return
			}
		}
	}
}

// Retarget stops watching the previous directory and starts watching
// dir, matching component E's requirement that the watched path track
// the current workspace's CWD across cd/back/forth/ws.
func (w *Watcher) Retarget(prev, dir string) error {
	if prev != "" {
		w.w.Remove(prev)
	}
	return w.w.Add(dir)
}

func (w *Watcher) Close() error {
	return w.w.Close()
}
