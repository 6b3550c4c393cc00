// Package selection is component F: the process-global (optionally
// cross-process) ordered set of selected paths, persisted one path
// per line under create-temp-then-rename discipline. Grounded on
// original_source/src/selection.c (sel_file handling, atomic save via
// a sibling temp file, size caching per entry).
package selection

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-vfm/vfm/internal/pathutil"
	"github.com/go-vfm/vfm/internal/vfmerr"
)

// Box is the in-memory selection, mirrored to disk after every
// mutating operation.
type Box struct {
	mu     sync.Mutex
	path   string
	order  []string
	set    map[string]struct{}
	sizeOf map[string]int64 // lazily computed, cleared on invalidation
}

// New creates an empty Box backed by path (the selbox.clifm file,
// shared across workspaces when ShareSelbox is set).
func New(path string) *Box {
	return &Box{path: path, set: make(map[string]struct{}), sizeOf: make(map[string]int64)}
}

// Load reads the box's persisted state from disk, replacing the
// in-memory contents. A missing file is treated as an empty box, not
// an error (§8 round-trip scenario: "file exists with zero bytes, or
// absent — both accepted").
func (b *Box) Load() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := os.Open(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			b.order = nil
			b.set = make(map[string]struct{})
			return nil
		}
		return vfmerr.New(vfmerr.Filesystem, b.path, err)
	}
	defer f.Close()

	var order []string
	set := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if _, dup := set[line]; dup {
			continue
		}
		set[line] = struct{}{}
		order = append(order, line)
	}
	b.order = order
	b.set = set
	b.sizeOf = make(map[string]int64)
	return nil
}

// save atomically replaces the persisted file: write to a sibling
// temp file then rename, per §5's "no file locking, last-writer-wins"
// discipline. Caller must hold b.mu.
func (b *Box) save() error {
	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, ".selbox-*")
	if err != nil {
		return vfmerr.New(vfmerr.Filesystem, b.path, err)
	}
	tmpName := tmp.Name()
	w := bufio.NewWriter(tmp)
	for _, p := range b.order {
		w.WriteString(p)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return vfmerr.New(vfmerr.Filesystem, b.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return vfmerr.New(vfmerr.Filesystem, b.path, err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return vfmerr.New(vfmerr.Filesystem, b.path, err)
	}
	return nil
}

// Add inserts path (already absolute, trailing slash stripped) if not
// already present, and persists the box.
func (b *Box) Add(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, dup := b.set[path]; dup {
		return nil
	}
	b.set[path] = struct{}{}
	b.order = append(b.order, path)
	return b.save()
}

// Remove deletes path from the box if present, and persists.
func (b *Box) Remove(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.set[path]; !ok {
		return nil
	}
	delete(b.set, path)
	delete(b.sizeOf, path)
	for i, p := range b.order {
		if p == path {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return b.save()
}

// Clear empties the box and persists.
func (b *Box) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.order = nil
	b.set = make(map[string]struct{})
	b.sizeOf = make(map[string]int64)
	return b.save()
}

// List returns a snapshot of the selected paths in insertion order.
func (b *Box) List() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Contains reports whether path is currently selected.
func (b *Box) Contains(path string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.set[path]
	return ok
}

// Path returns the backing selbox file path, for watching it with
// fsnotify from another process's writes.
func (b *Box) Path() string { return b.path }

// Len reports the number of selected paths.
func (b *Box) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.order)
}

// SizeOf lazily stats path and caches its size, matching §3 "each
// member carries a lazily-computed size cache".
func (b *Box) SizeOf(path string) (int64, error) {
	b.mu.Lock()
	if s, ok := b.sizeOf[path]; ok {
		b.mu.Unlock()
		return s, nil
	}
	b.mu.Unlock()

	info, err := os.Lstat(path)
	if err != nil {
		return 0, vfmerr.New(vfmerr.Filesystem, path, err)
	}
	size := info.Size()

	b.mu.Lock()
	b.sizeOf[path] = size
	b.mu.Unlock()
	return size, nil
}

// NormalizeAndAdd is the convenience path used by the "sel" command:
// resolve path to absolute relative to cwd, then Add.
func (b *Box) NormalizeAndAdd(path, cwd string) error {
	abs, err := pathutil.Normalize(path, cwd)
	if err != nil {
		return err
	}
	return b.Add(abs)
}
