package workspace

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-vfm/vfm/internal/vfmerr"
)

// Bookmark is one (shortcut, name, path) tuple (§3 "Bookmark").
type Bookmark struct {
	Shortcut string
	Name     string
	Path     string
}

// Bookmarks is the read-mostly bookmark table, persisted one
// "shortcut:name:path" line per entry to bookmarks.clifm (§6).
type Bookmarks struct {
	path  string
	byKey map[string]*Bookmark
	order []string
}

func NewBookmarks(path string) *Bookmarks {
	return &Bookmarks{path: path, byKey: make(map[string]*Bookmark)}
}

func (b *Bookmarks) Load() error {
	f, err := os.Open(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return vfmerr.New(vfmerr.Filesystem, b.path, err)
	}
	defer f.Close()

	b.byKey = make(map[string]*Bookmark)
	b.order = nil
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 3)
		if len(parts) != 3 {
			continue
		}
		bm := &Bookmark{Shortcut: parts[0], Name: parts[1], Path: parts[2]}
		b.byKey[bm.Shortcut] = bm
		b.order = append(b.order, bm.Shortcut)
	}
	return nil
}

func (b *Bookmarks) save() error {
	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, ".bookmarks-*")
	if err != nil {
		return vfmerr.New(vfmerr.Filesystem, b.path, err)
	}
	w := bufio.NewWriter(tmp)
	for _, k := range b.order {
		bm := b.byKey[k]
		fmt.Fprintf(w, "%s:%s:%s\n", bm.Shortcut, bm.Name, bm.Path)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return vfmerr.New(vfmerr.Filesystem, b.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return vfmerr.New(vfmerr.Filesystem, b.path, err)
	}
	return os.Rename(tmp.Name(), b.path)
}

// Add registers a bookmark; duplicate shortcuts are rejected (§3
// "Bookmark... no duplicate shortcut").
func (b *Bookmarks) Add(shortcut, name, path string) error {
	if _, dup := b.byKey[shortcut]; dup {
		return vfmerr.New(vfmerr.UserInput, shortcut, fmt.Errorf("bookmark shortcut already in use"))
	}
	b.byKey[shortcut] = &Bookmark{Shortcut: shortcut, Name: name, Path: path}
	b.order = append(b.order, shortcut)
	return b.save()
}

// Del removes a bookmark by shortcut.
func (b *Bookmarks) Del(shortcut string) error {
	if _, ok := b.byKey[shortcut]; !ok {
		return vfmerr.New(vfmerr.NotFound, shortcut, fmt.Errorf("no such bookmark"))
	}
	delete(b.byKey, shortcut)
	for i, k := range b.order {
		if k == shortcut {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return b.save()
}

// Get resolves a shortcut to its bookmark.
func (b *Bookmarks) Get(shortcut string) (*Bookmark, bool) {
	bm, ok := b.byKey[shortcut]
	return bm, ok
}

// Paths returns every bookmarked path, for the jump-db's BOOKMARK_BONUS
// lookup (§4.G).
func (b *Bookmarks) Paths() map[string]bool {
	out := make(map[string]bool, len(b.order))
	for _, k := range b.order {
		out[b.byKey[k].Path] = true
	}
	return out
}

// All returns a snapshot of every bookmark in insertion order.
func (b *Bookmarks) All() []*Bookmark {
	out := make([]*Bookmark, 0, len(b.order))
	for _, k := range b.order {
		out = append(out, b.byKey[k])
	}
	return out
}
