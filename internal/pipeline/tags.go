package pipeline

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-vfm/vfm/internal/vfmerr"
)

// Tags backs the "t:tag" keyword expansion (§4.I pass 6). Persisted
// in the same "tag:path" line-oriented, atomic-rename style as the
// bookmark and selection stores, since no original_source file
// specifically grounds a tag store (noted in DESIGN.md).
type Tags struct {
	path string
	byTag map[string][]string
}

func NewTags(path string) *Tags {
	return &Tags{path: path, byTag: make(map[string][]string)}
}

func (t *Tags) Load() error {
	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return vfmerr.New(vfmerr.Filesystem, t.path, err)
	}
	defer f.Close()

	t.byTag = make(map[string][]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		t.byTag[parts[0]] = append(t.byTag[parts[0]], parts[1])
	}
	return nil
}

func (t *Tags) save() error {
	dir := filepath.Dir(t.path)
	tmp, err := os.CreateTemp(dir, ".tags-*")
	if err != nil {
		return vfmerr.New(vfmerr.Filesystem, t.path, err)
	}
	w := bufio.NewWriter(tmp)
	for tag, paths := range t.byTag {
		for _, p := range paths {
			fmt.Fprintf(w, "%s:%s\n", tag, p)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return vfmerr.New(vfmerr.Filesystem, t.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return vfmerr.New(vfmerr.Filesystem, t.path, err)
	}
	return os.Rename(tmp.Name(), t.path)
}

// Add tags path with tag, deduplicating.
func (t *Tags) Add(tag, path string) error {
	for _, p := range t.byTag[tag] {
		if p == path {
			return nil
		}
	}
	t.byTag[tag] = append(t.byTag[tag], path)
	return t.save()
}

// Paths returns every path tagged tag ("t:tag" expansion).
func (t *Tags) Paths(tag string) ([]string, bool) {
	paths, ok := t.byTag[tag]
	return paths, ok
}
