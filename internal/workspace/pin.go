package workspace

import (
	"os"
	"strings"

	"github.com/go-vfm/vfm/internal/vfmerr"
)

// Pin is the single pinned directory supplemented from jump.c's
// pinned_dir (SPEC_FULL.md "Pinned directory"): persisted as one line
// in pin.clifm, contributing PINNED_BONUS to jump rank.
type Pin struct {
	path string
	dir  string
}

func NewPin(path string) *Pin { return &Pin{path: path} }

func (p *Pin) Load() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			p.dir = ""
			return nil
		}
		return vfmerr.New(vfmerr.Filesystem, p.path, err)
	}
	p.dir = strings.TrimSpace(string(data))
	return nil
}

// Set pins dir, overwriting any previous pin (clifm allows only one).
func (p *Pin) Set(dir string) error {
	p.dir = dir
	if err := os.WriteFile(p.path, []byte(dir+"\n"), 0o644); err != nil {
		return vfmerr.New(vfmerr.Filesystem, p.path, err)
	}
	return nil
}

// Unset removes the pin (`unpin`).
func (p *Pin) Unset() error {
	p.dir = ""
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return vfmerr.New(vfmerr.Filesystem, p.path, err)
	}
	return nil
}

// Dir returns the pinned directory, or "" if none is set.
func (p *Pin) Dir() string { return p.dir }
