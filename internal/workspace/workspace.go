// Package workspace is component H: the eight-slot workspace table
// plus per-workspace back/forward directory history. Grounded on
// original_source/src/workspaces.c (slot table, "exactly one current"
// invariant, toggle-to-previous semantics for "ws N" on an already-
// current slot) and src/history.c (append-only dirhist log).
package workspace

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-vfm/vfm/internal/config"
	"github.com/go-vfm/vfm/internal/vfmerr"
)

const NumWorkspaces = 8

// Slot is one of the eight workspace slots (§3 "Workspace").
type Slot struct {
	Path    string // empty until first entry
	Name    string
	Options *config.Options // nil means "inherit process-wide options"

	history []string
	cursor  int
}

// Table owns the eight workspace slots and tracks which is current.
type Table struct {
	slots   [NumWorkspaces]*Slot
	current int
	prev    int // for "ws N" toggle-to-previous on an already-current slot

	dirhistPath string
	oldpwd      string
}

// New builds a table with all slots empty and workspace 0 current,
// seeded with start as its initial path.
func New(dirhistPath, start string) *Table {
	t := &Table{dirhistPath: dirhistPath}
	for i := range t.slots {
		t.slots[i] = &Slot{}
	}
	t.slots[0].Path = start
	t.slots[0].history = []string{start}
	t.slots[0].cursor = 0
	t.current = 0
	t.prev = 0
	return t
}

// Current returns the active slot.
func (t *Table) Current() *Slot { return t.slots[t.current] }

// CurrentIndex returns the active slot's index.
func (t *Table) CurrentIndex() int { return t.current }

// Slot returns workspace n (0-indexed), or nil if out of range.
func (t *Table) Slot(n int) *Slot {
	if n < 0 || n >= NumWorkspaces {
		return nil
	}
	return t.slots[n]
}

// Switch implements `ws N` (§4.H): switching to the workspace that is
// already current toggles back to the previously current one instead.
func (t *Table) Switch(n int) (*Slot, error) {
	if n < 0 || n >= NumWorkspaces {
		return nil, vfmerr.New(vfmerr.UserInput, "", fmt.Errorf("workspace %d out of range", n))
	}
	if n == t.current {
		n = t.prev
	}
	if s := t.slots[n]; s.Path == "" {
		// a never-visited slot starts in the startup directory, which
		// stays the first entry of workspace 0's history
		start := t.slots[0].history[0]
		s.Path = start
		s.history = []string{start}
		s.cursor = 0
	}
	t.prev = t.current
	t.current = n
	return t.slots[t.current], nil
}

// Workspaces returns the CWD of every slot that has one, for the
// jump-db's WORKSPACE_BONUS lookup (§4.G).
func (t *Table) Workspaces() []string {
	out := make([]string, 0, NumWorkspaces)
	for _, s := range t.slots {
		if s.Path != "" {
			out = append(out, s.Path)
		}
	}
	return out
}

// Chdir implements §4.H's `cd(path)`: resolves to absolute, changes
// the process's working directory, updates the current slot's path,
// appends to its directory history (truncating any forward entries
// past the cursor) and records OLDPWD. It does not trigger a listing rescan or jump-db
// notification; callers (component I's `cd` handler) do that after a
// successful Chdir so partial failures don't corrupt either.
func (t *Table) Chdir(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return vfmerr.New(vfmerr.Filesystem, path, err)
	}
	if err := os.Chdir(abs); err != nil {
		return vfmerr.New(vfmerr.Filesystem, abs, err)
	}

	s := t.slots[t.current]
	t.oldpwd = s.Path
	s.Path = abs

	s.history = append(s.history[:s.cursor+1], abs)
	s.cursor = len(s.history) - 1
	return t.appendDirhist(abs)
}

// OLDPWD returns the path the current workspace was in before its
// most recent successful Chdir.
func (t *Table) OLDPWD() string { return t.oldpwd }

// Back moves the cursor one step earlier in the current workspace's
// directory history and chdirs there without appending a new entry
// (§4.H `back`). At the head of history, the cursor is unchanged
// (§8 "After back from index 0, cursor is unchanged").
func (t *Table) Back() error { return t.move(-1) }

// Forth is Back's mirror (§4.H `forth`); at the tail, unchanged.
func (t *Table) Forth() error { return t.move(1) }

func (t *Table) move(delta int) error {
	s := t.slots[t.current]
	next := s.cursor + delta
	if next < 0 || next >= len(s.history) {
		return nil
	}
	if err := os.Chdir(s.history[next]); err != nil {
		return vfmerr.New(vfmerr.Filesystem, s.history[next], err)
	}
	s.cursor = next
	s.Path = s.history[next]
	return nil
}

// History returns a snapshot of the current workspace's dirhist
// vector and cursor position, for `bh`/`dh` interactive browsing.
func (t *Table) History() ([]string, int) {
	s := t.slots[t.current]
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out, s.cursor
}

// appendDirhist appends path to the persisted, append-only dirhist
// log (§6 "dirhist.clifm — one absolute path per line").
func (t *Table) appendDirhist(path string) error {
	if t.dirhistPath == "" {
		return nil
	}
	f, err := os.OpenFile(t.dirhistPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return vfmerr.New(vfmerr.Filesystem, t.dirhistPath, err)
	}
	defer f.Close()
	_, err = fmt.Fprintln(f, path)
	if err != nil {
		return vfmerr.New(vfmerr.Filesystem, t.dirhistPath, err)
	}
	return nil
}

// LastPersistedPath reads the final line of the dirhist log, for
// RestoreLastPath on startup (§4.H "the log is consulted on startup
// if RestoreLastPath is on").
func LastPersistedPath(dirhistPath string) (string, bool) {
	f, err := os.Open(dirhistPath)
	if err != nil {
		return "", false
	}
	defer f.Close()

	var last string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			last = line
		}
	}
	return last, last != ""
}
