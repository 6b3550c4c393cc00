package listing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-vfm/vfm/internal/config"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestBasicELNOpen mirrors §8 scenario 1: a.txt, b/, c.sh (executable)
// with dirs-first sorts to 1=b, 2=a.txt, 3=c.sh.
func TestBasicELNOpen(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), 1)
	if err := os.Mkdir(filepath.Join(dir, "b"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "c.sh"), 1)
	os.Chmod(filepath.Join(dir, "c.sh"), 0o755)

	l, err := List(dir, Filter{}, SortOptions{Method: config.SortName, DirsFirst: true})
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", l.Len())
	}
	if l.ByELN(1).Name != "b" {
		t.Errorf("expected ELN 1 = b (dirs first), got %s", l.ByELN(1).Name)
	}
	if l.ByELN(2).Name != "a.txt" {
		t.Errorf("expected ELN 2 = a.txt, got %s", l.ByELN(2).Name)
	}
	if l.ByELN(3).Name != "c.sh" {
		t.Errorf("expected ELN 3 = c.sh, got %s", l.ByELN(3).Name)
	}
}

func TestHiddenFilterDefault(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".secret"), 1)
	writeFile(t, filepath.Join(dir, "visible"), 1)

	l, err := List(dir, Filter{ShowHidden: false}, SortOptions{Method: config.SortName})
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 1 || l.Entries[0].Name != "visible" {
		t.Errorf("expected only 'visible', got %+v", l.Entries)
	}
}

func TestDotHiddenFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.log"), 1)
	writeFile(t, filepath.Join(dir, "b.txt"), 1)
	os.WriteFile(filepath.Join(dir, ".hidden"), []byte("*.log\n"), 0o644)

	l, err := List(dir, Filter{ShowHidden: false}, SortOptions{Method: config.SortName})
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 1 || l.Entries[0].Name != "b.txt" {
		t.Errorf("expected only b.txt, got %+v", l.Entries)
	}
}

func TestByELNOutOfRange(t *testing.T) {
	l := &Listing{Entries: []*FileEntry{{Name: "x"}}}
	if l.ByELN(0) != nil || l.ByELN(2) != nil {
		t.Error("expected nil for out-of-range ELN")
	}
	if l.ByELN(1) == nil {
		t.Error("expected entry for ELN 1")
	}
}

func TestEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	l, err := List(dir, Filter{}, SortOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 0 {
		t.Errorf("expected 0 entries, got %d", l.Len())
	}
}

func TestSortReverse(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a"), 1)
	writeFile(t, filepath.Join(dir, "b"), 1)
	writeFile(t, filepath.Join(dir, "c"), 1)

	fwd, _ := List(dir, Filter{}, SortOptions{Method: config.SortName})
	rev, _ := List(dir, Filter{}, SortOptions{Method: config.SortName, Reverse: true})

	n := fwd.Len()
	for i := 0; i < n; i++ {
		if fwd.Entries[i].Name != rev.Entries[n-1-i].Name {
			t.Fatalf("reverse sort is not the mirror of forward sort at %d", i)
		}
	}
}

func TestVersionSort(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"f1", "f2", "f10"} {
		writeFile(t, filepath.Join(dir, n), 1)
	}
	l, err := List(dir, Filter{}, SortOptions{Method: config.SortVersion})
	if err != nil {
		t.Fatal(err)
	}
	names := []string{l.Entries[0].Name, l.Entries[1].Name, l.Entries[2].Name}
	want := []string{"f1", "f2", "f10"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("version sort mismatch: got %v, want %v", names, want)
		}
	}
}

func TestComputeLayoutFitsWidth(t *testing.T) {
	entries := make([]*FileEntry, 10)
	for i := range entries {
		entries[i] = &FileEntry{Name: "file", NameWidth: 4}
	}
	layout := ComputeLayout(entries, 20, false, false)
	if layout.Columns*layout.ColWidth > 20 {
		// columns*(widest+gap) must be <= width when possible
		t.Errorf("layout=%+v exceeds width 20", layout)
	}
	if layout.Columns < 1 {
		t.Error("expected at least one column")
	}
}
