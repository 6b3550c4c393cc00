package selection

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddRemoveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "selbox.clifm")
	b := New(path)

	if err := b.Add("/tmp/t/a.txt"); err != nil {
		t.Fatal(err)
	}
	if err := b.Add("/tmp/t/a.txt"); err != nil { // duplicate, no-op
		t.Fatal(err)
	}
	if b.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", b.Len())
	}

	b2 := New(path)
	if err := b2.Load(); err != nil {
		t.Fatal(err)
	}
	if b2.Len() != 1 || b2.List()[0] != "/tmp/t/a.txt" {
		t.Errorf("round-trip mismatch: %v", b2.List())
	}
}

func TestClearProducesEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "selbox.clifm")
	b := New(path)
	b.Add("/tmp/x")
	if err := b.Clear(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty selbox file, got %q", data)
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	b := New(filepath.Join(t.TempDir(), "missing"))
	if err := b.Load(); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 0 {
		t.Error("expected empty box for missing file")
	}
}

func TestGlobSelectTxtFiles(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644)
	os.WriteFile(filepath.Join(dir, "b.txt"), nil, 0o644)
	os.WriteFile(filepath.Join(dir, "c.md"), nil, 0o644)

	b := New(filepath.Join(dir, "selbox.clifm"))
	n, err := b.GlobSelect("*.txt", TypeAny, dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 matches, got %d", n)
	}
}

func TestGlobSelectDirOnlyFilterExcludesFiles(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.conf"), nil, 0o644)
	os.Mkdir(filepath.Join(dir, "b.conf"), 0o755)

	b := New(filepath.Join(dir, "selbox.clifm"))
	n, err := b.GlobSelect("*.conf", TypeDir, dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 directory match, got %d", n)
	}
}

func TestGlobSelectNegation(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644)
	os.WriteFile(filepath.Join(dir, "b.md"), nil, 0o644)

	b := New(filepath.Join(dir, "selbox.clifm"))
	n, err := b.GlobSelect("!*.txt", TypeAny, dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 negated match (b.md), got %d", n)
	}
}

func TestSizeOfCaching(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.bin")
	os.WriteFile(path, make([]byte, 42), 0o644)

	b := New(filepath.Join(dir, "selbox.clifm"))
	b.Add(path)
	sz, err := b.SizeOf(path)
	if err != nil {
		t.Fatal(err)
	}
	if sz != 42 {
		t.Errorf("expected 42, got %d", sz)
	}
}
