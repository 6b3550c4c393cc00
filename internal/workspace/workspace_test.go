package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

// TestWorkspaceToggle mirrors §8 scenario 5 "Workspace toggle":
// starting in workspace 0, Switch(1) moves to workspace 1 (defaulting
// to the startup directory); re-issuing Switch(1) toggles back to
// workspace 0; doing it once more returns to workspace 1.
func TestWorkspaceToggle(t *testing.T) {
	dir := t.TempDir()
	tbl := New(filepath.Join(dir, "dirhist.clifm"), dir)

	if tbl.CurrentIndex() != 0 {
		t.Fatalf("expected to start on workspace 0, got %d", tbl.CurrentIndex())
	}

	if _, err := tbl.Switch(1); err != nil {
		t.Fatal(err)
	}
	if tbl.CurrentIndex() != 1 {
		t.Fatalf("expected workspace 1, got %d", tbl.CurrentIndex())
	}

	if _, err := tbl.Switch(1); err != nil { // already current -> toggle back
		t.Fatal(err)
	}
	if tbl.CurrentIndex() != 0 {
		t.Fatalf("expected toggle back to workspace 0, got %d", tbl.CurrentIndex())
	}

	if _, err := tbl.Switch(1); err != nil {
		t.Fatal(err)
	}
	if tbl.CurrentIndex() != 1 {
		t.Fatalf("expected workspace 1 again, got %d", tbl.CurrentIndex())
	}
}

func TestSwitchOutOfRange(t *testing.T) {
	tbl := New("", "/")
	if _, err := tbl.Switch(8); err == nil {
		t.Error("expected error for out-of-range workspace")
	}
}

// TestDirhistCursorBounds mirrors §8 "The dirhist cursor is in
// [0, len(dirhist)). After back from index 0, cursor is unchanged.
// After forth from the tail, cursor is unchanged."
func TestDirhistCursorBounds(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	os.Mkdir(a, 0o755)
	os.Mkdir(b, 0o755)

	tbl := New(filepath.Join(dir, "dirhist.clifm"), a)
	startCwd, _ := os.Getwd()
	defer os.Chdir(startCwd)

	if err := tbl.Chdir(b); err != nil {
		t.Fatal(err)
	}
	hist, cursor := tbl.History()
	if cursor != len(hist)-1 {
		t.Fatalf("expected cursor at tail, got %d of %d", cursor, len(hist))
	}

	if err := tbl.Back(); err != nil {
		t.Fatal(err)
	}
	_, cursor = tbl.History()
	if cursor != 0 {
		t.Fatalf("expected cursor 0 after back, got %d", cursor)
	}

	if err := tbl.Back(); err != nil { // already at head: unchanged
		t.Fatal(err)
	}
	_, cursor = tbl.History()
	if cursor != 0 {
		t.Fatalf("expected cursor unchanged at head, got %d", cursor)
	}

	if err := tbl.Forth(); err != nil {
		t.Fatal(err)
	}
	hist, cursor = tbl.History()
	tail := len(hist) - 1
	if cursor != tail {
		t.Fatalf("expected cursor at tail after forth, got %d", cursor)
	}

	if err := tbl.Forth(); err != nil { // already at tail: unchanged
		t.Fatal(err)
	}
	_, cursor = tbl.History()
	if cursor != tail {
		t.Fatalf("expected cursor unchanged at tail, got %d", cursor)
	}
}

func TestChdirSetsOLDPWD(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	os.Mkdir(a, 0o755)
	os.Mkdir(b, 0o755)

	tbl := New(filepath.Join(dir, "dirhist.clifm"), a)
	startCwd, _ := os.Getwd()
	defer os.Chdir(startCwd)

	if err := tbl.Chdir(b); err != nil {
		t.Fatal(err)
	}
	if tbl.OLDPWD() != a {
		t.Errorf("expected OLDPWD=%s, got %s", a, tbl.OLDPWD())
	}
}

func TestBookmarkRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.clifm")
	b := NewBookmarks(path)
	if err := b.Add("d", "docs", "/home/u/docs"); err != nil {
		t.Fatal(err)
	}
	if err := b.Add("d", "docs2", "/home/u/other"); err == nil {
		t.Error("expected duplicate shortcut rejection")
	}

	b2 := NewBookmarks(path)
	if err := b2.Load(); err != nil {
		t.Fatal(err)
	}
	bm, ok := b2.Get("d")
	if !ok || bm.Path != "/home/u/docs" {
		t.Errorf("round-trip mismatch: %+v ok=%v", bm, ok)
	}
}

func TestBookmarkDel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.clifm")
	b := NewBookmarks(path)
	b.Add("x", "name", "/p")
	if err := b.Del("x"); err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Get("x"); ok {
		t.Error("expected bookmark removed")
	}
	if err := b.Del("x"); err == nil {
		t.Error("expected NotFound error for repeat delete")
	}
}

func TestPinSetUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pin.clifm")
	p := NewPin(path)
	if err := p.Set("/home/u/proj"); err != nil {
		t.Fatal(err)
	}

	p2 := NewPin(path)
	if err := p2.Load(); err != nil {
		t.Fatal(err)
	}
	if p2.Dir() != "/home/u/proj" {
		t.Errorf("expected pinned dir restored, got %q", p2.Dir())
	}

	if err := p2.Unset(); err != nil {
		t.Fatal(err)
	}
	if p2.Dir() != "" {
		t.Error("expected pin cleared")
	}
}
