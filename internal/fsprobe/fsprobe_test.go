package fsprobe

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestClassifyRegular(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	st, err := Classify(path)
	if err != nil {
		t.Fatal(err)
	}
	if st.Type != Regular {
		t.Errorf("expected Regular, got %v", st.Type)
	}
	if st.Size != 5 {
		t.Errorf("expected size 5, got %d", st.Size)
	}
}

func TestClassifyUnreachable(t *testing.T) {
	_, err := Classify(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestResolveLinkBroken(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "broken")
	if err := os.Symlink(filepath.Join(dir, "missing"), link); err != nil {
		t.Fatal(err)
	}
	_, _, ok := ResolveLink(link)
	if ok {
		t.Error("expected broken link to resolve as not-ok")
	}
}

func TestResolveLinkValid(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	os.WriteFile(target, []byte("x"), 0o644)
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}
	_, typ, ok := ResolveLink(link)
	if !ok || typ != Regular {
		t.Errorf("expected valid regular target, got %v %v", typ, ok)
	}
}

func TestDirectoryUsageDedupsHardlinks(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("0123456789"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Link(a, b); err != nil {
		t.Skipf("hardlinks unsupported: %v", err)
	}

	u := DirectoryUsage(context.Background(), dir)
	if u.ApparentBytes != 10 {
		t.Errorf("expected hardlink counted once (10 bytes), got %d", u.ApparentBytes)
	}
}

func TestDirectoryUsagePartialOnUnreadable(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	os.Mkdir(sub, 0o000)
	defer os.Chmod(sub, 0o755)

	u := DirectoryUsage(context.Background(), dir)
	if u.Status != UsagePartial {
		t.Errorf("expected partial status, got %v", u.Status)
	}
}

func TestDirectoryUsageCancellation(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	u := DirectoryUsage(ctx, dir)
	if u.Status != UsageCancelled {
		t.Errorf("expected cancelled status, got %v", u.Status)
	}
}
