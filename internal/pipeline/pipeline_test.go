package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-vfm/vfm/internal/config"
	"github.com/go-vfm/vfm/internal/listing"
	"github.com/go-vfm/vfm/internal/selection"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestTokenizeBasic(t *testing.T) {
	l, err := Tokenize(`cp "a b" c`)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"cp", "a b", "c"}
	if len(l.Tokens) != len(want) {
		t.Fatalf("got %v, want %v", l.Tokens, want)
	}
	for i := range want {
		if l.Tokens[i] != want[i] {
			t.Errorf("token %d: got %q want %q", i, l.Tokens[i], want[i])
		}
	}
}

func TestTokenizeShellPassthrough(t *testing.T) {
	l, err := Tokenize(`; echo hi`)
	if err != nil {
		t.Fatal(err)
	}
	if l.Verbatim != "echo hi" {
		t.Errorf("expected verbatim passthrough, got %q", l.Verbatim)
	}
}

func TestTokenizeBackground(t *testing.T) {
	l, err := Tokenize("long-task &")
	if err != nil {
		t.Fatal(err)
	}
	if !l.Background {
		t.Error("expected background flag set")
	}
	if len(l.Tokens) != 1 || l.Tokens[0] != "long-task" {
		t.Errorf("unexpected tokens: %v", l.Tokens)
	}
}

func setupListing(t *testing.T) (*listing.Listing, string) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"))
	writeFile(t, filepath.Join(dir, "b.txt"))
	writeFile(t, filepath.Join(dir, "c.txt"))
	l, err := listing.List(dir, listing.Filter{}, listing.SortOptions{Method: config.SortName})
	if err != nil {
		t.Fatal(err)
	}
	return l, dir
}

func TestExpandELN(t *testing.T) {
	l, dir := setupListing(t)
	got := expandELN("2", l, dir)
	want := l.ByELN(2).FullPath(dir)
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestExpandELNOutOfRangeLeftAsIs(t *testing.T) {
	l, dir := setupListing(t)
	got := expandELN("999", l, dir)
	if got != "999" {
		t.Errorf("expected unchanged token, got %q", got)
	}
}

func TestExpandRange(t *testing.T) {
	l, dir := setupListing(t)
	out, ok := expandRange("1-3", l, dir)
	if !ok || len(out) != 3 {
		t.Fatalf("expected 3 paths, got %v ok=%v", out, ok)
	}
}

func TestExpandKeywordSelection(t *testing.T) {
	dir := t.TempDir()
	box := selection.New(filepath.Join(dir, "selbox.clifm"))
	box.Add("/x/y")
	ctx := &Context{Selection: box}
	out, matched, err := expandKeyword("sel", ctx)
	if err != nil || !matched || len(out) != 1 || out[0] != "/x/y" {
		t.Errorf("unexpected result: %v matched=%v err=%v", out, matched, err)
	}
}

func TestExpandKeywordBookmark(t *testing.T) {
	ctx := &Context{ResolveBookmark: func(name string) (string, bool) {
		if name == "docs" {
			return "/home/u/docs", true
		}
		return "", false
	}}
	out, matched, err := expandKeyword("b:docs", ctx)
	if err != nil || !matched || len(out) != 1 || out[0] != "/home/u/docs" {
		t.Errorf("unexpected: %v matched=%v err=%v", out, matched, err)
	}

	_, _, err = expandKeyword("b:missing", ctx)
	if err == nil {
		t.Error("expected NotFound error for unknown bookmark")
	}
}

func TestGlobExpand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.log"))
	writeFile(t, filepath.Join(dir, "b.log"))
	writeFile(t, filepath.Join(dir, "c.txt"))

	out, ok := expandGlob("*.log", dir, true)
	if !ok || len(out) != 2 {
		t.Fatalf("expected 2 matches, got %v ok=%v", out, ok)
	}
}

func TestGlobNegation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.log"))
	writeFile(t, filepath.Join(dir, "b.txt"))

	out, ok := expandGlob("!*.log", dir, true)
	if !ok || len(out) != 1 {
		t.Fatalf("expected 1 negated match, got %v ok=%v", out, ok)
	}
}

func TestFusedArgumentSplit(t *testing.T) {
	cmd, rest, ok := splitFused("o12")
	if !ok || cmd != "o" || rest != "12" {
		t.Errorf("expected o+12, got %q %q %v", cmd, rest, ok)
	}
	if _, _, ok := splitFused("ls"); ok {
		t.Error("expected no split for a non-whitelisted, non-fused token")
	}
}

func TestHistoryFilterRejectsQuitAndBareInt(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "history.clifm"))
	cases := map[string]bool{
		"ls -l":  true,
		"q":      false,
		"5":      false,
		" ls":    false,
		"":       false,
		"!!":     false,
		"!42":    false,
	}
	for line, want := range cases {
		if got := h.ShouldRecord(line); got != want {
			t.Errorf("ShouldRecord(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestHistoryConsecutiveDedup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.clifm")
	h := NewHistory(path)
	if err := h.Append("ls -l", 1000); err != nil {
		t.Fatal(err)
	}
	if h.ShouldRecord("ls -l") {
		t.Error("expected consecutive duplicate to be rejected")
	}
}

func TestHistoryResolveReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.clifm")
	h := NewHistory(path)
	h.Append("cd /a", 1)
	h.Append("ls -l", 2)

	got, err := h.ResolveReference("!!")
	if err != nil || got != "ls -l" {
		t.Fatalf("!! resolved to %q err=%v", got, err)
	}

	got, err = h.ResolveReference("!1")
	if err != nil || got != "cd /a" {
		t.Fatalf("!1 resolved to %q err=%v", got, err)
	}

	got, err = h.ResolveReference("!cd")
	if err != nil || got != "cd /a" {
		t.Fatalf("!cd resolved to %q err=%v", got, err)
	}

	if _, err := h.ResolveReference("!99"); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestAliasExpansionNonRecursive(t *testing.T) {
	aliases := NewAliasTable()
	aliases.Set("ll", []string{"ls", "-l"})
	aliases.Set("ls", []string{"ll"}) // would cycle if recursive

	out := expandAlias([]string{"ll"}, aliases, func(string) bool { return false }, false, map[string]bool{})
	if len(out) != 2 || out[0] != "ls" || out[1] != "-l" {
		t.Fatalf("unexpected alias expansion: %v", out)
	}
}

func TestAliasBackslashSuppresses(t *testing.T) {
	aliases := NewAliasTable()
	aliases.Set("ll", []string{"ls", "-l"})

	out := expandAlias([]string{`\ll`}, aliases, func(string) bool { return false }, false, map[string]bool{})
	if len(out) != 1 || out[0] != "ll" {
		t.Errorf("expected suppressed expansion, got %v", out)
	}
}

func TestTagsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.clifm")
	tg := NewTags(path)
	if err := tg.Add("work", "/home/u/proj"); err != nil {
		t.Fatal(err)
	}
	tg2 := NewTags(path)
	if err := tg2.Load(); err != nil {
		t.Fatal(err)
	}
	paths, ok := tg2.Paths("work")
	if !ok || len(paths) != 1 || paths[0] != "/home/u/proj" {
		t.Errorf("unexpected tags round trip: %v ok=%v", paths, ok)
	}
}
