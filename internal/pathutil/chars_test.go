package pathutil

import "testing"

func TestDisplayWidthASCII(t *testing.T) {
	if w := DisplayWidth("hello"); w != 5 {
		t.Errorf("expected 5, got %d", w)
	}
}

func TestDisplayWidthWide(t *testing.T) {
	if w := DisplayWidth("한글"); w != 4 {
		t.Errorf("expected 4, got %d", w)
	}
}

func TestTruncateNoop(t *testing.T) {
	if s := Truncate("short.txt", 20, "~", true); s != "short.txt" {
		t.Errorf("unexpected truncation: %q", s)
	}
}

func TestTruncateKeepsExtension(t *testing.T) {
	s := Truncate("a-very-long-filename.txt", 12, "~", true)
	if DisplayWidth(s) > 12 {
		t.Errorf("result %q exceeds width budget", s)
	}
	if s[len(s)-4:] != ".txt" {
		t.Errorf("expected extension preserved, got %q", s)
	}
}

func TestTruncateDoesNotSplitGrapheme(t *testing.T) {
	// family emoji ZWJ sequence: must not be split mid-cluster
	s := "a👨‍👩‍👧‍👦b👨‍👩‍👧‍👦c"
	out := Truncate(s, 2, "", false)
	if GraphemeLen(out) == 0 {
		t.Fatal("expected at least one grapheme")
	}
}

func TestGraphemeLen(t *testing.T) {
	if n := GraphemeLen("abc"); n != 3 {
		t.Errorf("expected 3, got %d", n)
	}
}
