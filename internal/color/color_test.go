package color

import (
	"testing"
	"time"
)

func TestSizeBucket(t *testing.T) {
	cases := []struct {
		n    int64
		base int64
		want int
	}{
		{0, 1024, 0},
		{500, 1024, 1},
		{2000, 1024, 2},
		{2000000, 1024, 3},
		{3000000000, 1024, 4},
		{4000000000000, 1024, 5},
	}
	for _, c := range cases {
		if got := SizeBucket(c.n, c.base); got != c.want {
			t.Errorf("SizeBucket(%d,%d) = %d, want %d", c.n, c.base, got, c.want)
		}
	}
}

func TestAgeBucket(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cases := []struct {
		delta time.Duration
		want  int
	}{
		{-time.Hour, 0},
		{30 * time.Minute, 1},
		{12 * time.Hour, 2},
		{3 * 24 * time.Hour, 3},
		{20 * 24 * time.Hour, 4},
		{400 * 24 * time.Hour, 5},
	}
	for _, c := range cases {
		if got := AgeBucket(now.Add(-c.delta), now); got != c.want {
			t.Errorf("AgeBucket(delta=%v) = %d, want %d", c.delta, got, c.want)
		}
	}
}

func TestSGRUnset(t *testing.T) {
	if s := Unset.SGR(true); s != "" {
		t.Errorf("expected empty, got %q", s)
	}
}

func TestSGRBasic(t *testing.T) {
	c := Code{Value: 2, Attr: Bold}
	if got := c.SGR(true); got != "\x1b[1;32m" {
		t.Errorf("got %q", got)
	}
}

func TestSGRTrueColor(t *testing.T) {
	c := Code{Value: 0xff0000, RGB: true}
	if got := c.SGR(true); got != "\x1b[38;2;255;0;0m" {
		t.Errorf("got %q", got)
	}
}

func TestColorForExtension(t *testing.T) {
	p := Default()
	p.LoadExtensionRule("go", Code{Value: 6})
	c, ok := p.ColorForExtension("main.go")
	if !ok || c.Value != 6 {
		t.Errorf("expected extension match, got %v %v", c, ok)
	}
	if _, ok := p.ColorForExtension("noext"); ok {
		t.Errorf("expected no match for file without extension")
	}
}
