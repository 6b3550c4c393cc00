// Package pathutil collects the low-level string and path helpers
// every other component depends on: tilde/env expansion, case-aware
// name comparison, URL encoding and Unicode-aware width/truncation.
//
// Width handling is grounded on github.com/junegunn/fzf's
// src/util/chars.go: measure in runes, never in bytes, and treat
// grapheme clusters (via rivo/uniseg) as the unbreakable unit when
// truncating so that combining characters are never split.
package pathutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DisplayWidth returns the terminal column width of s, summing the
// advance width of each grapheme cluster rather than each rune, so
// that combining marks and most emoji are counted once.
func DisplayWidth(s string) int {
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Runes()
		w := runewidth.RuneWidth(cluster[0])
		if w < 0 {
			w = 0
		}
		width += w
	}
	return width
}

// Truncate shortens s to fit within maxWidth display columns,
// appending marker (typically "~") when truncation occurred. If
// keepExt is set and s has a short extension (".ext", <= 8 bytes
// including the dot), the extension is preserved after the marker.
// Truncation always lands on a grapheme-cluster boundary.
func Truncate(s string, maxWidth int, marker string, keepExt bool) string {
	if DisplayWidth(s) <= maxWidth {
		return s
	}

	ext := ""
	base := s
	if keepExt {
		if dot := strings.LastIndexByte(s, '.'); dot > 0 && len(s)-dot <= 8 {
			ext = s[dot:]
			base = s[:dot]
		}
	}

	budget := maxWidth - DisplayWidth(marker) - DisplayWidth(ext)
	if budget < 0 {
		budget = 0
	}

	var b strings.Builder
	width := 0
	g := uniseg.NewGraphemes(base)
	for g.Next() {
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		if width+w > budget {
			break
		}
		b.WriteString(cluster)
		width += w
	}
	return b.String() + marker + ext
}

// GraphemeLen returns the number of grapheme clusters in s — the
// "visual character count" used for cursor movement in the line
// editor glue, as opposed to DisplayWidth's column count.
func GraphemeLen(s string) int {
	n := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		n++
	}
	return n
}
