package pathutil

import (
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var collator = collate.New(language.Und, collate.IgnoreCase)

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// skipPunct returns the index of the first letter/digit in s, so that
// "_foo" and "foo" sort adjacent (component E's "skip leading
// punctuation" rule).
func skipPunct(s string) int {
	for i, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return i
		}
	}
	return len(s)
}

// CompareNames implements the name comparator from §4.E step 3:
// locale-collated when either name contains a non-ASCII byte,
// raw-byte otherwise, both after skipping leading punctuation.
// caseSensitive, when false, folds case in the raw-byte path; the
// collator already folds case via collate.IgnoreCase.
func CompareNames(a, b string, caseSensitive bool) int {
	ra := a[skipPunct(a):]
	rb := b[skipPunct(b):]
	if ra == "" {
		ra = a
	}
	if rb == "" {
		rb = b
	}

	if !isASCII(ra) || !isASCII(rb) {
		return collator.CompareString(ra, rb)
	}

	if caseSensitive {
		return compareRaw(ra, rb)
	}
	return compareRaw(foldASCII(ra), foldASCII(rb))
}

func foldASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func compareRaw(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareVersion performs a natural-order compare: runs of digits are
// compared numerically rather than lexicographically, matching GNU
// version-sort semantics used by §4.E's "version" comparator.
func CompareVersion(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			ni, da := scanNum(a, i)
			nj, db := scanNum(b, j)
			if da != db {
				if da < db {
					return -1
				}
				return 1
			}
			i, j = ni, nj
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	default:
		return 0
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// scanNum returns the index past the run of digits starting at i, and
// the numeric value of that run (saturating rather than overflowing
// for absurdly long digit runs).
func scanNum(s string, i int) (next int, val uint64) {
	for i < len(s) && isDigit(s[i]) {
		if val < 1<<56 {
			val = val*10 + uint64(s[i]-'0')
		}
		i++
	}
	return i, val
}
