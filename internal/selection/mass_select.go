package selection

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-vfm/vfm/internal/fsprobe"
	"github.com/go-vfm/vfm/internal/vfmerr"
)

// TypeFilter is one of "b c d f l s p" as used by glob/regex
// selection's trailing file-type filter (§4.F).
type TypeFilter byte

const (
	TypeAny    TypeFilter = 0
	TypeBlock  TypeFilter = 'b'
	TypeChar   TypeFilter = 'c'
	TypeDir    TypeFilter = 'd'
	TypeFile   TypeFilter = 'f'
	TypeLink   TypeFilter = 'l'
	TypeSocket TypeFilter = 's'
	TypeFifo   TypeFilter = 'p'
)

// IsTypeFilterFlag reports whether c is one of the seven type-filter
// letters accepted after a "-" in a `sel` command line.
func IsTypeFilterFlag(c byte) bool {
	switch TypeFilter(c) {
	case TypeBlock, TypeChar, TypeDir, TypeFile, TypeLink, TypeSocket, TypeFifo:
		return true
	default:
		return false
	}
}

func (t TypeFilter) matches(ft fsprobe.FileType) bool {
	switch t {
	case TypeAny:
		return true
	case TypeBlock:
		return ft == fsprobe.Block
	case TypeChar:
		return ft == fsprobe.Char
	case TypeDir:
		return ft == fsprobe.Dir
	case TypeFile:
		return ft == fsprobe.Regular
	case TypeLink:
		return ft == fsprobe.Symlink
	case TypeSocket:
		return ft == fsprobe.Socket
	case TypeFifo:
		return ft == fsprobe.Fifo
	default:
		return true
	}
}

// candidateName pairs a name with its classification for mass
// selection filtering.
type candidateName struct {
	name string
	typ  fsprobe.FileType
}

func listCandidates(root string) ([]candidateName, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, vfmerr.New(vfmerr.Filesystem, root, err)
	}
	out := make([]candidateName, 0, len(entries))
	for _, e := range entries {
		st, err := fsprobe.Classify(filepath.Join(root, e.Name()))
		if err != nil {
			continue
		}
		out = append(out, candidateName{name: e.Name(), typ: st.Type})
	}
	return out, nil
}

// GlobSelect resolves pattern against root's entries (or against
// names, when root == ""), with the "!"-prefix negation and trailing
// file-type filter from §4.F, and adds matches to b. It returns the
// number of newly added paths.
func (b *Box) GlobSelect(pattern string, filter TypeFilter, root string, names []string) (int, error) {
	negate := strings.HasPrefix(pattern, "!")
	if negate {
		pattern = pattern[1:]
	}

	var candidates []candidateName
	var err error
	if root != "" {
		candidates, err = listCandidates(root)
		if err != nil {
			return 0, err
		}
	} else {
		for _, n := range names {
			candidates = append(candidates, candidateName{name: n})
		}
	}

	added := 0
	for _, c := range candidates {
		matched, _ := filepath.Match(pattern, c.name)
		if negate {
			matched = !matched
		}
		if !matched {
			continue
		}
		if root != "" && !filter.matches(c.typ) {
			continue
		}
		base := root
		if base == "" {
			base = "."
		}
		if err := b.NormalizeAndAdd(c.name, base); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// RegexSelect is GlobSelect's regex counterpart (§4.I rewriting pass
// 9, and §4.F "regex_select").
func (b *Box) RegexSelect(pattern string, filter TypeFilter, root string, names []string) (int, error) {
	negate := strings.HasPrefix(pattern, "!")
	if negate {
		pattern = pattern[1:]
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, vfmerr.Wrap(vfmerr.UserInput, err, "invalid regex")
	}

	var candidates []candidateName
	if root != "" {
		candidates, err = listCandidates(root)
		if err != nil {
			return 0, err
		}
	} else {
		for _, n := range names {
			candidates = append(candidates, candidateName{name: n})
		}
	}

	added := 0
	for _, c := range candidates {
		matched := re.MatchString(c.name)
		if negate {
			matched = !matched
		}
		if !matched {
			continue
		}
		if root != "" && !filter.matches(c.typ) {
			continue
		}
		base := root
		if base == "" {
			base = "."
		}
		if err := b.NormalizeAndAdd(c.name, base); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
