package listing

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/go-vfm/vfm/internal/fsprobe"
	"github.com/go-vfm/vfm/internal/vfmerr"
)

// Filter controls which directory entries survive step 1 of §4.E's
// algorithm.
type Filter struct {
	ShowHidden bool
	// Regex, when non-nil, must match a name (or, if Negate, must not
	// match) for the entry to survive. Grounded on the leading-"!"
	// negation rule described in §4.E step 1.
	Regex  *regexp.Regexp
	Negate bool
}

// loadDotHidden reads a ".hidden" file in dir (if any) and returns the
// glob patterns it lists, one per line, skipping blank lines and any
// line containing a path separator — grounded on
// original_source/src/dothidden.c's load_dothidden.
func loadDotHidden(dir string) []string {
	f, err := os.Open(filepath.Join(dir, ".hidden"))
	if err != nil {
		return nil
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.ContainsRune(line, '/') {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

func (f Filter) accepts(name string, dotHidden []string) bool {
	if !f.ShowHidden {
		if strings.HasPrefix(name, ".") {
			return false
		}
		if matchesAny(dotHidden, name) {
			return false
		}
	}
	if f.Regex != nil {
		matched := f.Regex.MatchString(name)
		if f.Negate {
			matched = !matched
		}
		if !matched {
			return false
		}
	}
	return true
}

// Scan reads dir, applies filter, and classifies every surviving
// entry via fsprobe (§4.E algorithm steps 1-2). An unreadable
// directory aborts the whole listing (Filesystem error); an
// unreadable individual entry is kept and flagged IsBrokenDir instead
// of aborting (§4.E "Failure semantics").
func Scan(dir string, filter Filter) ([]*FileEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, vfmerr.New(vfmerr.Filesystem, dir, err)
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, vfmerr.New(vfmerr.Filesystem, dir, err)
	}
	sort.Strings(names)

	dotHidden := loadDotHidden(dir)

	entries := make([]*FileEntry, 0, len(names))
	for _, name := range names {
		if !filter.accepts(name, dotHidden) {
			continue
		}
		full := filepath.Join(dir, name)
		st, err := fsprobe.Classify(full)
		if err != nil {
			e := &FileEntry{Name: name, Type: fsprobe.Unknown, IsBrokenDir: true, SubentryN: -1}
			entries = append(entries, e)
			continue
		}
		e := fromStat(name, st)
		if st.Type == fsprobe.Symlink {
			_, targetType, ok := fsprobe.ResolveLink(full)
			if ok {
				e.LinkTarget = targetType
			} else {
				e.LinkTarget = fsprobe.Unknown
			}
		}
		if st.Type == fsprobe.Dir {
			if sub, err := os.ReadDir(full); err == nil {
				e.SubentryN = len(sub)
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}
