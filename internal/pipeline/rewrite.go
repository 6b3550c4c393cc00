package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-vfm/vfm/internal/listing"
	"github.com/go-vfm/vfm/internal/pathutil"
	"github.com/go-vfm/vfm/internal/selection"
	"github.com/go-vfm/vfm/internal/vfmerr"
)

// fusedWhitelist is the set of internal commands eligible for the
// fused-argument split of pass 3 (§4.I "A token of the form
// <internal-cmd><digit>... ... is split into <cmd> + <rest>").
var fusedWhitelist = map[string]bool{
	"o": true, "open": true, "cd": true, "p": true, "pr": true,
	"tr": true, "trash": true, "r": true, "ws": true,
}

// splitFused implements pass 3.
func splitFused(token string) (string, string, bool) {
	for cmd := range fusedWhitelist {
		if strings.HasPrefix(token, cmd) && len(token) > len(cmd) {
			rest := token[len(cmd):]
			if isAllDigits(rest) {
				return cmd, rest, true
			}
		}
	}
	return token, "", false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Context bundles the live state rewriting passes 4–9 consult: the
// current listing (ELN/range/glob/regex resolution against it), the
// selection box ("sel"/"s:"), bookmarks ("b:name"), tags ("t:tag"),
// workspace CWDs ("w:"), and the working directory env expansion is
// relative to.
type Context struct {
	Listing   *listing.Listing
	Selection *selection.Box
	// ResolveBookmark looks up a bookmark by shortcut/name, returning
	// its path. Wired to workspace.Bookmarks.Get by the app layer; a
	// plain func keeps this package free of an import cycle on
	// workspace.
	ResolveBookmark func(name string) (string, bool)
	Tags            *Tags
	WorkspaceCWD    func() string
	CWD             string
	EnvExpand       bool
}

// expandELN implements pass 4: a bare integer in [1, file_count] is
// replaced by the corresponding entry's path (absolute if outside
// cwd — here every resolved entry is already absolute via FullPath).
// An integer outside that range is left as-is; callers that refuse
// out-of-range ELNs check separately.
func expandELN(token string, l *listing.Listing, cwd string) string {
	if !bareIntRe.MatchString(token) {
		return token
	}
	n, err := strconv.Atoi(token)
	if err != nil || l == nil {
		return token
	}
	e := l.ByELN(n)
	if e == nil {
		return token
	}
	return e.FullPath(cwd)
}

var rangeRe = regexp.MustCompile(`^(\d+)-(\d+)$`)

// expandRange implements pass 5: "M-N" where both endpoints are valid
// ELNs expands (inclusive) to every entry's path in between.
func expandRange(token string, l *listing.Listing, cwd string) ([]string, bool) {
	m := rangeRe.FindStringSubmatch(token)
	if m == nil || l == nil {
		return nil, false
	}
	lo, _ := strconv.Atoi(m[1])
	hi, _ := strconv.Atoi(m[2])
	if lo < 1 || hi > l.Len() || lo > hi {
		return nil, false
	}
	out := make([]string, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		out = append(out, l.ByELN(n).FullPath(cwd))
	}
	return out, true
}

// expandKeyword implements pass 6: "sel"/"s:" -> current selection,
// "b:name" -> bookmark path, "t:tag" -> tagged paths, "w:" -> the
// current workspace CWD.
func expandKeyword(token string, ctx *Context) ([]string, bool, error) {
	switch {
	case token == "sel" || token == "s:":
		if ctx.Selection == nil {
			return nil, true, nil
		}
		return ctx.Selection.List(), true, nil

	case strings.HasPrefix(token, "b:"):
		name := token[2:]
		if ctx.ResolveBookmark == nil {
			return nil, true, vfmerr.New(vfmerr.NotFound, name, fmt.Errorf("no such bookmark %q", name))
		}
		path, ok := ctx.ResolveBookmark(name)
		if !ok {
			return nil, true, vfmerr.New(vfmerr.NotFound, name, fmt.Errorf("no such bookmark %q", name))
		}
		return []string{path}, true, nil

	case strings.HasPrefix(token, "t:"):
		tag := token[2:]
		if ctx.Tags == nil {
			return nil, true, vfmerr.New(vfmerr.NotFound, tag, fmt.Errorf("no such tag %q", tag))
		}
		paths, ok := ctx.Tags.Paths(tag)
		if !ok {
			return nil, true, vfmerr.New(vfmerr.NotFound, tag, fmt.Errorf("no such tag %q", tag))
		}
		return paths, true, nil

	case token == "w:":
		if ctx.WorkspaceCWD == nil {
			return nil, true, nil
		}
		return []string{ctx.WorkspaceCWD()}, true, nil
	}
	return nil, false, nil
}

// expandTildeEnv implements pass 7.
func expandTildeEnv(token string, envExpand bool) string {
	out, err := pathutil.ExpandTilde(token)
	if err != nil {
		out = token
	}
	if envExpand {
		out = pathutil.ExpandEnv(out)
	}
	return out
}

// globChars matches §4.I's glob trigger set.
const globChars = "*?[{"

func hasGlobChar(token string) bool {
	return strings.ContainsAny(token, globChars)
}

// expandGlob implements pass 8: a token containing glob metacharacters
// is expanded via the system glob relative to cwd; a leading "!"
// selects the complement among cwd's entries instead (when negation
// is enabled).
func expandGlob(token string, cwd string, negationOn bool) ([]string, bool) {
	negate := strings.HasPrefix(token, "!")
	pattern := token
	if negate {
		pattern = token[1:]
	}
	if !hasGlobChar(pattern) {
		return nil, false
	}

	matches, err := filepath.Glob(filepath.Join(cwd, pattern))
	if err != nil {
		return nil, false
	}
	if !negate {
		if len(matches) == 0 {
			return nil, false
		}
		return matches, true
	}
	if !negationOn {
		return nil, false
	}

	matchSet := make(map[string]bool, len(matches))
	for _, m := range matches {
		matchSet[filepath.Base(m)] = true
	}
	entries, err := os.ReadDir(cwd)
	if err != nil {
		return nil, false
	}
	var out []string
	for _, e := range entries {
		if !matchSet[e.Name()] {
			out = append(out, filepath.Join(cwd, e.Name()))
		}
	}
	return out, true
}

// expandRegex implements pass 9: tried only when glob expansion
// yielded nothing and the token looks like a regex. The token is
// matched against the entry names of root (Rewrite passes the CWD).
func expandRegex(token string, root string) ([]string, bool) {
	re, err := regexp.Compile(token)
	if err != nil {
		return nil, false
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, false
	}
	var out []string
	for _, e := range entries {
		if re.MatchString(e.Name()) {
			out = append(out, filepath.Join(root, e.Name()))
		}
	}
	return out, len(out) > 0
}
