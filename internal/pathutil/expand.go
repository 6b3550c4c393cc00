package pathutil

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// ExpandTilde expands a leading "~" or "~user" to the respective home
// directory. Paths not starting with "~" are returned unchanged.
func ExpandTilde(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}

	rest := path[1:]
	if rest == "" || rest[0] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path, err
		}
		return home + rest, nil
	}

	slash := strings.IndexByte(rest, '/')
	name := rest
	tail := ""
	if slash >= 0 {
		name = rest[:slash]
		tail = rest[slash:]
	}
	u, err := user.Lookup(name)
	if err != nil {
		return path, err
	}
	return u.HomeDir + tail, nil
}

// ExpandEnv expands $VAR and ${VAR} references using os.Getenv,
// matching the pipeline's opt-in "$VAR expansion" pass (component I,
// rewriting pass 7).
func ExpandEnv(s string) string {
	return os.Expand(s, os.Getenv)
}

// Normalize makes path absolute (relative to cwd when not already)
// and strips a trailing slash, matching the selection box's "every
// path is absolute, no trailing slash" invariant.
func Normalize(path, cwd string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	path = filepath.Clean(path)
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path, nil
}

// URLEncodePath percent-encodes path for the OSC-7 "report CWD"
// terminal escape, leaving "/" unescaped as a path separator.
func URLEncodePath(path string) string {
	var b strings.Builder
	for i := 0; i < len(path); i++ {
		c := path[i]
		switch {
		case c == '/':
			b.WriteByte(c)
		case (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'),
			c == '-' || c == '_' || c == '.' || c == '~':
			b.WriteByte(c)
		default:
			const hex = "0123456789ABCDEF"
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0xf])
		}
	}
	return b.String()
}
