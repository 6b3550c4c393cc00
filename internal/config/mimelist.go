package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// MimeList resolves a file name to the shell command line that opens
// it, the same line-oriented "EXTENSION:CMD" association file the
// teacher keeps under mimelist.clifm (§6 "Persisted state layout").
type MimeList struct {
	path  string
	byExt map[string]string
}

func NewMimeList(path string) *MimeList {
	return &MimeList{path: path, byExt: make(map[string]string)}
}

// Load parses "ext1,ext2:command" lines, skipping blanks and comments.
func (m *MimeList) Load() error {
	f, err := os.Open(m.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		exts := strings.Split(line[:idx], ",")
		cmd := strings.TrimSpace(line[idx+1:])
		for _, e := range exts {
			m.byExt[strings.ToLower(strings.TrimSpace(e))] = cmd
		}
	}
	return sc.Err()
}

// Resolve returns the opener command line for path's extension, or
// ok=false if no association (and no "*" default) is registered.
func (m *MimeList) Resolve(path string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if cmd, ok := m.byExt[ext]; ok {
		return cmd, true
	}
	if cmd, ok := m.byExt["*"]; ok {
		return cmd, true
	}
	return "", false
}
