package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Actions is the name-to-plugin-script association table loaded from
// actions.clifm, mapping a shortcut typed at the prompt ("img" in §4.I
// Dispatch) to a plugin under PluginsDir, grounded on
// original_source/src/actions.c's usr_actions table and its
// is_action_name lookup.
type Actions struct {
	path   string
	byName map[string]string
}

func NewActions(path string) *Actions {
	return &Actions{path: path, byName: make(map[string]string)}
}

// Load parses "name=script" lines, skipping blanks and comments.
func (a *Actions) Load() error {
	f, err := os.Open(a.path)
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
		name, script, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		a.byName[strings.TrimSpace(name)] = strings.TrimSpace(script)
	}
	return sc.Err()
}

// Resolve reports whether name is a registered action and, if so, the
// plugin script it names (relative to PluginsDir unless it already
// contains a path separator, matching run_action's "if not a path,
// PLUGINS_DIR is assumed").
func (a *Actions) Resolve(name string) (string, bool) {
	script, ok := a.byName[name]
	return script, ok
}

// Names lists every registered shortcut, for `actions` with no
// argument listing what's available.
func (a *Actions) Names() []string {
	out := make([]string, 0, len(a.byName))
	for n := range a.byName {
		out = append(out, n)
	}
	return out
}

// ScriptPath resolves script to an absolute path: used as-is if it
// already contains a separator, otherwise joined under pluginsDir.
func ScriptPath(script, pluginsDir string) string {
	if strings.ContainsRune(script, filepath.Separator) {
		return script
	}
	return filepath.Join(pluginsDir, script)
}
