package pipeline

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-vfm/vfm/internal/vfmerr"
)

// History is the persisted, append-only command history (§6
// "history.clifm" — a comment line carrying the timestamp precedes
// each command line).
type History struct {
	path    string
	lines   []string
	HistIgnore *regexp.Regexp
}

func NewHistory(path string) *History {
	return &History{path: path}
}

func (h *History) Load() error {
	f, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return vfmerr.New(vfmerr.Filesystem, h.path, err)
	}
	defer f.Close()

	h.lines = nil
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		h.lines = append(h.lines, line)
	}
	return nil
}

// quitCommands is the set checked by the history filter (§4.I).
var quitCommands = map[string]bool{"q": true, "quit": true, "Q": true, "exit": true}

var bareIntRe = regexp.MustCompile(`^\d+$`)
var historyRefRe = regexp.MustCompile(`^!(!|-?\d+|[A-Za-z].*)$`)

// ShouldRecord implements §4.I's history filter.
func (h *History) ShouldRecord(line string) bool {
	if line == "" || strings.TrimSpace(line) == "" {
		return false
	}
	if strings.HasPrefix(line, " ") {
		return false
	}
	if quitCommands[line] {
		return false
	}
	if bareIntRe.MatchString(line) {
		return false
	}
	if historyRefRe.MatchString(line) {
		return false
	}
	if len(h.lines) > 0 && h.lines[len(h.lines)-1] == line {
		return false
	}
	if h.HistIgnore != nil && h.HistIgnore.MatchString(line) {
		return false
	}
	return true
}

// Append records line (with a preceding timestamp comment) if the
// history filter accepts it.
func (h *History) Append(line string, unixTime int64) error {
	if !h.ShouldRecord(line) {
		return nil
	}
	h.lines = append(h.lines, line)

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return vfmerr.New(vfmerr.Filesystem, h.path, err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "#%d\n%s\n", unixTime, line); err != nil {
		return vfmerr.New(vfmerr.Filesystem, h.path, err)
	}
	return nil
}

// All returns a snapshot of recorded history lines, oldest first.
func (h *History) All() []string {
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

// ResolveReference implements rewriting pass 2 (§4.I): `!!`, `!N`,
// `!-N`, `!prefix`. Returns the resolved line, or an error if the
// reference is out of range or unmatched ("do not execute").
func (h *History) ResolveReference(token string) (string, error) {
	if !strings.HasPrefix(token, "!") {
		return token, nil
	}
	body := token[1:]

	switch {
	case body == "!":
		if len(h.lines) == 0 {
			return "", vfmerr.New(vfmerr.UserInput, token, fmt.Errorf("no previous command"))
		}
		return h.lines[len(h.lines)-1], nil

	case strings.HasPrefix(body, "-"):
		n, err := strconv.Atoi(body[1:])
		if err != nil {
			return "", vfmerr.New(vfmerr.UserInput, token, fmt.Errorf("invalid history reference"))
		}
		idx := len(h.lines) - n
		if idx < 0 || idx >= len(h.lines) {
			return "", vfmerr.New(vfmerr.UserInput, token, fmt.Errorf("history reference out of range"))
		}
		return h.lines[idx], nil

	case bareIntRe.MatchString(body):
		n, _ := strconv.Atoi(body)
		idx := n - 1
		if idx < 0 || idx >= len(h.lines) {
			return "", vfmerr.New(vfmerr.UserInput, token, fmt.Errorf("history reference out of range"))
		}
		return h.lines[idx], nil

	default:
		for i := len(h.lines) - 1; i >= 0; i-- {
			if strings.HasPrefix(h.lines[i], body) {
				return h.lines[i], nil
			}
		}
		return "", vfmerr.New(vfmerr.UserInput, token, fmt.Errorf("no matching history entry for %q", body))
	}
}
