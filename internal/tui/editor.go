package tui

// Suggester proposes a completion for the remainder of the current
// line, shown dimmed past the cursor (§1 "auto-suggestions").
type Suggester interface {
	Suggest(line string) (suggestion string, ok bool)
}

// HistorySuggester suggests the most recent history line sharing line
// as a prefix — the simplest form of auto-suggestion, grounded on
// shell auto-suggestion plugins' prefix-match idiom.
type HistorySuggester struct {
	History func() []string
}

func (h HistorySuggester) Suggest(line string) (string, bool) {
	if line == "" {
		return "", false
	}
	hist := h.History()
	for i := len(hist) - 1; i >= 0; i-- {
		if len(hist[i]) > len(line) && hist[i][:len(line)] == line {
			return hist[i][len(line):], true
		}
	}
	return "", false
}

// Span is a styled range of a rendered line, for syntax highlighting.
type Span struct {
	Start, End int // byte offsets into the line
	Style      Style
}

// Highlighter tokenizes line for syntax-highlighted rendering (§1
// "syntax highlighting"): the command name, quoted strings, ELNs and
// keyword-expansion tokens are each styled distinctly.
type Highlighter interface {
	Highlight(line string) []Span
}

// Completer proposes completions for the token ending at cursor
// (§1 "tab completion").
type Completer interface {
	Complete(line string, cursor int) []string
}

// PathCompleter completes the final token against directory entries,
// the common case the teacher's own shell-completion plugins target.
type PathCompleter struct {
	ListNames func(dir string) []string
}

func (p PathCompleter) Complete(line string, cursor int) []string {
	start := cursor
	for start > 0 && line[start-1] != ' ' {
		start--
	}
	prefix := line[start:cursor]

	dir := "."
	base := prefix
	if idx := lastSlash(prefix); idx >= 0 {
		dir = prefix[:idx]
		if dir == "" {
			dir = "/"
		}
		base = prefix[idx+1:]
	}

	var out []string
	for _, name := range p.ListNames(dir) {
		if len(name) >= len(base) && name[:len(base)] == base {
			out = append(out, name)
		}
	}
	return out
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}
