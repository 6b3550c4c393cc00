// Package pipeline is component I: tokenize a command line, run it
// through the ordered §4.I rewriting passes, and dispatch to an
// internal command table or an external shell. Tokenization is
// grounded on the teacher's own use of a shellwords parser
// (src/options.go's parseShellWords / shellwords.NewParser).
package pipeline

import (
	"strings"

	"github.com/junegunn/go-shellwords"
)

// Line is a tokenized and not-yet-rewritten command line.
type Line struct {
	Tokens  []string
	Verbatim string // set when a leading ";" or ":" forces shell passthrough
	Background bool
}

// Tokenize splits raw per §4.I "Tokenization": whitespace-separated,
// backslash-escape and quote aware (delegated to the shellwords
// parser the teacher already depends on), with a leading ";" or ":"
// forcing everything after it to be passed verbatim to the system
// shell, and a trailing "&" requesting background execution.
func Tokenize(raw string) (Line, error) {
	trimmed := strings.TrimLeft(raw, " \t")
	if strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, ":") {
		return Line{Verbatim: strings.TrimSpace(trimmed[1:])}, nil
	}

	bg := false
	work := strings.TrimRight(raw, " \t")
	if strings.HasSuffix(work, "&") && !strings.HasSuffix(work, "\\&") {
		bg = true
		work = strings.TrimRight(work[:len(work)-1], " \t")
	}

	parser := shellwords.NewParser()
	parser.ParseEnv = false
	parser.ParseBacktick = false
	tokens, err := parser.Parse(work)
	if err != nil {
		return Line{}, err
	}
	return Line{Tokens: tokens, Background: bg}, nil
}
