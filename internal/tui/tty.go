package tui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsInteractive reports whether stdout is a real terminal, grounded
// on the teacher's go.mod dependency on mattn/go-isatty (used there
// to decide whether to enable full-color rendering). Used to decide
// whether to enable color/full-screen redraw, or fall back to a
// single-shot plain listing (--list-and-quit, piped output, §6).
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
