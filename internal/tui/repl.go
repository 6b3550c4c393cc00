package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/go-vfm/vfm/internal/color"
)

// Repl is the prompt line editor: it owns the in-progress line buffer
// and cursor, consulting a Suggester/Completer while the user types
// and handing a finished line back to the dispatcher on accept.
// Grounded on the teacher's src/tui/tcell.go GetChar loop, generalized
// from fzf's single search query to a full command line with
// history/completion.
type Repl struct {
	screen    *Screen
	keys      *Keybinds
	history   func() []string
	suggester Suggester
	completer Completer

	histPos int

	// OnInterrupt runs whenever PollEvent wakes on a tcell.EventInterrupt
	// posted by Screen.PostWake (a background watcher signaling a
	// pending EventBox entry), then the prompt redraws. Left nil, the
	// interrupt is just absorbed.
	OnInterrupt func()
}

func NewRepl(screen *Screen, keys *Keybinds, history func() []string) *Repl {
	return &Repl{
		screen:    screen,
		keys:      keys,
		history:   history,
		suggester: HistorySuggester{History: history},
	}
}

// SetCompleter installs the Tab-completion source (§1 "tab
// completion"); left nil, Tab is a no-op.
func (r *Repl) SetCompleter(c Completer) { r.completer = c }

// ReadLine runs the edit loop until the user accepts (Enter) or
// cancels (Esc/Ctrl-D on an empty line), drawing prompt+line+dimmed
// suggestion on every keystroke. ok is false on cancel/EOF.
func (r *Repl) ReadLine(prompt string) (string, bool) {
	var buf []rune
	cursor := 0
	r.histPos = -1

	r.render(prompt, buf, cursor)
	for {
		ev := r.screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventResize:
			r.screen.Clear()
			r.render(prompt, buf, cursor)
			continue
		case *tcell.EventInterrupt:
			if r.OnInterrupt != nil {
				r.OnInterrupt()
			}
			r.render(prompt, buf, cursor)
			continue
		case *tcell.EventKey:
			ke := DecodeKey(e)
			if ke.Ctrl && ke.Rune == 'd' && len(buf) == 0 {
				return "", false
			}
			if ke.Ctrl && ke.Rune == 'c' {
				return "", false
			}

			action := r.keys.Resolve(ke)
			switch action {
			case ActionAccept:
				return string(buf), true
			case ActionCancel:
				return "", false
			case ActionDeleteBack:
				if cursor > 0 {
					buf = append(buf[:cursor-1], buf[cursor:]...)
					cursor--
				}
			case ActionDeleteFwd:
				if cursor < len(buf) {
					buf = append(buf[:cursor], buf[cursor+1:]...)
				}
			case ActionMoveLeft:
				if cursor > 0 {
					cursor--
				}
			case ActionMoveRight:
				if cursor < len(buf) {
					cursor++
				}
			case ActionClearLine:
				buf = nil
				cursor = 0
			case ActionHistoryPrev:
				buf, cursor = r.historyAt(r.histPos + 1)
			case ActionHistoryNext:
				buf, cursor = r.historyAt(r.histPos - 1)
			case ActionAcceptSuggest:
				if r.suggester != nil {
					if sug, ok := r.suggester.Suggest(string(buf)); ok {
						buf = append(buf, []rune(sug)...)
						cursor = len(buf)
					}
				}
			case ActionComplete:
				r.tryComplete(&buf, &cursor)
			default:
				if ke.Named == "" && !ke.Ctrl && !ke.Alt && ke.Rune != 0 {
					tail := append([]rune{ke.Rune}, buf[cursor:]...)
					buf = append(buf[:cursor], tail...)
					cursor++
				}
			}
			r.render(prompt, buf, cursor)
		}
	}
}

func (r *Repl) historyAt(pos int) ([]rune, int) {
	hist := r.history()
	if pos < 0 || pos >= len(hist) {
		r.histPos = -1
		return nil, 0
	}
	r.histPos = pos
	line := []rune(hist[len(hist)-1-pos])
	return line, len(line)
}

func (r *Repl) tryComplete(buf *[]rune, cursor *int) {
	if r.completer == nil {
		return
	}
	cands := r.completer.Complete(string(*buf), *cursor)
	if len(cands) != 1 {
		return
	}
	*buf = append((*buf)[:*cursor], []rune(cands[0])...)
	*cursor = len(*buf)
}

func (r *Repl) render(prompt string, buf []rune, cursor int) {
	r.screen.Clear()
	line := prompt + string(buf)
	r.screen.DrawText(0, 0, line, Style{})
	if r.suggester != nil {
		if sug, ok := r.suggester.Suggest(string(buf)); ok {
			r.screen.DrawText(len(line), 0, sug, Style{Fg: color.Code{Value: -1, Attr: color.Dim}})
		}
	}
	r.screen.ShowCursor(len(prompt)+cursor, 0)
	r.screen.Show()
}
