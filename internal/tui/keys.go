package tui

import (
	"github.com/gdamore/tcell/v2"
)

// KeyEvent is a decoded keypress, independent of tcell's type so the
// pipeline's keybind table doesn't import tcell directly.
type KeyEvent struct {
	Rune  rune
	Named string // "Enter", "Tab", "Backspace", "Up", "Down", "Left", "Right", "Esc", "" for a plain rune
	Ctrl  bool
	Alt   bool
}

// DecodeKey translates a tcell key event into a KeyEvent, grounded on
// the teacher's keyfn/CtrlAltKey dispatch in src/tui/tcell.go (Ctrl-A
// through Ctrl-Z mapped by offset from 'a', Alt detected via
// modifiers).
func DecodeKey(ev *tcell.EventKey) KeyEvent {
	mods := ev.Modifiers()
	alt := mods&tcell.ModAlt != 0

	if r := ev.Rune(); ev.Key() == tcell.KeyRune {
		return KeyEvent{Rune: r, Alt: alt}
	}

	named, ok := namedKeys[ev.Key()]
	if ok {
		return KeyEvent{Named: named, Alt: alt}
	}

	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := rune('a' + int(ev.Key()-tcell.KeyCtrlA))
		return KeyEvent{Rune: r, Ctrl: true, Alt: alt}
	}

	return KeyEvent{Alt: alt}
}

var namedKeys = map[tcell.Key]string{
	tcell.KeyEnter:     "Enter",
	tcell.KeyTab:       "Tab",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyUp:        "Up",
	tcell.KeyDown:      "Down",
	tcell.KeyLeft:      "Left",
	tcell.KeyRight:     "Right",
	tcell.KeyEsc:       "Esc",
	tcell.KeyHome:      "Home",
	tcell.KeyEnd:       "End",
	tcell.KeyDelete:    "Delete",
	tcell.KeyPgUp:      "PgUp",
	tcell.KeyPgDn:      "PgDn",
}

// Action is a logical line-editor or navigation action bound to a key
// (§4.E step 5's pager key protocol generalizes to the whole prompt).
type Action string

const (
	ActionNone          Action = ""
	ActionAccept        Action = "accept"
	ActionCancel        Action = "cancel"
	ActionHistoryPrev   Action = "history-prev"
	ActionHistoryNext   Action = "history-next"
	ActionComplete      Action = "complete"
	ActionAcceptSuggest Action = "accept-suggestion"
	ActionMoveLeft      Action = "move-left"
	ActionMoveRight     Action = "move-right"
	ActionDeleteBack    Action = "delete-back"
	ActionDeleteFwd     Action = "delete-forward"
	ActionClearLine     Action = "clear-line"
)

// Keybinds maps a decoded key to a logical Action, overridable from
// keybindings.clifm (§6).
type Keybinds struct {
	byNamed map[string]Action
	byCtrl  map[rune]Action
}

// DefaultKeybinds is the built-in table before any keybindings.clifm
// override is applied.
func DefaultKeybinds() *Keybinds {
	return &Keybinds{
		byNamed: map[string]Action{
			"Enter":     ActionAccept,
			"Esc":       ActionCancel,
			"Tab":       ActionComplete,
			"Up":        ActionHistoryPrev,
			"Down":      ActionHistoryNext,
			"Left":      ActionMoveLeft,
			"Right":     ActionMoveRight,
			"Backspace": ActionDeleteBack,
			"Delete":    ActionDeleteFwd,
		},
		byCtrl: map[rune]Action{
			'u': ActionClearLine,
			'f': ActionAcceptSuggest,
		},
	}
}

// Resolve looks up the Action bound to ev, or ActionNone if ev is a
// plain printable rune meant for text insertion.
func (k *Keybinds) Resolve(ev KeyEvent) Action {
	if ev.Named != "" {
		if a, ok := k.byNamed[ev.Named]; ok {
			return a
		}
		return ActionNone
	}
	if ev.Ctrl {
		if a, ok := k.byCtrl[ev.Rune]; ok {
			return a
		}
	}
	return ActionNone
}

// Bind overrides (or adds) a named-key binding, for keybindings.clifm.
func (k *Keybinds) Bind(named string, a Action) {
	k.byNamed[named] = a
}

// BindCtrl overrides (or adds) a Ctrl-<letter> binding.
func (k *Keybinds) BindCtrl(r rune, a Action) {
	k.byCtrl[r] = a
}
