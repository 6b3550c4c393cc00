// Package tui is component J: the line-editor glue — a tcell-backed
// screen driver for redraw, a keybind table, and the producer
// interfaces (suggestion, syntax highlight, completion) the prompt
// consumes while the user types. Grounded on the teacher's
// src/tui/tcell.go screen-driver shape (initScreen/GetChar/Clear),
// modernized to the tcell/v2 API (SetContent/Show/PollEvent replace
// v1's Fill/Refresh pair).
package tui

import (
	"github.com/gdamore/tcell/v2"
)

// Screen owns the terminal screen for the duration of an interactive
// session. Created once at startup, torn down on exit or before
// spawning an external editor/pager that needs the raw terminal.
type Screen struct {
	s tcell.Screen
}

// Open initializes and enters fullscreen/raw mode.
func Open() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.EnableMouse()
	return &Screen{s: s}, nil
}

// Close restores the terminal to its prior state (must be called
// before the process hands the terminal to a child, e.g. $EDITOR).
func (sc *Screen) Close() {
	sc.s.Fini()
}

// Size returns the current terminal dimensions.
func (sc *Screen) Size() (cols, rows int) {
	return sc.s.Size()
}

// Clear erases the screen content, grounded on the teacher's
// Sync-then-Clear pairing (src/tui/tcell.go Clear()).
func (sc *Screen) Clear() {
	sc.s.Sync()
	sc.s.Clear()
}

// SetCell paints a single cell, matching §4.E/J's requirement that
// redraw never leaves stale glyphs from a previous listing.
func (sc *Screen) SetCell(x, y int, ch rune, style Style) {
	sc.s.SetContent(x, y, ch, nil, style.toTcell())
}

// DrawText paints s starting at (x, y), left to right, one cell per
// rune; a combining mark gets a cell of its own.
func (sc *Screen) DrawText(x, y int, s string, style Style) {
	col := x
	for _, r := range s {
		sc.s.SetContent(col, y, r, nil, style.toTcell())
		col++
	}
}

// Show flushes pending cell writes to the terminal.
func (sc *Screen) Show() {
	sc.s.Show()
}

// ShowCursor positions the terminal cursor, for the line editor's
// insertion point.
func (sc *Screen) ShowCursor(x, y int) {
	sc.s.ShowCursor(x, y)
}

// PollEvent blocks for the next terminal event; key events are decoded
// by DecodeKey.
func (sc *Screen) PollEvent() tcell.Event {
	return sc.s.PollEvent()
}

// PostWake interrupts a blocked PollEvent from another goroutine, so a
// background watcher can make the prompt notice a pending EventBox
// entry without the user having to press a key first.
func (sc *Screen) PostWake() {
	sc.s.PostEvent(tcell.NewEventInterrupt(nil))
}
