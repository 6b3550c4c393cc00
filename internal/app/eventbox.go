package app

import "sync"

// EventType identifies what changed since the last redraw.
type EventType int

const (
	// EvtListingStale fires when fsnotify reports a change under the
	// current workspace's CWD (§1 "keeps its own visual model of the
	// filesystem synchronized with external changes").
	EvtListingStale EventType = iota
	// EvtSelectionChanged fires when the shared selbox file is
	// rewritten by another process (§4.F "every interactive command
	// reloads it on prompt redraw").
	EvtSelectionChanged
	// EvtResize fires on a terminal resize.
	EvtResize
	// EvtQuit fires when the REPL is asked to exit.
	EvtQuit
)

// Events associates an EventType with whatever payload it carries.
type Events map[EventType]any

// EventBox coordinates the redraw loop with the background watchers
// (fsnotify watches of the CWD and the shared selbox) without
// busy-waiting. Grounded
// directly on the teacher's src/util/eventbox.go sync.Cond pattern,
// adapted from fzf's reader/matcher/terminal pipeline to this
// program's listing/selection/resize signals.
type EventBox struct {
	events Events
	cond   *sync.Cond
	ignore map[EventType]bool
}

func NewEventBox() *EventBox {
	return &EventBox{
		events: make(Events),
		cond:   sync.NewCond(&sync.Mutex{}),
		ignore: make(map[EventType]bool),
	}
}

// Wait blocks until at least one event is pending, then runs callback
// with exclusive access to the event set.
func (b *EventBox) Wait(callback func(*Events)) {
	b.cond.L.Lock()
	if len(b.events) == 0 {
		b.cond.Wait()
	}
	callback(&b.events)
	b.cond.L.Unlock()
}

// Set records event and wakes any waiter, unless event is on the
// ignore list.
func (b *EventBox) Set(event EventType, value any) {
	b.cond.L.Lock()
	b.events[event] = value
	if _, ignored := b.ignore[event]; !ignored {
		b.cond.Broadcast()
	}
	b.cond.L.Unlock()
}

// Clear empties the event set; callers use it inside Wait's callback
// once the pending events have been consumed.
func (events *Events) Clear() {
	for e := range *events {
		delete(*events, e)
	}
}

// Peek reports whether event is currently pending.
func (b *EventBox) Peek(event EventType) bool {
	b.cond.L.Lock()
	_, ok := b.events[event]
	b.cond.L.Unlock()
	return ok
}

// Watch re-enables delivery of events, reversing a prior Unwatch.
func (b *EventBox) Watch(events ...EventType) {
	b.cond.L.Lock()
	for _, e := range events {
		delete(b.ignore, e)
	}
	b.cond.L.Unlock()
}

// Unwatch suppresses delivery of events (e.g. while the bulk-rename
// editor owns the terminal and redraw must not fire).
func (b *EventBox) Unwatch(events ...EventType) {
	b.cond.L.Lock()
	for _, e := range events {
		b.ignore[e] = true
	}
	b.cond.L.Unlock()
}
