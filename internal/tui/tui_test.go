package tui

import "testing"

func TestDefaultKeybindsResolve(t *testing.T) {
	k := DefaultKeybinds()
	if k.Resolve(KeyEvent{Named: "Enter"}) != ActionAccept {
		t.Error("expected Enter -> accept")
	}
	if k.Resolve(KeyEvent{Rune: 'u', Ctrl: true}) != ActionClearLine {
		t.Error("expected Ctrl-U -> clear-line")
	}
	if k.Resolve(KeyEvent{Rune: 'x'}) != ActionNone {
		t.Error("expected plain rune -> no action (insert text)")
	}
}

func TestKeybindOverride(t *testing.T) {
	k := DefaultKeybinds()
	k.Bind("Tab", ActionAcceptSuggest)
	if k.Resolve(KeyEvent{Named: "Tab"}) != ActionAcceptSuggest {
		t.Error("expected override to take effect")
	}
}

func TestHistorySuggester(t *testing.T) {
	hs := HistorySuggester{History: func() []string {
		return []string{"ls -l", "cd /home/user/projects"}
	}}
	sug, ok := hs.Suggest("cd /home")
	if !ok || sug != "/user/projects" {
		t.Errorf("expected suggestion, got %q ok=%v", sug, ok)
	}

	if _, ok := hs.Suggest("zzz"); ok {
		t.Error("expected no suggestion for unmatched prefix")
	}
}

func TestPathCompleter(t *testing.T) {
	pc := PathCompleter{ListNames: func(dir string) []string {
		if dir == "." {
			return []string{"alpha.txt", "alphabet", "beta.txt"}
		}
		return nil
	}}
	out := pc.Complete("cat al", 6)
	if len(out) != 2 {
		t.Errorf("expected 2 completions, got %v", out)
	}
}
