package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/go-vfm/vfm/internal/color"
)

// Style is a screen-level paint instruction: a resolved component-C
// color.Code applied as the foreground, plus its SGR attribute bits.
type Style struct {
	Fg color.Code
}

// FromCode translates a component-C color code into a Style, the
// boundary between the domain-neutral color package and the
// terminal-specific tcell attributes.
func FromCode(c color.Code) Style {
	return Style{Fg: c}
}

func (st Style) toTcell() tcell.Style {
	s := tcell.StyleDefault
	c := st.Fg
	if c != color.Unset {
		if c.RGB {
			v := c.Value
			s = s.Foreground(tcell.NewRGBColor((v>>16)&0xff, (v>>8)&0xff, v&0xff))
		} else if c.Value >= 0 {
			s = s.Foreground(tcell.PaletteColor(int(c.Value)))
		}
	}
	if c.Attr&color.Bold != 0 {
		s = s.Bold(true)
	}
	if c.Attr&color.Dim != 0 {
		s = s.Dim(true)
	}
	if c.Attr&color.Underline != 0 {
		s = s.Underline(true)
	}
	if c.Attr&color.Reverse != 0 {
		s = s.Reverse(true)
	}
	return s
}
