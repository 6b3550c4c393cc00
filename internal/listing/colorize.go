package listing

import (
	"github.com/go-vfm/vfm/internal/color"
	"github.com/go-vfm/vfm/internal/fsprobe"
)

// Colorize assigns Color to every entry according to the priority
// rules in §4.C: for regular files SUID > SGID > executable > empty >
// by-extension > default (file capabilities are not checked); for
// directories no-read > sticky+other-writable > sticky >
// other-writable > empty-readable > regular; for symlinks broken >
// target-is-directory > plain.
func Colorize(entries []*FileEntry, p *color.Palette) {
	for _, e := range entries {
		if e.IsBrokenDir {
			e.Color = p.UnstatAble
			continue
		}
		switch e.Type {
		case fsprobe.Dir:
			e.Color = colorizeDir(e, p)
		case fsprobe.Symlink:
			e.Color = colorizeSymlink(e, p)
		default:
			e.Color = colorizeRegular(e, p)
		}
	}
}

const (
	modeSUID  = 0o4000
	modeSGID  = 0o2000
	modeStick = 0o1000
	modeOW    = 0o002 // other-writable
	modeOR    = 0o004 // other-readable
	modeOX    = 0o001 // other-executable
	modeAnyX  = 0o111
)

func colorizeRegular(e *FileEntry, p *color.Palette) color.Code {
	switch {
	case e.Mode&modeSUID != 0:
		return color.Code{Value: 9, Attr: color.Reverse}
	case e.Mode&modeSGID != 0:
		return color.Code{Value: 11, Attr: color.Reverse}
	case e.Mode&modeAnyX != 0:
		return color.Code{Value: 2, Attr: color.Bold}
	case e.Size == 0:
		return color.Code{Value: 7, Attr: color.Dim}
	default:
		if c, ok := p.ColorForExtension(e.Name); ok {
			return c
		}
		return p.TypeColors[color.Regular]
	}
}

func extColorOrDefault(e *FileEntry, p *color.Palette) (color.Code, bool) {
	return p.ColorForExtension(e.Name)
}

func colorizeDir(e *FileEntry, p *color.Palette) color.Code {
	switch {
	case e.Mode&modeOR == 0:
		return p.NoRead
	case e.Mode&modeStick != 0 && e.Mode&modeOW != 0:
		return color.Code{Value: 10, Attr: color.Reverse}
	case e.Mode&modeStick != 0:
		return color.Code{Value: 14, Attr: color.Reverse}
	case e.Mode&modeOW != 0:
		return color.Code{Value: 10}
	case e.SubentryN == 0:
		return color.Code{Value: 4}
	default:
		return p.TypeColors[color.Directory]
	}
}

func colorizeSymlink(e *FileEntry, p *color.Palette) color.Code {
	switch {
	case e.LinkTarget == fsprobe.Unknown:
		return color.Code{Value: 1, Attr: color.Bold} // broken
	case e.LinkTarget == fsprobe.Dir:
		return color.Code{Value: 4, Attr: color.Underline}
	default:
		return p.TypeColors[color.Symlink]
	}
}
