package listing

import (
	"io"
	"strconv"
	"strings"

	"github.com/go-vfm/vfm/internal/color"
	"github.com/go-vfm/vfm/internal/fsprobe"
)

// Listing is the result of list_current(): a directory's entries
// snapshotted at scan time, addressable by ELN (1-based). Commands
// that consume ELNs must resolve against this snapshot, never
// re-validate per-token mid-command (§5 "Ordering guarantees").
type Listing struct {
	CWD     string
	Entries []*FileEntry
}

// ByELN returns the entry for 1-based n, or nil if out of range (§8
// invariant "1 <= n <= len(current_listing)").
func (l *Listing) ByELN(n int) *FileEntry {
	if n < 1 || n > len(l.Entries) {
		return nil
	}
	return l.Entries[n-1]
}

// Len is the number of entries in the most recent listing.
func (l *Listing) Len() int { return len(l.Entries) }

// List runs the full §4.E algorithm: scan, sort, and return a
// Listing ready for layout/render. It never mutates CWD; on a
// Filesystem error the caller's previous Listing must be kept as-is.
func List(dir string, filter Filter, sortOpts SortOptions) (*Listing, error) {
	entries, err := Scan(dir, filter)
	if err != nil {
		return nil, err
	}
	Sort(entries, sortOpts)
	return &Listing{CWD: dir, Entries: entries}, nil
}

// RenderOptions controls the short/long view and decorations.
type RenderOptions struct {
	LongView    bool
	ShowELN     bool
	NoColor     bool
	TermWidth   int
	Horizontal  bool
	Palette     *color.Palette
	TruncateExt bool
}

// RenderShort writes the paginated short (multi-column) view to w.
func RenderShort(w io.Writer, l *Listing, opts RenderOptions) {
	layout := ComputeLayout(l.Entries, opts.TermWidth, opts.ShowELN, opts.Horizontal)
	total := len(l.Entries)
	for row := 0; row < layout.Rows; row++ {
		var line strings.Builder
		for col := 0; col < layout.Columns; col++ {
			idx := layout.CellAt(row, col, total)
			if idx < 0 {
				continue
			}
			writeCell(&line, l.Entries[idx], idx+1, layout.ColWidth, opts)
		}
		io.WriteString(w, strings.TrimRight(line.String(), " ")+"\n")
	}
}

func writeCell(b *strings.Builder, e *FileEntry, eln int, width int, opts RenderOptions) {
	name := TruncateName(e.Name, width-columnGap-elnWidth(eln)-1, opts.TruncateExt)
	prefix := ""
	if opts.ShowELN {
		prefix = strconv.Itoa(eln) + " "
	}
	if !opts.NoColor {
		b.WriteString(e.Color.SGR(true))
	}
	b.WriteString(prefix)
	b.WriteString(name)
	if !opts.NoColor {
		b.WriteString(color.Reset)
	}
	pad := width - len(prefix) - e.NameWidth
	for i := 0; i < pad; i++ {
		b.WriteByte(' ')
	}
}

// RenderLong writes the one-line-per-entry long view: the ELN counter
// (when ShowELN is set), permissions, size in bytes, an "@" xattr
// marker and the name. Owner/group, timestamps and inode numbers are
// not shown.
func RenderLong(w io.Writer, l *Listing, opts RenderOptions) {
	for i, e := range l.Entries {
		var line strings.Builder
		if opts.ShowELN {
			line.WriteString(strconv.Itoa(i + 1))
			line.WriteByte(' ')
		}
		line.WriteString(permString(e))
		line.WriteByte(' ')
		line.WriteString(strconv.FormatInt(e.Size, 10))
		line.WriteByte(' ')
		if e.HasXattr {
			line.WriteByte('@')
		}
		line.WriteByte(' ')
		if !opts.NoColor {
			line.WriteString(e.Color.SGR(true))
		}
		line.WriteString(e.Name)
		if !opts.NoColor {
			line.WriteString(color.Reset)
		}
		io.WriteString(w, line.String()+"\n")
	}
}

func permString(e *FileEntry) string {
	const rwx = "rwxrwxrwx"
	var b strings.Builder
	b.WriteString(typeChar(e))
	for i := 0; i < 9; i++ {
		if e.Mode&(1<<uint(8-i)) != 0 {
			b.WriteByte(rwx[i])
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

func typeChar(e *FileEntry) string {
	switch e.Type {
	case fsprobe.Dir:
		return "d"
	case fsprobe.Symlink:
		return "l"
	case fsprobe.Block:
		return "b"
	case fsprobe.Char:
		return "c"
	case fsprobe.Fifo:
		return "p"
	case fsprobe.Socket:
		return "s"
	default:
		return "-"
	}
}
