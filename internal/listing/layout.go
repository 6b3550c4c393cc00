package listing

import "github.com/go-vfm/vfm/internal/pathutil"

// ColumnLayout describes how entries are arranged in the short
// listing view (§4.E step 4).
type ColumnLayout struct {
	Columns    int
	ColWidth   int
	Rows       int
	Horizontal bool // fill rows first when true, columns first otherwise
}

const columnGap = 2

// ComputeLayout derives the column layout: find the widest name, then
// pick the largest column count such that
// columns*(widest+gap) <= termWidth.
func ComputeLayout(entries []*FileEntry, termWidth int, eln bool, horizontal bool) ColumnLayout {
	widest := 0
	for _, e := range entries {
		w := e.NameWidth
		if eln {
			w += elnWidth(len(entries)) + 1 // "N " prefix
		}
		if w > widest {
			widest = w
		}
	}
	colWidth := widest + columnGap
	if colWidth <= 0 {
		colWidth = 1
	}
	cols := termWidth / colWidth
	if cols < 1 {
		cols = 1
	}
	if cols > len(entries) && len(entries) > 0 {
		cols = len(entries)
	}
	rows := 0
	if cols > 0 {
		rows = (len(entries) + cols - 1) / cols
	}
	return ColumnLayout{Columns: cols, ColWidth: colWidth, Rows: rows, Horizontal: horizontal}
}

func elnWidth(n int) int {
	w := 1
	for n >= 10 {
		n /= 10
		w++
	}
	return w
}

// CellAt returns the entry index for the given visual row/col under
// the layout's fill order, or -1 if out of range.
func (l ColumnLayout) CellAt(row, col, total int) int {
	var idx int
	if l.Horizontal {
		idx = row*l.Columns + col
	} else {
		idx = col*l.Rows + row
	}
	if idx < 0 || idx >= total {
		return -1
	}
	return idx
}

// TruncateName fits name within width columns, honoring keepExt and
// appending marker, per §4.E step 6.
func TruncateName(name string, width int, keepExt bool) string {
	return pathutil.Truncate(name, width, "~", keepExt)
}

// Page splits entries into pager-sized screenfuls of screenLines rows
// each, honoring the column layout (§4.E step 5 "pause every
// screenful").
func Page(totalRows, screenLines int) []struct{ Start, End int } {
	if screenLines <= 0 {
		return []struct{ Start, End int }{{0, totalRows}}
	}
	var pages []struct{ Start, End int }
	for start := 0; start < totalRows; start += screenLines {
		end := start + screenLines
		if end > totalRows {
			end = totalRows
		}
		pages = append(pages, struct{ Start, End int }{start, end})
	}
	if len(pages) == 0 {
		pages = append(pages, struct{ Start, End int }{0, 0})
	}
	return pages
}
