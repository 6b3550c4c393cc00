// Package listing is component E: scandir, classify, sort, paginate
// and render a directory. It never retains *os.File/dirent handles
// past the scan (§9 "dirent/stat pointers flowing into entry
// arrays" — each FileEntry is an owned, copy-constructed record), and
// a fresh listing always replaces the previous one wholesale.
package listing

import (
	"time"

	"github.com/go-vfm/vfm/internal/color"
	"github.com/go-vfm/vfm/internal/fsprobe"
	"github.com/go-vfm/vfm/internal/pathutil"
)

// FileEntry is the owned, per-listing record from §3. It never
// outlives the listing that produced it.
type FileEntry struct {
	Name        string
	NameWidth   int // Unicode display width, not byte length
	Dev, Ino    uint64
	Type        fsprobe.FileType
	Mode        uint32
	Nlink       uint64
	Uid, Gid    uint32
	Size        int64
	Blocks      int64
	Atime       time.Time
	Mtime       time.Time
	Ctime       time.Time
	Btime       time.Time // zero value if unavailable
	SubentryN   int       // -1 if unreadable directory
	Color       color.Code
	Icon        string
	IconColor   color.Code
	Selected    bool
	HasXattr    bool
	LinkTarget  fsprobe.FileType
	IsBrokenDir bool // set when classify() failed for this entry
}

// FullPath reconstructs the absolute path of e relative to cwd. §8
// invariant: e.Name never contains a literal '/'.
func (e *FileEntry) FullPath(cwd string) string {
	if cwd == "/" {
		return "/" + e.Name
	}
	return cwd + "/" + e.Name
}

func fromStat(name string, st fsprobe.Stat) *FileEntry {
	return &FileEntry{
		Name:      name,
		NameWidth: pathutil.DisplayWidth(name),
		Dev:       st.Dev,
		Ino:       st.Ino,
		Type:      st.Type,
		Mode:      uint32(st.Mode),
		Nlink:     st.Nlink,
		Uid:       st.Uid,
		Gid:       st.Gid,
		Size:      st.Size,
		Blocks:    st.Blocks,
		Atime:     st.Atime,
		Mtime:     st.Mtime,
		Ctime:     st.Ctime,
		HasXattr:  st.HasXattr,
		SubentryN: -1,
	}
}
