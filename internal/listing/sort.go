package listing

import (
	"sort"
	"time"

	"github.com/go-vfm/vfm/internal/config"
	"github.com/go-vfm/vfm/internal/fsprobe"
	"github.com/go-vfm/vfm/internal/pathutil"
)

// SortOptions configures the comparator for Sort, matching §4.E step
// 3: method + secondary-key-is-always-name + reverse + dirs-first,
// applied above the primary comparator.
type SortOptions struct {
	Method        config.SortMethod
	Reverse       bool
	DirsFirst     bool
	CaseSensitive bool
}

func primaryLess(a, b *FileEntry, method config.SortMethod, caseSensitive bool) int {
	switch method {
	case config.SortNone:
		return 0
	case config.SortSize:
		return cmpInt64(a.Size, b.Size)
	case config.SortAtime:
		return cmpTime(a.Atime, b.Atime)
	case config.SortBtime:
		return cmpTime(a.Btime, b.Btime)
	case config.SortCtime:
		return cmpTime(a.Ctime, b.Ctime)
	case config.SortMtime:
		return cmpTime(a.Mtime, b.Mtime)
	case config.SortVersion:
		return pathutil.CompareVersion(a.Name, b.Name)
	case config.SortExtension:
		return compareRaw(extensionOf(a.Name), extensionOf(b.Name))
	case config.SortInode:
		return cmpUint64(a.Ino, b.Ino)
	case config.SortOwner:
		return cmpUint32(a.Uid, b.Uid)
	case config.SortGroup:
		return cmpUint32(a.Gid, b.Gid)
	case config.SortName:
		fallthrough
	default:
		return pathutil.CompareNames(a.Name, b.Name, caseSensitive)
	}
}

func extensionOf(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}
	return ""
}

func compareRaw(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUint32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// Sort orders entries in place per SortOptions. Directories-first is
// enforced above the primary comparator; the secondary key is always
// name (§4.E step 3).
func Sort(entries []*FileEntry, opts SortOptions) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if opts.DirsFirst {
			ad, bd := a.Type == fsprobe.Dir, b.Type == fsprobe.Dir
			if ad != bd {
				return ad
			}
		}
		c := primaryLess(a, b, opts.Method, opts.CaseSensitive)
		if c == 0 {
			c = pathutil.CompareNames(a.Name, b.Name, opts.CaseSensitive)
		}
		if opts.Reverse {
			c = -c
		}
		return c < 0
	})
}
