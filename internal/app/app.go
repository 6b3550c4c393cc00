// Package app wires components B through J into the running program,
// the way the teacher's src/core.go's Run assembles Reader, Matcher
// and Terminal around a shared EventBox (grounded on that file's
// event-driven coordination, generalized here from fzf's
// reader/matcher/terminal trio to this program's
// listing/selection/jumpdb/workspace quartet).
package app

import (
	"fmt"
	"io"
	"os/user"
	"path/filepath"
	"time"

	"github.com/go-vfm/vfm/internal/color"
	"github.com/go-vfm/vfm/internal/config"
	"github.com/go-vfm/vfm/internal/fsprobe"
	"github.com/go-vfm/vfm/internal/jumpdb"
	"github.com/go-vfm/vfm/internal/listing"
	"github.com/go-vfm/vfm/internal/pipeline"
	"github.com/go-vfm/vfm/internal/selection"
	"github.com/go-vfm/vfm/internal/vfmerr"
	"github.com/go-vfm/vfm/internal/vfmlog"
	"github.com/go-vfm/vfm/internal/workspace"
)

// App owns every component's live state for one run of the program.
type App struct {
	Opts    *config.Options
	ConfigDir string

	Palette    *color.Palette
	Workspaces *workspace.Table
	Bookmarks  *workspace.Bookmarks
	Pin        *workspace.Pin
	Selection  *selection.Box
	JumpDB     *jumpdb.DB
	Tags       *pipeline.Tags
	Aliases    *pipeline.AliasTable
	History    *pipeline.History
	Dispatcher *pipeline.Dispatcher
	MimeList   *config.MimeList
	Actions    *config.Actions

	Listing *listing.Listing

	Events  *EventBox
	watcher *Watcher
}

// New wires every component's storage path under configDir and loads
// whatever persisted state already exists (§6 "Persisted state
// layout"). Stealth mode (opts.Stealth) skips loading/saving so a
// session leaves no trace on disk.
func New(configDir string, opts *config.Options, startPath string) (*App, error) {
	a := &App{
		Opts:      opts,
		ConfigDir: configDir,
		Palette:   color.Default(),
		Events:    NewEventBox(),
	}

	abs, err := filepath.Abs(startPath)
	if err != nil {
		return nil, vfmerr.New(vfmerr.Filesystem, startPath, err)
	}

	a.Workspaces = workspace.New(filepath.Join(configDir, "dirhist.clifm"), abs)
	a.Bookmarks = workspace.NewBookmarks(filepath.Join(configDir, "bookmarks.clifm"))
	a.Pin = workspace.NewPin(filepath.Join(configDir, "pin.clifm"))
	a.Selection = selection.New(filepath.Join(configDir, "selbox.clifm"))
	a.JumpDB = jumpdb.New(filepath.Join(configDir, "jump.clifm"), opts.JumpRankCeiling, maxInt(opts.MinJumpRank, 0))
	a.Tags = pipeline.NewTags(filepath.Join(configDir, "tags.clifm"))
	a.Aliases = pipeline.NewAliasTable()
	a.History = pipeline.NewHistory(filepath.Join(configDir, "history.clifm"))
	a.Dispatcher = pipeline.NewDispatcher()
	a.MimeList = config.NewMimeList(filepath.Join(configDir, "mimelist.clifm"))
	a.Actions = config.NewActions(filepath.Join(configDir, "actions.clifm"))
	if opts.PluginsDir == "" {
		opts.PluginsDir = filepath.Join(configDir, "plugins")
	}

	if !opts.Stealth {
		for _, loader := range []func() error{
			a.Bookmarks.Load,
			a.Pin.Load,
			a.Selection.Load,
			a.JumpDB.Load,
			a.Tags.Load,
			a.History.Load,
			a.MimeList.Load,
			a.Actions.Load,
		} {
			if err := loader(); err != nil {
				vfmlog.Warnf("load: %v", err)
			}
		}
	}

	a.registerCommands()
	a.registerActions()
	return a, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Rescan runs component E against the current workspace and stores
// the result, matching §4.E's "re-entrant across chdir" contract: a
// Filesystem error leaves the previous Listing untouched.
func (a *App) Rescan() error {
	cwd := a.Workspaces.Current().Path
	l, err := listing.List(cwd, listing.Filter{ShowHidden: a.Opts.ShowHidden}, listing.SortOptions{
		Method:    a.Opts.Sort,
		Reverse:   a.Opts.SortReverse,
		DirsFirst: a.Opts.DirsFirst,
	})
	if err != nil {
		return err
	}
	a.Listing = l
	return nil
}

// Chdir wraps workspace.Table.Chdir with the jump-db visit bookkeeping
// and OSC title/CWD-report emission §4.H names, retargets the
// filesystem watcher so it tracks the new CWD instead of the one it
// was started against, then triggers a rescan.
func (a *App) Chdir(path string, out io.Writer) error {
	prev := a.Workspaces.Current().Path
	if err := a.Workspaces.Chdir(path); err != nil {
		return err
	}
	now := time.Now()
	a.JumpDB.Visit(a.Workspaces.Current().Path, now)

	if a.watcher != nil {
		if err := a.watcher.Retarget(prev, a.Workspaces.Current().Path); err != nil {
			vfmlog.Warnf("retarget watcher: %v", err)
		}
	}

	if a.Opts.CwdInTitle {
		workspace.EmitTitle(out, "vfm", a.Workspaces.Current().Path)
	}
	workspace.EmitCwdReport(out, a.Workspaces.Current().Path)

	return a.Rescan()
}

// rankContext builds a jumpdb.RankContext from the app's current
// state, for commands that need to re-rank (`j`, `jp`, `jc`, purge).
func (a *App) rankContext(basenameQuery string) jumpdb.RankContext {
	return jumpdb.RankContext{
		Now:           time.Now(),
		Bookmarked:    a.Bookmarks.Paths(),
		Pinned:        a.Pin.Dir(),
		Workspaces:    a.Workspaces.Workspaces(),
		BasenameQuery: basenameQuery,
	}
}

// SaveAll ranks, normalizes and saves the jump database, called at
// exit (§6); the other stores write themselves on every change. A
// stealth-mode session skips this so it leaves no trace.
func (a *App) SaveAll() error {
	if a.Opts.Stealth {
		return nil
	}
	a.JumpDB.RankAll(a.rankContext(""))
	a.JumpDB.Normalize()
	return a.JumpDB.Save()
}

// Stat formats the properties view for one entry (SPEC_FULL.md
// "Properties view", grounded on original_source/src/properties.c):
// permissions in both symbolic and octal form, owner/group, all three
// timestamps, link count, inode and size.
func Stat(path string, full bool) (string, error) {
	st, err := fsprobe.Classify(path)
	if err != nil {
		return "", err
	}
	symbolic := permString(st)
	line := fmt.Sprintf(
		"%s  %s (%04o)  %s:%s  links=%d  inode=%d  size=%d\n  atime=%s\n  mtime=%s\n  ctime=%s\n",
		path, symbolic, st.Mode&0o7777,
		ownerName(st.Uid), groupName(st.Gid),
		st.Nlink, st.Ino, st.Size,
		st.Atime.Format(time.RFC3339), st.Mtime.Format(time.RFC3339), st.Ctime.Format(time.RFC3339),
	)
	if full && st.HasXattr {
		line += "  extended attributes present\n"
	}
	return line, nil
}

func permString(st fsprobe.Stat) string {
	const rwx = "rwxrwxrwx"
	mode := st.Mode
	b := []byte("----------")
	switch st.Type {
	case fsprobe.Dir:
		b[0] = 'd'
	case fsprobe.Symlink:
		b[0] = 'l'
	case fsprobe.Block:
		b[0] = 'b'
	case fsprobe.Char:
		b[0] = 'c'
	case fsprobe.Fifo:
		b[0] = 'p'
	case fsprobe.Socket:
		b[0] = 's'
	}
	for i := 0; i < 9; i++ {
		if mode&(1<<uint(8-i)) != 0 {
			b[i+1] = rwx[i]
		}
	}
	return string(b)
}

// ownerName resolves uid to a username via os/user, falling back to
// the numeric id when the system has no entry for it (e.g. a
// dangling uid left behind by a removed account).
func ownerName(uid uint32) string {
	if u, err := user.LookupId(fmt.Sprint(uid)); err == nil {
		return u.Username
	}
	return fmt.Sprint(uid)
}

func groupName(gid uint32) string {
	if g, err := user.LookupGroupId(fmt.Sprint(gid)); err == nil {
		return g.Name
	}
	return fmt.Sprint(gid)
}

// Shutdown releases the watcher and persists state. Safe to call more
// than once.
func (a *App) Shutdown() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	if err := a.SaveAll(); err != nil {
		vfmlog.Warnf("shutdown save: %v", err)
	}
}

// EnableWatcher starts an fsnotify watch on the current workspace's
// CWD, posting EvtListingStale on external changes, and on selbox.clifm,
// posting EvtSelectionChanged when another process rewrites the shared
// selection file (§1, §6). Call once at startup; Chdir retargets the
// directory watch on every successful chdir.
func (a *App) EnableWatcher() error {
	w, err := NewWatcher(a.Events)
	if err != nil {
		return err
	}
	a.watcher = w
	if err := w.Retarget("", a.Workspaces.Current().Path); err != nil {
		return err
	}
	return w.WatchSelbox(a.Selection.Path())
}
