package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-vfm/vfm/internal/config"
	"github.com/go-vfm/vfm/internal/jumpdb"
	"github.com/go-vfm/vfm/internal/pipeline"
	"github.com/go-vfm/vfm/internal/selection"
	"github.com/go-vfm/vfm/internal/vfmerr"
)

func pipelineRewritten(args ...string) pipeline.Rewritten {
	return pipeline.Rewritten{Args: args}
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// registerCommands populates the dispatcher's internal-command table
// (§4.I "Dispatch"), one handler per command named across §3/§4. Each
// handler returns the exit code scheme from §7: 0 success, 2
// not-found, 126 non-executable.
func (a *App) registerCommands() {
	d := a.Dispatcher

	d.Register("cd", a.cmdCd)
	d.Register("b", a.cmdBack)
	d.Register("back", a.cmdBack)
	d.Register("f", a.cmdForth)
	d.Register("forth", a.cmdForth)
	d.Register("ws", a.cmdWorkspace)
	d.Register("bm", a.cmdBookmark)
	d.Register("bookmarks", a.cmdBookmark)
	d.Register("pin", a.cmdPin)
	d.Register("unpin", a.cmdUnpin)
	d.Register(",", a.cmdGotoPin)
	d.Register("j", a.cmdJump)
	d.Register("jp", a.cmdJumpParent)
	d.Register("jc", a.cmdJumpChild)
	d.Register("sel", a.cmdSelect)
	d.Register("ds", a.cmdDeselect)
	d.Register("desel", a.cmdDeselect)
	d.Register("p", a.cmdProperties)
	d.Register("pr", a.cmdProperties)
	d.Register("properties", a.cmdProperties)
	d.Register("br", a.cmdBulkRename)
	d.Register("bulk", a.cmdBulkRename)
	d.Register("tag", a.cmdTag)
	d.Register("open", a.cmdOpen)
	d.Register("preview", a.cmdOpen)
}

// cmdOpen implements `open PATH` / `preview PATH` (the --open=/
// --preview= one-shot CLI modes also route here): look up PATH's
// extension in mimelist.clifm, falling back to $EDITOR, and run the
// resulting line through the same external-dispatch path as any other
// command (§6 "mimelist.clifm").
func (a *App) cmdOpen(ctx context.Context, args []string) (int, error) {
	if len(args) < 2 {
		return 1, vfmerr.New(vfmerr.UserInput, "", fmt.Errorf("%s: missing path", args[0]))
	}
	path := args[1]
	if _, err := os.Stat(path); err != nil {
		return 2, vfmerr.New(vfmerr.NotFound, path, err)
	}

	cmdLine, ok := a.MimeList.Resolve(path)
	if !ok {
		cmdLine = os.Getenv("EDITOR")
		if cmdLine == "" {
			cmdLine = "vi"
		}
	}
	fields := strings.Fields(cmdLine)
	fields = append(fields, path)
	return a.Dispatcher.Dispatch(ctx, pipeline.Rewritten{Args: fields})
}

func (a *App) cmdCd(ctx context.Context, args []string) (int, error) {
	dest := a.Workspaces.Current().Path
	if len(args) > 1 {
		dest = args[1]
	} else if home, err := os.UserHomeDir(); err == nil {
		dest = home
	}
	if err := a.Chdir(dest, os.Stdout); err != nil {
		if vfmerr.KindOf(err) == vfmerr.NotFound {
			return 2, err
		}
		return 1, err
	}
	return 0, nil
}

func (a *App) cmdBack(ctx context.Context, args []string) (int, error) {
	if err := a.Workspaces.Back(); err != nil {
		return 1, err
	}
	return 0, a.Rescan()
}

func (a *App) cmdForth(ctx context.Context, args []string) (int, error) {
	if err := a.Workspaces.Forth(); err != nil {
		return 1, err
	}
	return 0, a.Rescan()
}

// cmdWorkspace implements `ws N`, including the toggle-to-previous
// semantics of switching to the already-current slot (§8 scenario 5).
func (a *App) cmdWorkspace(ctx context.Context, args []string) (int, error) {
	if len(args) < 2 {
		return 0, nil
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 1, vfmerr.New(vfmerr.UserInput, args[1], err)
	}
	if _, err := a.Workspaces.Switch(n - 1); err != nil {
		return 1, err
	}
	return 0, a.Rescan()
}

// cmdBookmark implements `bm add NAME [PATH]` / `bm del SHORTCUT` /
// `bm` (list), the shortcut/name/path triple from §3.
func (a *App) cmdBookmark(ctx context.Context, args []string) (int, error) {
	if len(args) == 1 {
		for _, bm := range a.Bookmarks.All() {
			fmt.Printf("%s\t%s\t%s\n", bm.Shortcut, bm.Name, bm.Path)
		}
		return 0, nil
	}
	switch args[1] {
	case "add":
		if len(args) < 3 {
			return 1, vfmerr.New(vfmerr.UserInput, "", fmt.Errorf("bm add: missing shortcut"))
		}
		path := a.Workspaces.Current().Path
		if len(args) > 3 {
			path = args[3]
		}
		if err := a.Bookmarks.Add(args[2], args[2], path); err != nil {
			return 1, err
		}
	case "del":
		if len(args) < 3 {
			return 1, vfmerr.New(vfmerr.UserInput, "", fmt.Errorf("bm del: missing shortcut"))
		}
		if err := a.Bookmarks.Del(args[2]); err != nil {
			return 2, err
		}
	default:
		if bm, ok := a.Bookmarks.Get(args[1]); ok {
			return a.cmdCd(ctx, []string{"cd", bm.Path})
		}
		return 2, vfmerr.New(vfmerr.NotFound, args[1], fmt.Errorf("no such bookmark"))
	}
	return 0, nil
}

func (a *App) cmdPin(ctx context.Context, args []string) (int, error) {
	dir := a.Workspaces.Current().Path
	if len(args) > 1 {
		dir = args[1]
	}
	if err := a.Pin.Set(dir); err != nil {
		return 1, err
	}
	return 0, nil
}

func (a *App) cmdUnpin(ctx context.Context, args []string) (int, error) {
	if err := a.Pin.Unset(); err != nil {
		return 1, err
	}
	return 0, nil
}

func (a *App) cmdGotoPin(ctx context.Context, args []string) (int, error) {
	dir := a.Pin.Dir()
	if dir == "" {
		return 2, vfmerr.New(vfmerr.NotFound, "", fmt.Errorf("no pinned directory"))
	}
	return a.cmdCd(ctx, []string{"cd", dir})
}

func (a *App) cmdJump(ctx context.Context, args []string) (int, error) {
	return a.jumpWith(ctx, args, jumpdb.Any)
}

func (a *App) cmdJumpParent(ctx context.Context, args []string) (int, error) {
	return a.jumpWith(ctx, args, jumpdb.ParentOnly)
}

func (a *App) cmdJumpChild(ctx context.Context, args []string) (int, error) {
	return a.jumpWith(ctx, args, jumpdb.ChildOnly)
}

func (a *App) jumpWith(ctx context.Context, args []string, rel jumpdb.Relation) (int, error) {
	queries := args[1:]
	a.JumpDB.RankAll(a.rankContext(strings.Join(queries, "")))
	entry, ok := a.JumpDB.QueryRelative(queries, a.Workspaces.Current().Path, rel)
	if !ok {
		return 2, vfmerr.New(vfmerr.NotFound, "", fmt.Errorf("no matching jump entry"))
	}
	return a.cmdCd(ctx, []string{"cd", entry.Path})
}

// cmdSelect implements `sel PATTERN... [-b|-c|-d|-f|-l|-s|-p] [:ROOT]`
// (§4.F): a trailing "-X" selects one of the seven file-type filters,
// a ":ROOT" token overrides the directory the patterns are resolved
// against (default the current workspace's CWD), and every remaining
// token is a glob or regex pattern dispatched to
// selection.GlobSelect/RegexSelect.
func (a *App) cmdSelect(ctx context.Context, args []string) (int, error) {
	root := a.Workspaces.Current().Path
	filter := selection.TypeAny
	var patterns []string

	for _, tok := range args[1:] {
		switch {
		case strings.HasPrefix(tok, ":") && len(tok) > 1:
			root = tok[1:]
		case len(tok) == 2 && tok[0] == '-' && selection.IsTypeFilterFlag(tok[1]):
			filter = selection.TypeFilter(tok[1])
		default:
			patterns = append(patterns, tok)
		}
	}
	if len(patterns) == 0 {
		patterns = []string{"*"}
	}

	total := 0
	for _, p := range patterns {
		var (
			n   int
			err error
		)
		if looksLikeRegex(p) {
			n, err = a.Selection.RegexSelect(p, filter, root, nil)
		} else {
			n, err = a.Selection.GlobSelect(p, filter, root, nil)
		}
		if err != nil {
			return 1, err
		}
		total += n
	}
	if total == 0 {
		return 2, vfmerr.New(vfmerr.NotFound, "", fmt.Errorf("sel: no matches"))
	}
	return 0, nil
}

// looksLikeRegex is the same ERE-metacharacter heuristic the pipeline
// uses for its pass-9 regex fallback (§4.I), duplicated here rather
// than exported from internal/pipeline to keep selection's command
// handler free of a dependency on the rewriting package.
func looksLikeRegex(s string) bool {
	for _, r := range s {
		switch r {
		case '^', '$', '.', '+', '(', ')', '|':
			return true
		}
	}
	return false
}

func (a *App) cmdDeselect(ctx context.Context, args []string) (int, error) {
	if len(args) == 1 {
		if err := a.Selection.Clear(); err != nil {
			return 1, err
		}
		return 0, nil
	}
	for _, p := range args[1:] {
		if err := a.Selection.Remove(p); err != nil {
			return 1, err
		}
	}
	return 0, nil
}

// cmdProperties implements the `p`/`pr` properties view
// (SPEC_FULL.md supplemented feature, grounded on
// original_source/src/properties.c).
func (a *App) cmdProperties(ctx context.Context, args []string) (int, error) {
	targets := args[1:]
	if len(targets) == 0 {
		targets = []string{a.Workspaces.Current().Path}
	}
	full := len(args) > 0 && args[0] == "properties"
	for _, t := range targets {
		line, err := Stat(t, full)
		if err != nil {
			return 2, err
		}
		fmt.Print(line)
	}
	return 0, nil
}

// cmdBulkRename implements `br`/`bulk`: writes the target names to a
// temp file, opens $EDITOR on it, then renames every entry whose line
// changed (SPEC_FULL.md supplemented feature, grounded on
// original_source/src/file_operations.c's bulk_rename, restaged
// through the teacher's exec.Command idiom instead of a native
// tempfile+fork dance).
func (a *App) cmdBulkRename(ctx context.Context, args []string) (int, error) {
	targets := args[1:]
	if len(targets) == 0 {
		return 1, vfmerr.New(vfmerr.UserInput, "", fmt.Errorf("br: no targets"))
	}
	tmp, err := os.CreateTemp("", "vfm-bulk-*")
	if err != nil {
		return 1, vfmerr.New(vfmerr.Filesystem, "", err)
	}
	defer os.Remove(tmp.Name())

	for _, t := range targets {
		fmt.Fprintln(tmp, t)
	}
	tmp.Close()

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	// The editor owns the terminal for the duration of this call, so a
	// stray fsnotify tick from writing the temp file above must not
	// queue up a redraw the instant control returns.
	a.Events.Unwatch(EvtListingStale)
	_, dispatchErr := a.Dispatcher.Dispatch(ctx, pipelineRewritten(editor, tmp.Name()))
	a.Events.Watch(EvtListingStale)
	if dispatchErr != nil {
		return 126, dispatchErr
	}

	lines, err := readLines(tmp.Name())
	if err != nil {
		return 1, vfmerr.New(vfmerr.Filesystem, tmp.Name(), err)
	}
	if len(lines) != len(targets) {
		return 1, vfmerr.New(vfmerr.UserInput, "", fmt.Errorf("br: line count changed"))
	}
	for i, newName := range lines {
		if newName == targets[i] || newName == "" {
			continue
		}
		if _, err := os.Lstat(newName); err == nil {
			return 1, vfmerr.New(vfmerr.Filesystem, newName, os.ErrExist)
		}
		if err := os.Rename(targets[i], newName); err != nil {
			return 1, vfmerr.New(vfmerr.Filesystem, targets[i], err)
		}
	}
	return 0, nil
}

func (a *App) cmdTag(ctx context.Context, args []string) (int, error) {
	if len(args) < 3 {
		return 1, vfmerr.New(vfmerr.UserInput, "", fmt.Errorf("tag: usage: tag NAME PATH"))
	}
	if err := a.Tags.Add(args[1], args[2]); err != nil {
		return 1, err
	}
	return 0, nil
}

// registerActions wires every shortcut in actions.clifm as its own
// dispatcher entry, matching original_source/src/checks.c's
// is_action_name + run_action pairing: a plugin shortcut is looked up
// exactly like an internal command rather than forwarded to the
// shell. Also registers the literal "actions" command that lists the
// table (§6 "actions.clifm").
func (a *App) registerActions() {
	for _, name := range a.Actions.Names() {
		a.Dispatcher.Register(name, a.cmdRunAction(name))
	}
	a.Dispatcher.Register("actions", a.cmdListActions)
}

func (a *App) cmdListActions(ctx context.Context, args []string) (int, error) {
	for _, name := range a.Actions.Names() {
		script, _ := a.Actions.Resolve(name)
		fmt.Printf("%s\t%s\n", name, script)
	}
	return 0, nil
}

// cmdRunAction builds the Handler for one registered action name: run
// its plugin script through the FIFO bus protocol (§4.I/§6), then act
// on whatever the plugin posted back (an existing file to open, or a
// command line to run next).
func (a *App) cmdRunAction(name string) pipeline.Handler {
	return func(ctx context.Context, args []string) (int, error) {
		script, ok := a.Actions.Resolve(name)
		if !ok {
			return 2, vfmerr.New(vfmerr.NotFound, name, fmt.Errorf("unregistered action"))
		}
		scriptPath := config.ScriptPath(script, a.Opts.PluginsDir)
		env := map[string]string{
			"CLIFM_SELFILE": a.Selection.Path(),
		}
		result, err := pipeline.RunPlugin(ctx, scriptPath, args[1:], os.TempDir(), env)
		if err != nil {
			return 126, err
		}
		switch {
		case result.OpenFile != "":
			return a.Dispatcher.Dispatch(ctx, pipelineRewritten("open", result.OpenFile))
		case result.RunLine != "":
			return a.Dispatcher.DispatchVerbatim(ctx, result.RunLine, false)
		default:
			return 0, nil
		}
	}
}
