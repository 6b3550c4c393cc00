package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-vfm/vfm/internal/app"
	"github.com/go-vfm/vfm/internal/config"
	"github.com/go-vfm/vfm/internal/pipeline"
	"github.com/go-vfm/vfm/internal/tui"
	"github.com/go-vfm/vfm/internal/vfmerr"
	"github.com/go-vfm/vfm/internal/vfmlog"
	"github.com/go-vfm/vfm/internal/workspace"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the testable body of main, mirroring the teacher's
// main.go->fzf.Run split: main itself stays a one-liner, every
// decision lives in a function that returns an exit code instead of
// calling os.Exit directly.
func run(args []string) int {
	opts := config.Default()

	configDir := opts.ConfigDir
	if configDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configDir = filepath.Join(home, ".config", "vfm")
		}
	}
	rcPath := filepath.Join(configDir, "clifmrc")
	if _, err := os.Stat(rcPath); err == nil {
		if parseErrs, err := config.ParseRC(rcPath, opts); err != nil {
			fmt.Fprintln(os.Stderr, "vfm: reading clifmrc:", err)
			return 1
		} else {
			for _, e := range parseErrs {
				vfmlog.Warnf("clifmrc: %v", e)
			}
		}
	}

	cli, err := config.ParseArgs(args, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "vfm:", err)
		return 1
	}

	if opts.ConfigDir != "" {
		configDir = opts.ConfigDir
	}
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		fmt.Fprintln(os.Stderr, "vfm: creating config dir:", err)
		return 1
	}

	logPath := os.Getenv("VFM_LOGFILE")
	if logPath == "" && !opts.Stealth {
		logPath = filepath.Join(configDir, "vfm.log")
	}
	if logPath != "" {
		if l, err := vfmlog.Open(logPath, vfmlog.Warn); err == nil {
			vfmlog.SetDefault(l)
		}
	}

	startPath := cli.StartPath
	if startPath == "" {
		startPath, _ = os.Getwd()
	}
	if opts.RestoreLastPath {
		if last, ok := lastPersistedPath(configDir); ok {
			startPath = last
		}
	}

	a, err := app.New(configDir, opts, startPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "vfm:", err)
		return vfmerr.ExitCode(err)
	}
	if err := a.Rescan(); err != nil {
		fmt.Fprintln(os.Stderr, "vfm:", err)
		return vfmerr.ExitCode(err)
	}

	switch {
	case len(cli.StatFiles) > 0:
		return runStat(cli.StatFiles, cli.StatFullMode)
	case cli.OpenFile != "":
		return runDispatch(a, "open", cli.OpenFile)
	case cli.PreviewFile != "":
		return runDispatch(a, "preview", cli.PreviewFile)
	case cli.ListAndQuit:
		return runListAndQuit(a)
	}

	defer a.Shutdown()

	if !tui.IsInteractive() {
		return runListAndQuit(a)
	}

	if err := a.EnableWatcher(); err != nil {
		vfmlog.Warnf("watcher: %v", err)
	}

	return runInteractive(a)
}

func lastPersistedPath(configDir string) (string, bool) {
	return workspace.LastPersistedPath(filepath.Join(configDir, "dirhist.clifm"))
}

func runStat(paths []string, full bool) int {
	code := 0
	for _, p := range paths {
		line, err := app.Stat(p, full)
		if err != nil {
			fmt.Fprintln(os.Stderr, "vfm:", err)
			code = vfmerr.ExitCode(err)
			continue
		}
		fmt.Print(line)
	}
	return code
}

func runDispatch(a *app.App, verb, path string) int {
	code, err := a.Dispatcher.Dispatch(context.Background(), pipeline.Rewritten{Args: []string{verb, path}})
	if err != nil {
		fmt.Fprintln(os.Stderr, "vfm:", err)
	}
	return code
}

// runListAndQuit prints the current listing once and exits, the
// non-interactive mode used for piped output and --list-and-quit.
func runListAndQuit(a *app.App) int {
	if a.Listing == nil {
		return 0
	}
	for _, e := range a.Listing.Entries {
		fmt.Println(e.Name)
	}
	return 0
}

// runInteractive hands control to the full-screen REPL (component J).
// The tcell event loop itself lives in internal/tui; this is the glue
// that feeds it the app's live state and processes the rewritten
// command lines it returns.
func runInteractive(a *app.App) int {
	screen, err := tui.Open()
	if err != nil {
		fmt.Fprintln(os.Stderr, "vfm:", err)
		return 1
	}
	defer screen.Close()

	repl := tui.NewRepl(screen, tui.DefaultKeybinds(), a.History.All)
	ctx := context.Background()

	// The fsnotify watcher and the shared-selbox watch both post into
	// a.Events from background goroutines; drain them here and wake
	// the blocked PollEvent so a stale listing or selection is
	// refreshed before the next prompt redraw instead of only on the
	// user's next keystroke (§1, §4.F).
	go func() {
		for {
			a.Events.Wait(func(events *app.Events) {
				_, stale := (*events)[app.EvtListingStale]
				_, selChanged := (*events)[app.EvtSelectionChanged]
				events.Clear()
				if stale {
					if err := a.Rescan(); err != nil {
						vfmlog.Warnf("rescan: %v", err)
					}
				}
				if selChanged {
					if err := a.Selection.Load(); err != nil {
						vfmlog.Warnf("reload selbox: %v", err)
					}
				}
			})
			screen.PostWake()
		}
	}()
	repl.OnInterrupt = func() { vfmlog.Debugf("redraw: woken by background event") }

	// A watcher event may already be pending from the EnableWatcher
	// call in main before this loop started polling.
	if a.Events.Peek(app.EvtListingStale) {
		if err := a.Rescan(); err != nil {
			vfmlog.Warnf("rescan: %v", err)
		}
	}

	for {
		line, ok := repl.ReadLine(fmt.Sprintf("[%s]> ", a.Workspaces.Current().Path))
		if !ok {
			return 0
		}
		if line == "" {
			continue
		}
		if a.History.ShouldRecord(line) {
			a.History.Append(line, time.Now().Unix())
		}

		toks, err := pipeline.Tokenize(line)
		if err != nil {
			vfmlog.Errorf("tokenize: %v", err)
			continue
		}

		if toks.Verbatim != "" {
			if _, err := a.Dispatcher.DispatchVerbatim(ctx, toks.Verbatim, toks.Background); err != nil {
				vfmlog.Errorf("%v", err)
			}
			continue
		}

		rw, err := pipeline.Rewrite(toks.Tokens, &pipeline.Context{
			Listing:   a.Listing,
			Selection: a.Selection,
			ResolveBookmark: func(name string) (string, bool) {
				bm, ok := a.Bookmarks.Get(name)
				if !ok {
					return "", false
				}
				return bm.Path, true
			},
			Tags:         a.Tags,
			WorkspaceCWD: func() string { return a.Workspaces.Current().Path },
			CWD:          a.Workspaces.Current().Path,
			EnvExpand:    a.Opts.EnvExpansion,
		}, a.Aliases, a.History, a.Opts)
		if err != nil {
			vfmlog.Errorf("rewrite: %v", err)
			continue
		}
		rw.Background = toks.Background || rw.Background

		code, err := a.Dispatcher.Dispatch(ctx, rw)
		if err != nil {
			vfmlog.Errorf("%v", err)
			if code == 127 {
				continue
			}
		}
	}
}
