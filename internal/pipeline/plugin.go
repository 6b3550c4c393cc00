package pipeline

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/go-vfm/vfm/internal/vfmerr"
)

// PluginResult is what a plugin invocation resolved to: either a file
// it wants the parent to open, or a command line for the parent to
// execute next.
type PluginResult struct {
	OpenFile string
	RunLine  string
}

// busRead is the outcome of the background read-end goroutine:
// either a line the plugin wrote, or nothing.
type busRead struct {
	line string
	ok   bool
}

// RunPlugin implements §6's plugin protocol: create a unique FIFO in
// tmpDir, export its path as CLIFM_BUS, run the plugin in the
// foreground, then read (at most) one line from the FIFO. If that
// line names an existing file the parent is to open it; otherwise it
// is a command line to execute. The FIFO is unlinked after read
// regardless of outcome.
//
// The read end is opened in a goroutine BEFORE the child starts,
// matching original_source/src/actions.c's run_action: there the
// parent's open(O_RDONLY) races the forked child's open(O_WRONLY) so
// neither blocks waiting for a peer. Opening the read end only after
// the child exits (as the first translation of this function did)
// deadlocks any plugin that actually writes to $CLIFM_BUS, since its
// open-for-write then has no reader to pair with.
func RunPlugin(ctx context.Context, path string, args []string, tmpDir string, env map[string]string) (PluginResult, error) {
	fifoPath := filepath.Join(tmpDir, "clifm-bus-"+uuid.NewString())
	if err := syscall.Mkfifo(fifoPath, 0o600); err != nil {
		return PluginResult{}, vfmerr.New(vfmerr.Fatal, fifoPath, err)
	}
	defer os.Remove(fifoPath)

	busCh := make(chan busRead, 1)
	go func() {
		f, err := os.OpenFile(fifoPath, os.O_RDONLY, 0)
		if err != nil {
			busCh <- busRead{}
			return
		}
		defer f.Close()
		scanner := bufio.NewScanner(f)
		if scanner.Scan() {
			busCh <- busRead{line: scanner.Text(), ok: true}
			return
		}
		busCh <- busRead{}
	}()

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	cmd.Env = append(cmd.Env, "CLIFM_BUS="+fifoPath)

	runErr := cmd.Run()
	if runErr != nil {
		return PluginResult{}, vfmerr.New(vfmerr.Fatal, path, runErr)
	}

	// The plugin already exited; give the reader goroutine a short
	// grace period to drain whatever it wrote, then give up. A plugin
	// that never touches the bus leaves that goroutine parked in
	// open() forever (no writer will ever arrive to pair with it) —
	// harmless since it blocks only that one goroutine, not this call.
	var res busRead
	select {
	case res = <-busCh:
	case <-time.After(200 * time.Millisecond):
	}
	if !res.ok || res.line == "" {
		return PluginResult{}, nil
	}
	if info, err := os.Stat(res.line); err == nil && !info.IsDir() {
		return PluginResult{OpenFile: res.line}, nil
	}
	return PluginResult{RunLine: res.line}, nil
}
