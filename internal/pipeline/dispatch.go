package pipeline

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/go-vfm/vfm/internal/vfmerr"
)

// Handler is an internal command: it receives the full rewritten
// argv (args[0] is the command name itself) and returns an exit code
// and error.
type Handler func(ctx context.Context, args []string) (int, error)

// Dispatcher is the ordered table of internal commands matched
// against the first rewritten token (§4.I "Dispatch").
type Dispatcher struct {
	handlers map[string]Handler
	// EnvCarry holds extra KEY=VALUE pairs added to the environment of
	// external children. NewDispatcher leaves it empty and nothing in
	// the program fills it, so CLIFM, CLIFM_SELFILE and CLIFM_PROFILE
	// are not exported to external commands; plugins get CLIFM_BUS from
	// RunPlugin itself.
	EnvCarry map[string]string
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler), EnvCarry: make(map[string]string)}
}

func (d *Dispatcher) Register(name string, h Handler) {
	d.handlers[name] = h
}

// Dispatch runs a rewritten line: an internal command if the first
// token matches the table, otherwise a spawn via the system shell
// (the teacher's own exec idiom, src/reader.go's
// exec.Command("sh", "-c", ...)). Background execution is requested
// by a trailing "&" on the original line.
func (d *Dispatcher) Dispatch(ctx context.Context, rw Rewritten) (int, error) {
	if len(rw.Args) == 0 {
		return 0, nil
	}
	if h, ok := d.handlers[rw.Args[0]]; ok {
		return h(ctx, rw.Args)
	}
	return d.runExternal(ctx, rw)
}

// DispatchVerbatim runs line through the system shell untouched,
// skipping both the rewriting passes and the internal command table —
// the leading ";"/":" shell-passthrough escape hatch (§4.I
// Tokenization, tokenize.go's Line.Verbatim).
func (d *Dispatcher) DispatchVerbatim(ctx context.Context, line string, background bool) (int, error) {
	return d.runExternal(ctx, Rewritten{Args: []string{line}, Background: background})
}

func (d *Dispatcher) runExternal(ctx context.Context, rw Rewritten) (int, error) {
	line := strings.Join(rw.Args, " ")
	cmd := exec.CommandContext(ctx, "sh", "-c", line)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	for k, v := range d.EnvCarry {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	cmd.Env = append(os.Environ(), cmd.Env...)

	if rw.Background {
		if err := cmd.Start(); err != nil {
			return 1, vfmerr.New(vfmerr.Fatal, "", err)
		}
		go cmd.Wait()
		return 0, nil
	}

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), vfmerr.New(vfmerr.Fatal, "", err)
		}
		return 1, vfmerr.New(vfmerr.Fatal, "", err)
	}
	return 0, nil
}
