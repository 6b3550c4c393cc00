// Package vfmerr defines the error taxonomy shared by every command
// handler in the pipeline: UserInput, Filesystem, NotFound, Permission,
// ConfigCorruption and Fatal.
package vfmerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an error the way the command pipeline needs to: to
// pick an exit code and an exit-indicator color.
type Kind int

const (
	UserInput Kind = iota
	Filesystem
	NotFound
	Permission
	ConfigCorruption
	Fatal
)

func (k Kind) String() string {
	switch k {
	case UserInput:
		return "user-input"
	case Filesystem:
		return "filesystem"
	case NotFound:
		return "not-found"
	case Permission:
		return "permission"
	case ConfigCorruption:
		return "config-corruption"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with a Kind and, optionally, the
// path it concerns.
type Error struct {
	Kind Kind
	Path string
	Line int // 1-based, for ConfigCorruption; 0 if not applicable
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with a Kind and a contextual message, in the style of
// pkg/errors.Wrap used throughout the pipeline.
func New(kind Kind, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Path: path, Err: errors.WithStack(err)}
}

// Wrap annotates err with a message and a Kind.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: errors.Wrap(err, msg)}
}

// ConfigLine builds a ConfigCorruption error carrying the offending
// line number so the parser can report it and skip ahead.
func ConfigLine(path string, line int, err error) error {
	return &Error{Kind: ConfigCorruption, Path: path, Line: line, Err: err}
}

// KindOf extracts the Kind from err, defaulting to Fatal for errors
// that never went through New/Wrap (programmer mistakes should fail
// loud).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Fatal
}

// ExitCode maps a Kind to the process exit status used for one-shot
// modes (--stat, --open, --preview, --list-and-quit).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case UserInput:
		return 1
	case NotFound:
		return 2
	case Permission:
		return 1
	case Fatal:
		return 1
	default:
		return 1
	}
}

var (
	// ErrNotFound is a sentinel usable with errors.Is for generic
	// "no such alias/bookmark/tag/profile/color-scheme" lookups.
	ErrNotFound = errors.New("not found")
)
