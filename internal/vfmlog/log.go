// Package vfmlog is the process-wide diagnostic sink. The terminal is
// owned by the prompt/pager/plugin in turn (see the concurrency
// model's "shared-resource policy"), so this package never writes to
// stdout or stderr: it appends leveled lines to a file under the
// config directory.
package vfmlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/pkg/errors"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "?"
	}
}

// Logger is a minimal leveled logger around the standard library's
// log.Logger, swappable per process the way the teacher swaps its
// color/message sinks.
type Logger struct {
	mu  sync.Mutex
	out *log.Logger
	min Level
}

var std = New(io.Discard, Info)

// New creates a Logger writing to w, dropping messages below min.
func New(w io.Writer, min Level) *Logger {
	return &Logger{out: log.New(w, "", log.LstdFlags), min: min}
}

// Open points the global logger at path, creating the config
// directory's vfm.log. Stealth mode (-S) should skip calling Open so
// that no disk writes occur.
func Open(path string, min Level) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, errors.Wrapf(err, "opening log file %s", path)
	}
	l := New(f, min)
	std = l
	return l, nil
}

// SetDefault installs l as the package-level logger used by the
// package-level helper functions below.
func SetDefault(l *Logger) { std = l }

func (l *Logger) log(level Level, format string, args ...any) {
	if level < l.min {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...any) { l.log(Debug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.log(Info, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(Warn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.log(Error, format, args...) }

func Debugf(format string, args ...any) { std.Debugf(format, args...) }
func Infof(format string, args ...any)  { std.Infof(format, args...) }
func Warnf(format string, args ...any)  { std.Warnf(format, args...) }
func Errorf(format string, args ...any) { std.Errorf(format, args...) }
