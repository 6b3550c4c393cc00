// Package config is component B: the process-wide options set,
// per-workspace overrides, and autocommand matching. The CLI and
// clifmrc parsers are hand-rolled, token by token, in the same style
// as fzf's src/options.go rather than built on a flags library —
// see DESIGN.md for why that is the one ambient concern kept on the
// standard library.
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-vfm/vfm/internal/vfmerr"
)

// SortMethod enumerates the comparators §4.E step 3 names.
type SortMethod int

const (
	SortNone SortMethod = iota
	SortName
	SortSize
	SortAtime
	SortBtime
	SortCtime
	SortMtime
	SortVersion
	SortExtension
	SortInode
	SortOwner
	SortGroup
)

var sortNames = map[string]SortMethod{
	"none": SortNone, "name": SortName, "size": SortSize,
	"atime": SortAtime, "btime": SortBtime, "ctime": SortCtime,
	"mtime": SortMtime, "version": SortVersion, "extension": SortExtension,
	"inode": SortInode, "owner": SortOwner, "group": SortGroup,
}

// ParseSortMethod accepts either a name ("size") or a numeric code
// ("2"), matching the CLI's "-z METHOD" option (§6).
func ParseSortMethod(s string) (SortMethod, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		if n >= int(SortNone) && n <= int(SortGroup) {
			return SortMethod(n), true
		}
		return SortNone, false
	}
	m, ok := sortNames[strings.ToLower(s)]
	return m, ok
}

// Options is the process-wide options set (component B). Every field
// here corresponds to a CLI flag or clifmrc key named in §6.
type Options struct {
	ShowHidden      bool
	LongView        bool
	LightMode       bool
	DirsFirst       bool
	CaseSensitive   bool
	StartPath       string
	Profile         string
	InitialWS       int
	BookmarksFile   string
	ConfigFile      string
	KeybindingsFile string
	ConfigDir       string
	TrashDir        string
	Stealth         bool
	Splash          bool
	DiskUsageMode   bool
	Pager           bool
	HideELN         bool
	AutoLS          bool
	AutoCD          bool
	NoExternal      bool
	Sort            SortMethod
	SortReverse     bool

	ColorScheme        string
	MaxFiles           int
	MaxPath            int
	FullDirSize        bool
	OnlyDirs           bool
	TrashAsRM          bool
	SecureEnv          bool
	SecureEnvFull      bool
	SecureCmds         bool
	CDOnQuit           bool
	Icons              bool
	FuzzyMatching      bool
	ShotgunFile        string
	VirtualDir         string
	VirtualDirFullPath bool

	ShareSelbox     bool
	RestoreLastPath bool
	HistIgnore      string
	MinJumpRank     int
	JumpRankCeiling int
	CwdInTitle      bool
	GlobNegation    bool
	TildeExpansion  bool
	EnvExpansion    bool

	PluginsDir string
}

// Default returns the built-in option set before any CLI flag or
// clifmrc key has been applied.
func Default() *Options {
	return &Options{
		DirsFirst:       true,
		AutoLS:          true,
		Pager:           true,
		Sort:            SortVersion,
		CaseSensitive:   false,
		InitialWS:       0,
		MaxFiles:        -1,
		MaxPath:         -1,
		MinJumpRank:     -1,
		JumpRankCeiling: 3000,
		TildeExpansion:  true,
		EnvExpansion:    false,
		GlobNegation:    true,
		RestoreLastPath: true,
	}
}

// Clone deep-copies Options for a per-workspace override layer (§3
// "Workspace... optional per-workspace option overrides").
func (o *Options) Clone() *Options {
	c := *o
	return &c
}

// Autocommand rewrites options (sort, long-view, hidden, filter...)
// when entering a directory matching Pattern, grounded on
// original_source/src/keybinds.c's update_autocmd_opts and the
// autocmds_t table it mutates (helpers.h).
type Autocommand struct {
	Pattern string
	Apply   func(*Options)
}

// Matches reports whether dir matches the autocommand's glob pattern.
func (a Autocommand) Matches(dir string) bool {
	base := filepath.Base(dir)
	if ok, _ := filepath.Match(a.Pattern, base); ok {
		return true
	}
	ok, _ := filepath.Match(a.Pattern, dir)
	return ok
}

// ApplyAutocommands scans rules in order and applies every matching
// one on top of base, returning a fresh Options (the base is never
// mutated, so leaving the directory can restore it).
func ApplyAutocommands(base *Options, rules []Autocommand, dir string) *Options {
	opts := base.Clone()
	for _, r := range rules {
		if r.Matches(dir) {
			r.Apply(opts)
		}
	}
	return opts
}

// ParseRC reads a clifmrc-style "Key=Value" file with "#" comments,
// line by line. A malformed line is reported via vfmerr.ConfigLine and
// skipped rather than aborting the whole parse (§7 ConfigCorruption).
func ParseRC(path string, o *Options) ([]error, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, vfmerr.New(vfmerr.Filesystem, path, err)
	}
	defer f.Close()

	var warnings []error
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			warnings = append(warnings, vfmerr.ConfigLine(path, lineNo, errStr("missing '='")))
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if err := applyKey(o, key, val); err != nil {
			warnings = append(warnings, vfmerr.ConfigLine(path, lineNo, err))
		}
	}
	return warnings, nil
}

type errStr string

func (e errStr) Error() string { return string(e) }

func applyKey(o *Options, key, val string) error {
	b := func() (bool, error) { return parseBool(val) }
	switch key {
	case "ShowHiddenFiles":
		v, err := b()
		o.ShowHidden = v
		return err
	case "LongViewMode":
		v, err := b()
		o.LongView = v
		return err
	case "LightMode":
		v, err := b()
		o.LightMode = v
		return err
	case "ListDirsFirst":
		v, err := b()
		o.DirsFirst = v
		return err
	case "CaseSensitiveList":
		v, err := b()
		o.CaseSensitive = v
		return err
	case "Pager":
		v, err := b()
		o.Pager = v
		return err
	case "ShareSelbox":
		v, err := b()
		o.ShareSelbox = v
		return err
	case "Autocd":
		v, err := b()
		o.AutoCD = v
		return err
	case "RestoreLastPath":
		v, err := b()
		o.RestoreLastPath = v
		return err
	case "CwdOnTitleLine":
		v, err := b()
		o.CwdInTitle = v
		return err
	case "TrashAsRm":
		v, err := b()
		o.TrashAsRM = v
		return err
	case "Icons":
		v, err := b()
		o.Icons = v
		return err
	case "FuzzyMatching":
		v, err := b()
		o.FuzzyMatching = v
		return err
	case "HistIgnore":
		o.HistIgnore = val
		return nil
	case "MinJumpRank":
		n, err := strconv.Atoi(val)
		if err != nil {
			return errStr("invalid integer: " + val)
		}
		o.MinJumpRank = n
		return nil
	case "MaxJumpTotalRank":
		n, err := strconv.Atoi(val)
		if err != nil {
			return errStr("invalid integer: " + val)
		}
		o.JumpRankCeiling = n
		return nil
	case "SortMethod":
		m, ok := ParseSortMethod(val)
		if !ok {
			return errStr("unknown sort method: " + val)
		}
		o.Sort = m
		return nil
	case "MaxFilenameLen":
		n, err := strconv.Atoi(val)
		if err != nil {
			return errStr("invalid integer: " + val)
		}
		o.MaxPath = n
		return nil
	default:
		// Unknown keys are tolerated: forward compatibility with
		// clifmrc files carrying options outside the core's scope
		// (archiver/trash/mime/bleach knobs §1 "out of scope").
		return nil
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, errStr("invalid boolean: " + s)
	}
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
