package config

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CLIResult holds the one-shot modes and startup path parsed from
// argv, on top of the Options they also mutate.
type CLIResult struct {
	StartPath    string
	ListAndQuit  bool
	OpenFile     string
	PreviewFile  string
	StatFiles    []string
	StatFullMode bool
}

// ParseArgs parses argv (without argv[0]) the way fzf's
// src/options.go parses its own flags: a manual index-driven loop
// with a nextString closure per flag, rather than a generic flags
// package — every option in §6 is a case in the switch below.
func ParseArgs(args []string, o *Options) (*CLIResult, error) {
	res := &CLIResult{}

	var i int
	nextString := func(message string) (string, error) {
		if i+1 >= len(args) {
			return "", errors.New(message)
		}
		i++
		return args[i], nil
	}

	for ; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-a":
			o.ShowHidden = true
		case arg == "-A":
			o.ShowHidden = false
		case arg == "-l":
			o.LongView = true
		case arg == "-y":
			o.LightMode = true
		case arg == "-f":
			o.DirsFirst = true
		case arg == "-F":
			o.DirsFirst = false
		case arg == "-i":
			o.CaseSensitive = false
		case arg == "-I":
			o.CaseSensitive = true
		case arg == "-p":
			v, err := nextString("starting path required")
			if err != nil {
				return nil, err
			}
			o.StartPath = v
		case arg == "-P":
			v, err := nextString("profile name required")
			if err != nil {
				return nil, err
			}
			o.Profile = v
		case arg == "-w":
			v, err := nextString("workspace number required")
			if err != nil {
				return nil, err
			}
			n, convErr := strconv.Atoi(v)
			if convErr != nil || n < 0 || n > 7 {
				return nil, errors.Errorf("invalid workspace number: %s", v)
			}
			o.InitialWS = n
		case arg == "-b":
			v, err := nextString("bookmarks file required")
			if err != nil {
				return nil, err
			}
			o.BookmarksFile = v
		case arg == "-c":
			v, err := nextString("config file required")
			if err != nil {
				return nil, err
			}
			o.ConfigFile = v
		case arg == "-k":
			v, err := nextString("keybindings file required")
			if err != nil {
				return nil, err
			}
			o.KeybindingsFile = v
		case arg == "-D":
			v, err := nextString("config dir required")
			if err != nil {
				return nil, err
			}
			o.ConfigDir = v
		case arg == "-T":
			v, err := nextString("trash dir required")
			if err != nil {
				return nil, err
			}
			o.TrashDir = v
		case arg == "-S":
			o.Stealth = true
		case arg == "-s":
			o.Splash = true
		case arg == "-t":
			o.DiskUsageMode = true
		case arg == "-g":
			o.Pager = true
		case arg == "-G":
			o.Pager = false
		case arg == "-e":
			o.HideELN = true
		case arg == "-o":
			o.AutoLS = true
		case arg == "-O":
			o.AutoLS = false
		case arg == "-x":
			o.NoExternal = true
		case arg == "-z":
			v, err := nextString("sort method required")
			if err != nil {
				return nil, err
			}
			m, ok := ParseSortMethod(v)
			if !ok {
				return nil, errors.Errorf("unknown sort method: %s", v)
			}
			o.Sort = m
		case arg == "--list-and-quit":
			res.ListAndQuit = true
		case strings.HasPrefix(arg, "--open="):
			res.OpenFile = arg[len("--open="):]
		case strings.HasPrefix(arg, "--preview="):
			res.PreviewFile = arg[len("--preview="):]
		case arg == "--stat":
			res.StatFiles = append(res.StatFiles, collectRest(args, &i)...)
		case arg == "--stat-full":
			res.StatFullMode = true
			res.StatFiles = append(res.StatFiles, collectRest(args, &i)...)
		case strings.HasPrefix(arg, "--color-scheme="):
			o.ColorScheme = arg[len("--color-scheme="):]
		case strings.HasPrefix(arg, "--max-files="):
			n, err := strconv.Atoi(arg[len("--max-files="):])
			if err != nil {
				return nil, errors.Wrap(err, "--max-files")
			}
			o.MaxFiles = n
		case strings.HasPrefix(arg, "--max-path="):
			n, err := strconv.Atoi(arg[len("--max-path="):])
			if err != nil {
				return nil, errors.Wrap(err, "--max-path")
			}
			o.MaxPath = n
		case arg == "--full-dir-size":
			o.FullDirSize = true
		case arg == "--only-dirs":
			o.OnlyDirs = true
		case arg == "--trash-as-rm":
			o.TrashAsRM = true
		case arg == "--secure-env":
			o.SecureEnv = true
		case arg == "--secure-env-full":
			o.SecureEnv, o.SecureEnvFull = true, true
		case arg == "--secure-cmds":
			o.SecureCmds = true
		case arg == "--cd-on-quit":
			o.CDOnQuit = true
		case arg == "--icons":
			o.Icons = true
		case arg == "--fuzzy-matching":
			o.FuzzyMatching = true
		case strings.HasPrefix(arg, "--shotgun-file="):
			o.ShotgunFile = arg[len("--shotgun-file="):]
		case strings.HasPrefix(arg, "--virtual-dir="):
			o.VirtualDir = arg[len("--virtual-dir="):]
		case arg == "--virtual-dir-full-paths":
			o.VirtualDirFullPath = true
		case strings.HasPrefix(arg, "-"):
			// Unrecognized option: parsing stops here and the error
			// is returned to the caller.
			return res, errors.Errorf("unrecognized option: %s", arg)
		default:
			o.StartPath = arg
		}
	}

	if res.StartPath == "" {
		res.StartPath = o.StartPath
	}
	return res, nil
}

func collectRest(args []string, i *int) []string {
	var out []string
	for *i+1 < len(args) && !strings.HasPrefix(args[*i+1], "-") {
		*i++
		out = append(out, args[*i])
	}
	return out
}
