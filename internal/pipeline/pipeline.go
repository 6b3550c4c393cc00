package pipeline

import (
	"os"
	"path/filepath"

	"github.com/go-vfm/vfm/internal/config"
)

func osStat(cwd, name string) (os.FileInfo, error) {
	return os.Stat(filepath.Join(cwd, name))
}

// Rewritten is a command line after all nine rewriting passes.
type Rewritten struct {
	Args       []string
	Background bool
}

// Rewrite runs passes 1–9 of §4.I over tokens, given the live Context
// and the alias/history tables. Per token, keyword expansion is tried
// before range and ELN expansion (see below). A leading "\name" on the
// first token suppresses alias expansion for that invocation.
func Rewrite(tokens []string, ctx *Context, aliases *AliasTable, hist *History, opts *config.Options) (Rewritten, error) {
	// Pass 1: alias.
	fileExists := func(name string) bool {
		_, err := osStat(ctx.CWD, name)
		return err == nil
	}
	autocd := opts != nil && opts.AutoCD
	tokens = expandAlias(tokens, aliases, fileExists, autocd, map[string]bool{})

	// Pass 2: history reference, applied per-token (a reference may
	// itself expand to a multi-token line; only the first token is
	// typically a reference per §4.I, so further tokens pass through
	// ResolveReference which is a no-op for non-"!" tokens).
	for i, t := range tokens {
		resolved, err := hist.ResolveReference(t)
		if err != nil {
			return Rewritten{}, err
		}
		tokens[i] = resolved
	}

	var out []string
	for _, t := range tokens {
		// Pass 3: fused argument.
		if cmd, rest, ok := splitFused(t); ok {
			out = append(out, cmd, rest)
			continue
		}

		// Pass 6: keyword expansion (checked before ELN/range since
		// "sel"/"s:"/"b:"/"t:"/"w:" never look like bare integers or
		// ranges).
		if kw, matched, err := expandKeyword(t, ctx); matched {
			if err != nil {
				return Rewritten{}, err
			}
			out = append(out, kw...)
			continue
		}

		// Pass 5: range.
		if rng, ok := expandRange(t, ctx.Listing, ctx.CWD); ok {
			out = append(out, rng...)
			continue
		}

		// Pass 4: ELN.
		t = expandELN(t, ctx.Listing, ctx.CWD)

		// Pass 7: tilde/env.
		t = expandTildeEnv(t, ctx.EnvExpand)

		// Pass 8: glob.
		negationOn := opts == nil || opts.GlobNegation
		if glob, ok := expandGlob(t, ctx.CWD, negationOn); ok {
			out = append(out, glob...)
			continue
		}

		// Pass 9: regex fallback, only tried when glob yielded nothing
		// and the token still carries metacharacters suggesting a
		// pattern.
		if looksLikeRegex(t) {
			if rx, ok := expandRegex(t, ctx.CWD); ok {
				out = append(out, rx...)
				continue
			}
		}

		out = append(out, t)
	}

	return Rewritten{Args: out}, nil
}

func looksLikeRegex(s string) bool {
	for _, r := range s {
		switch r {
		case '^', '$', '.', '+', '(', ')', '|':
			return true
		}
	}
	return false
}
