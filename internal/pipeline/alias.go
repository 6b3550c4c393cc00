package pipeline

import "strings"

// AliasTable holds name -> expansion pairs registered with Set.
// Expansion is non-recursive: a name already on the expansion path is
// left untouched instead of looping.
type AliasTable struct {
	byName map[string][]string
}

func NewAliasTable() *AliasTable {
	return &AliasTable{byName: make(map[string][]string)}
}

func (a *AliasTable) Set(name string, expansion []string) {
	a.byName[name] = expansion
}

func (a *AliasTable) Get(name string) ([]string, bool) {
	exp, ok := a.byName[name]
	return exp, ok
}

// expandAlias implements rewriting pass 1 (§4.I). A leading "\name"
// suppresses expansion for this invocation only (the backslash is
// stripped and no further alias lookup happens). Otherwise, if the
// first token names an alias and is not the name of an existing file
// in cwd when autocd/auto-open would otherwise claim it, the alias
// body is spliced in place of the first token, once; the spliced body
// is not expanded again. seen guards against expansion cycles across
// nested calls.
func expandAlias(tokens []string, aliases *AliasTable, fileExists func(string) bool, autocdOn bool, seen map[string]bool) []string {
	if len(tokens) == 0 {
		return tokens
	}
	first := tokens[0]
	if strings.HasPrefix(first, "\\") {
		out := append([]string{first[1:]}, tokens[1:]...)
		return out
	}
	if seen[first] {
		return tokens
	}
	expansion, ok := aliases.Get(first)
	if !ok {
		return tokens
	}
	if autocdOn && fileExists(first) {
		return tokens
	}
	seen[first] = true
	return append(append([]string{}, expansion...), tokens[1:]...)
}
