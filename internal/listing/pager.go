package listing

// PagerAction is the small key protocol from §4.E step 5.
type PagerAction int

const (
	PagerAdvanceLine PagerAction = iota
	PagerAdvancePage
	PagerAbort
	PagerRedraw
)

// DecodePagerKey maps a key name to a PagerAction. Enter/Space/Down
// advance one line; PgDn advances one page; q/c abort; anything else
// redraws the current line.
func DecodePagerKey(key string) PagerAction {
	switch key {
	case "Enter", "Space", "Down":
		return PagerAdvanceLine
	case "PgDn":
		return PagerAdvancePage
	case "q", "c":
		return PagerAbort
	default:
		return PagerRedraw
	}
}
