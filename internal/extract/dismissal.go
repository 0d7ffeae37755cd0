package extract

import (
	"regexp"
	"strings"
)

// dismissalRE matches the first dismissal keyword anywhere in a cell. The
// single-letter forms ("c ", "b ") need the boundary/space alternates because
// CricClubs sometimes glues the dismissal onto the batter's name cell.
var dismissalRE = regexp.MustCompile(`(?i)\b(not out|c&b|c\b|c\s|b\b|b\s|lbw|st\b|st\s|run out|retired hurt|retired)`)

// Dismissal categories emitted by SimplifyDismissal.
const (
	DismissalCatch   = "catch"
	DismissalBowled  = "bowled"
	DismissalNotOut  = "not out"
	DismissalRunOut  = "run out"
	DismissalLBW     = "lbw"
	DismissalStumped = "stumped"
)

// ContainsDismissal reports whether any dismissal keyword appears in the
// text. Bowling extraction uses this to detect batting rows routed into a
// bowling table.
func ContainsDismissal(s string) bool {
	return dismissalRE.MatchString(s)
}

// SimplifyDismissal maps a raw dismissal phrase onto a canonical category.
// Unrecognized phrases are kept verbatim.
func SimplifyDismissal(how string) string {
	x := lowerNorm(how)
	switch {
	case strings.HasPrefix(x, "c"):
		return DismissalCatch
	case strings.HasPrefix(x, "b"):
		return DismissalBowled
	case strings.HasPrefix(x, "not out"):
		return DismissalNotOut
	case strings.Contains(x, "run out"):
		return DismissalRunOut
	case strings.Contains(x, "lbw"):
		return DismissalLBW
	case strings.HasPrefix(x, "st"):
		return DismissalStumped
	}
	return strings.TrimSpace(how)
}

// SplitDismissal splits a batter cell into (display name, dismissal
// category) at the first dismissal keyword, even when both share one cell.
// With no keyword present the whole cell is the name and the category is
// empty.
func SplitDismissal(text string) (string, string) {
	s := normSpace(text)
	loc := dismissalRE.FindStringIndex(s)
	if loc == nil {
		return titleClean(s), ""
	}
	name := strings.TrimSpace(s[:loc[0]])
	how := strings.TrimSpace(s[loc[0]:])
	return titleClean(name), SimplifyDismissal(how)
}
