package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	spaceRE    = regexp.MustCompile(`\s+`)
	nonAlnumRE = regexp.MustCompile(`[^a-z0-9]+`)
	numishRE   = regexp.MustCompile(`^\d+(\.\d+)?$`)
	intRE      = regexp.MustCompile(`^\d+$`)
)

// normSpace collapses runs of whitespace to single spaces and trims the ends.
func normSpace(s string) string {
	return strings.TrimSpace(spaceRE.ReplaceAllString(s, " "))
}

func lowerNorm(s string) string {
	return strings.ToLower(normSpace(s))
}

// titleClean normalizes a display name: strips the not-out asterisk,
// collapses whitespace and title-cases each word.
func titleClean(s string) string {
	s = normSpace(strings.ReplaceAll(s, "*", ""))
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return strings.TrimSpace(b.String())
}

// CanonicalKey builds the normalized comparison key used for roster and
// team-name matching: lower-cased with every non-alphanumeric run collapsed
// to a single space. Insensitive to punctuation and capitalization drift.
func CanonicalKey(s string) string {
	return strings.TrimSpace(nonAlnumRE.ReplaceAllString(lowerNorm(s), " "))
}

// isNumish reports whether the token is a plain unsigned integer or decimal.
func isNumish(s string) bool {
	return numishRE.MatchString(s)
}

func isInt(s string) bool {
	return intRE.MatchString(s)
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
