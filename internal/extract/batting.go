package extract

import (
	"database/sql"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/fortuna/gully/internal/store"
)

// sectionPatterns match header, separator and summary rows that carry no
// player statistics. A row whose first non-empty cell matches any of these is
// rejected before name detection runs.
var sectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^bowling$`),
	regexp.MustCompile(`^batting$`),
	regexp.MustCompile(`^extras\b`),
	regexp.MustCompile(`^total\b`),
	regexp.MustCompile(`^did\s+not\s+bat\b`),
	regexp.MustCompile(`\binnings\b`),
	regexp.MustCompile(`\bleague\b`),
	regexp.MustCompile(`\bfall\s+of\s+wickets\b`),
	regexp.MustCompile(`\bpartnership\b`),
	regexp.MustCompile(`^[or]$`),
	regexp.MustCompile(`^\(.*\)$`),
}

var (
	runsBallsRE = regexp.MustCompile(`(\d+)\s*[\(\s]\s*(\d+)\s*\)?`)
	comboRE     = regexp.MustCompile(`^(\d+)\s*\((\d+)\)$`)
	punctOnlyRE = regexp.MustCompile(`^[\d\s\.\-\(\)\/:]+$`)
)

func isSectionLike(text string) bool {
	t := lowerNorm(text)
	for _, re := range sectionPatterns {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

// looksLikeName reports whether a cell plausibly holds a player name: it has
// at least one letter and is neither a section marker nor pure
// numeric/punctuation noise.
func looksLikeName(s string) bool {
	s2 := strings.TrimSpace(strings.ReplaceAll(s, "*", ""))
	if s2 == "" || isSectionLike(s2) || punctOnlyRE.MatchString(s2) {
		return false
	}
	return strings.IndexFunc(s2, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}) >= 0
}

func absent() sql.NullFloat64 { return sql.NullFloat64{} }

func present(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

// ParseBattingRow recovers one batting line from a raw scorecard row, or
// reports false when the row is noise or fails the plausibility bounds.
// Column positions are never trusted outright; each statistic falls through a
// chain of positional, pattern and harvesting heuristics.
func ParseBattingRow(cells []string, matchID string, dots map[string]DotBallCount, meta store.MatchMetadata, position int) (*store.BattingRecord, bool) {
	first := ""
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			first = c
			break
		}
	}
	if first == "" || isSectionLike(first) {
		return nil, false
	}

	nameIdx := -1
	for i, c := range cells {
		if looksLikeName(c) {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return nil, false
	}
	name, howOut := SplitDismissal(cells[nameIdx])
	switch strings.ToLower(name) {
	case "extras", "total":
		return nil, false
	}

	runs, balls, fours, sixes, sr := absent(), absent(), absent(), absent(), absent()

	// "41 (29)" anywhere in the row wins for runs and balls.
	if m := runsBallsRE.FindStringSubmatch(strings.Join(cells, " ")); m != nil {
		r, _ := parseFloat(m[1])
		b, _ := parseFloat(m[2])
		runs, balls = present(r), present(b)
	}

	tail := cells[nameIdx+1:]
	var ordered []float64
	for _, cell := range tail {
		token := normSpace(cell)
		if token == "" {
			continue
		}
		if isNumish(token) {
			if v, ok := parseFloat(token); ok {
				ordered = append(ordered, v)
			}
		} else if m := comboRE.FindStringSubmatch(token); m != nil {
			r, _ := parseFloat(m[1])
			b, _ := parseFloat(m[2])
			ordered = append(ordered, r, b)
		}
	}
	takeOrd := func(i int) sql.NullFloat64 {
		if i < len(ordered) {
			return present(ordered[i])
		}
		return absent()
	}

	if !runs.Valid {
		runs = takeOrd(0)
	}
	if !balls.Valid {
		balls = takeOrd(1)
	}
	if !fours.Valid {
		if v := takeOrd(2); v.Valid && v.Float64 <= 36 {
			fours = v
		}
	}
	if !sixes.Valid {
		if v := takeOrd(3); v.Valid && v.Float64 <= 36 {
			sixes = v
		}
	}
	if !sr.Valid {
		sr = takeOrd(4)
	}

	// Integer harvesting when the positional pass came up empty.
	var ints []int
	for _, c := range cells {
		if isInt(c) {
			if v, ok := parseFloat(c); ok {
				ints = append(ints, int(v))
			}
		}
	}
	if !runs.Valid && len(ints) > 0 {
		max := ints[0]
		for _, v := range ints[1:] {
			if v > max {
				max = v
			}
		}
		runs = present(float64(max))
	}
	if !balls.Valid && len(ints) >= 2 {
		s := append([]int(nil), ints...)
		sort.Ints(s)
		balls = present(float64(s[len(s)-2]))
	}
	var small []int
	for _, v := range ints {
		if v <= 6 {
			small = append(small, v)
		}
	}
	if !fours.Valid && len(small) > 0 {
		fours = present(float64(small[0]))
	}
	if !sixes.Valid && len(small) >= 2 {
		sixes = present(float64(small[1]))
	}

	if !sr.Valid {
		for _, c := range cells {
			if v, ok := parseFloat(c); ok && v >= 20 && v <= 400 {
				sr = present(v)
				break
			}
		}
	}

	// A boundary count implying more runs than scored is a misread column.
	if runs.Valid {
		if sixes.Valid && sixes.Float64*6 > runs.Float64 {
			sixes = present(math.Max(0, math.Floor(runs.Float64/6)))
		}
		if runs.Float64 == 0 {
			if fours.Valid {
				fours = present(0)
			}
			if sixes.Valid {
				sixes = present(0)
			}
		}
	}

	if !PlausibleBatting(runs, balls, sr, fours, sixes) {
		return nil, false
	}

	rec := &store.BattingRecord{
		Name:            name,
		Runs:            runs,
		Balls:           balls,
		Fours:           fours,
		Sixes:           sixes,
		StrikeRate:      sr,
		Dismissal:       howOut,
		MatchID:         matchID,
		BattingPosition: position,
		Meta:            meta,
	}
	if dc, ok := lookupDots(dots, name); ok && dc.Balls > 0 {
		rec.DotBalls = sql.NullInt32{Int32: int32(dc.Dots), Valid: true}
		rec.TrackedBalls = sql.NullInt32{Int32: int32(dc.Balls), Valid: true}
		rec.DotPct = present(math.Round(float64(dc.Dots)/float64(dc.Balls)*1000) / 10)
	}
	for _, v := range []sql.NullFloat64{runs, balls, fours, sixes, sr} {
		if v.Valid {
			rec.Quality++
		}
	}
	return rec, true
}

// lookupDots resolves a batter against the ball-by-ball tally, loosening from
// exact match to case-insensitive to first-name matching, since commentary
// often shortens "Sandeep Parmar" to "Sandeep". Candidates are scanned in
// sorted key order so ties resolve the same way every run.
func lookupDots(dots map[string]DotBallCount, name string) (DotBallCount, bool) {
	if len(dots) == 0 {
		return DotBallCount{}, false
	}
	if dc, ok := dots[name]; ok {
		return dc, true
	}
	keys := make([]string, 0, len(dots))
	for k := range dots {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	nameLower := strings.ToLower(name)
	for _, k := range keys {
		if strings.ToLower(k) == nameLower {
			return dots[k], true
		}
	}

	parts := strings.Fields(name)
	if len(parts) == 0 {
		return DotBallCount{}, false
	}
	firstName := strings.ToLower(parts[0])
	for _, k := range keys {
		kLower := strings.ToLower(k)
		kParts := strings.Fields(k)
		if len(kParts) > 0 && strings.ToLower(kParts[0]) == firstName {
			return dots[k], true
		}
		if strings.HasPrefix(firstName, kLower) || strings.HasPrefix(kLower, firstName) {
			if len(kLower) >= 3 && len(firstName) >= 3 {
				return dots[k], true
			}
		}
	}
	return DotBallCount{}, false
}
