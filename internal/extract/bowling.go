package extract

import (
	"database/sql"
	"regexp"
	"strconv"
	"strings"

	"github.com/fortuna/gully/internal/store"
)

// Extras labels appear on either side of the count: "2wd" or "wd 2".
var (
	wideLeadRE    = regexp.MustCompile(`(?i)\b(?:wd|w)\s*(\d+)`)
	wideTrailRE   = regexp.MustCompile(`(?i)(\d+)\s*(?:wd|w)`)
	noBallLeadRE  = regexp.MustCompile(`(?i)\bnb\s*(\d+)`)
	noBallTrailRE = regexp.MustCompile(`(?i)(\d+)\s*nb`)
)

// ParseBowlingRow recovers one bowling line from a raw scorecard row. CricClubs
// sometimes routes batting rows into the bowling table, so any dismissal
// keyword anywhere in the row disqualifies it outright, and the cells after
// the name must be overwhelmingly numeric.
func ParseBowlingRow(cells []string, matchID string) (*store.BowlingRecord, bool) {
	joined := strings.Join(cells, " ")
	if ContainsDismissal(joined) {
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
	name := titleClean(cells[nameIdx])

	tail := cells[nameIdx+1:]
	if len(tail) == 0 {
		return nil, false
	}
	numish := 0
	for _, x := range tail {
		if isNumish(x) {
			numish++
		}
	}
	if float64(numish)/float64(len(tail)) < 0.8 {
		return nil, false
	}

	var nums []float64
	for _, x := range tail {
		if isNumish(x) {
			if v, ok := parseFloat(x); ok {
				nums = append(nums, v)
			}
		}
	}
	if len(nums) < 4 {
		return nil, false
	}

	var slots [6]sql.NullFloat64
	for i := 0; i < 6 && i < len(nums); i++ {
		slots[i] = present(nums[i])
	}

	applyShiftLeft(&slots, nums)
	overs, maidens, dots, runs, wickets, econ := slots[0], slots[1], slots[2], slots[3], slots[4], slots[5]

	// Economy printed past the first six columns.
	if (!econ.Valid || econ.Float64 < minEconomy) && len(nums) >= 6 {
		econ = present(nums[5])
	}

	if !PlausibleBowling(overs, maidens, dots, runs, wickets, econ) {
		return nil, false
	}

	var extras []string
	for _, x := range tail {
		if !isNumish(x) {
			extras = append(extras, x)
		}
	}
	extrasText := strings.Join(extras, " ")

	rec := &store.BowlingRecord{
		Name:    name,
		Overs:   overs,
		Maidens: maidens,
		Dots:    dots,
		Runs:    runs,
		Wickets: wickets,
		Economy: econ,
		Wides:   extractExtra(extrasText, wideLeadRE, wideTrailRE),
		NoBalls: extractExtra(extrasText, noBallLeadRE, noBallTrailRE),
		MatchID: matchID,
	}
	for _, v := range []sql.NullFloat64{overs, maidens, dots, runs, wickets, econ} {
		if v.Valid {
			rec.Quality++
		}
	}
	if rec.Quality < 4 {
		return nil, false
	}
	return rec, true
}

// applyShiftLeft repairs rows whose leading overs column was swallowed by the
// markup, leaving the remaining figures seated one column early relative to
// the values that follow. When the first slot is empty but the next four are
// filled, every statistic is pulled two places left, refilling the vacated
// tail from any numeric tokens past the sixth.
func applyShiftLeft(slots *[6]sql.NullFloat64, nums []float64) {
	if slots[0].Valid {
		return
	}
	for i := 1; i <= 4; i++ {
		if !slots[i].Valid {
			return
		}
	}
	at := func(j int) sql.NullFloat64 {
		if j < 6 {
			return slots[j]
		}
		if j < len(nums) {
			return present(nums[j])
		}
		return absent()
	}
	var out [6]sql.NullFloat64
	for i := range out {
		out[i] = at(i + 2)
	}
	*slots = out
}

// extractExtra pulls a labelled extras count ("2wd", "wd 2", "1nb") out of
// the non-numeric residue of the row. Missing labels mean zero.
func extractExtra(text string, patterns ...*regexp.Regexp) int {
	if text == "" {
		return 0
	}
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				return v
			}
		}
	}
	return 0
}
