package extract

import "database/sql"

// Plausibility bounds: fixed ranges a statistic must satisfy to be accepted
// as a real measurement rather than a parsing artifact. Absent values always
// pass; only present values are gated.
const (
	maxBattingRuns  = 200
	maxBattingBalls = 120
	minStrikeRate   = 10
	maxStrikeRate   = 400
	maxFours        = 30
	maxSixes        = 20

	maxBowlingOvers   = 10
	maxBowlingMaidens = 5
	maxBowlingDots    = 36
	maxBowlingRuns    = 120
	maxBowlingWickets = 10
	minEconomy        = 0.5
	maxEconomy        = 20
)

func within(v sql.NullFloat64, lo, hi float64) bool {
	return !v.Valid || (v.Float64 >= lo && v.Float64 <= hi)
}

// PlausibleBatting reports whether a candidate batting line fits the bounds.
func PlausibleBatting(runs, balls, sr, fours, sixes sql.NullFloat64) bool {
	return within(runs, 0, maxBattingRuns) &&
		within(balls, 0, maxBattingBalls) &&
		within(sr, minStrikeRate, maxStrikeRate) &&
		within(fours, 0, maxFours) &&
		within(sixes, 0, maxSixes)
}

// PlausibleBowling reports whether a candidate bowling line fits the bounds.
func PlausibleBowling(overs, maidens, dots, runs, wickets, econ sql.NullFloat64) bool {
	return within(overs, 0, maxBowlingOvers) &&
		within(maidens, 0, maxBowlingMaidens) &&
		within(dots, 0, maxBowlingDots) &&
		within(runs, 0, maxBowlingRuns) &&
		within(wickets, 0, maxBowlingWickets) &&
		within(econ, minEconomy, maxEconomy)
}
