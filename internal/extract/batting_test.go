package extract

import (
	"testing"

	"github.com/fortuna/gully/internal/store"
)

func mustBat(t *testing.T, cells []string, dots map[string]DotBallCount) *store.BattingRecord {
	t.Helper()
	rec, ok := ParseBattingRow(cells, "1001", dots, store.MatchMetadata{}, 3)
	if !ok {
		t.Fatalf("row rejected: %v", cells)
	}
	return rec
}

func TestParseBattingRow_RunsBallsCombined(t *testing.T) {
	t.Parallel()

	rec := mustBat(t, []string{"Rohit Verma c Smith b Jones", "41 (29)", "5", "2", "141.38"}, nil)
	if rec.Name != "Rohit Verma" {
		t.Fatalf("name got=%q", rec.Name)
	}
	if !rec.Runs.Valid || rec.Runs.Float64 != 41 {
		t.Fatalf("runs got=%+v", rec.Runs)
	}
	if !rec.Balls.Valid || rec.Balls.Float64 != 29 {
		t.Fatalf("balls got=%+v", rec.Balls)
	}
	if rec.Dismissal != DismissalCatch {
		t.Fatalf("dismissal got=%q", rec.Dismissal)
	}
	if rec.BattingPosition != 3 {
		t.Fatalf("position got=%d", rec.BattingPosition)
	}
}

func TestParseBattingRow_PositionalColumns(t *testing.T) {
	t.Parallel()

	rec := mustBat(t, []string{"Anil Kumar", "not out", "38", "27", "4", "1", "140.74"}, nil)
	if rec.Runs.Float64 != 38 || rec.Balls.Float64 != 27 {
		t.Fatalf("runs/balls got=%v/%v", rec.Runs.Float64, rec.Balls.Float64)
	}
	if rec.Fours.Float64 != 4 || rec.Sixes.Float64 != 1 {
		t.Fatalf("fours/sixes got=%v/%v", rec.Fours.Float64, rec.Sixes.Float64)
	}
	if rec.StrikeRate.Float64 != 140.74 {
		t.Fatalf("sr got=%v", rec.StrikeRate.Float64)
	}
	if rec.Quality != 5 {
		t.Fatalf("quality want=5 got=%d", rec.Quality)
	}
}

func TestParseBattingRow_RejectsNoiseRows(t *testing.T) {
	t.Parallel()

	noise := [][]string{
		{"O"},
		{"R"},
		{"(B 0 Lb 4 Wd 3 Nb 1)"},
		{"Extras", "8"},
		{"Total", "156/7"},
		{"Did not bat: Sanjay, Dev"},
		{"Fall of Wickets", "1-23"},
		{"", "  "},
	}
	for _, cells := range noise {
		if _, ok := ParseBattingRow(cells, "1001", nil, store.MatchMetadata{}, 1); ok {
			t.Fatalf("noise row accepted: %v", cells)
		}
	}
}

func TestParseBattingRow_SixesClampAndZeroRuns(t *testing.T) {
	t.Parallel()

	// 6s column misread: 3 sixes imply 18 runs but only 10 were scored.
	rec := mustBat(t, []string{"Dev Patel", "10", "12", "1", "3", "83.33"}, nil)
	if rec.Sixes.Float64 != 1 {
		t.Fatalf("clamped sixes want=1 got=%v", rec.Sixes.Float64)
	}

	rec = mustBat(t, []string{"Sanjay Rao", "0", "4", "1", "1"}, nil)
	if rec.Fours.Float64 != 0 || rec.Sixes.Float64 != 0 {
		t.Fatalf("zero-run boundaries want 0/0 got=%v/%v", rec.Fours.Float64, rec.Sixes.Float64)
	}
}

func TestParseBattingRow_ImplausibleRejected(t *testing.T) {
	t.Parallel()

	if _, ok := ParseBattingRow([]string{"Ghost Row", "999", "12"}, "1001", nil, store.MatchMetadata{}, 1); ok {
		t.Fatalf("999 runs should fail plausibility")
	}
}

func TestParseBattingRow_DotBallEnrichment(t *testing.T) {
	t.Parallel()

	dots := map[string]DotBallCount{
		"Sandeep": {Balls: 20, Dots: 8},
	}
	rec := mustBat(t, []string{"Sandeep Parmar", "31", "20", "2", "1", "155.00"}, dots)
	if !rec.DotBalls.Valid || rec.DotBalls.Int32 != 8 {
		t.Fatalf("dot balls got=%+v", rec.DotBalls)
	}
	if !rec.TrackedBalls.Valid || rec.TrackedBalls.Int32 != 20 {
		t.Fatalf("tracked balls got=%+v", rec.TrackedBalls)
	}
	if !rec.DotPct.Valid || rec.DotPct.Float64 != 40.0 {
		t.Fatalf("dot pct want=40 got=%+v", rec.DotPct)
	}
}

func TestParseBattingRow_ZeroTrackedBallsNotSet(t *testing.T) {
	t.Parallel()

	dots := map[string]DotBallCount{"Sandeep Parmar": {Balls: 0, Dots: 0}}
	rec := mustBat(t, []string{"Sandeep Parmar", "31", "20"}, dots)
	if rec.DotBalls.Valid || rec.TrackedBalls.Valid || rec.DotPct.Valid {
		t.Fatalf("zero tracked balls must leave dot fields absent")
	}
}
