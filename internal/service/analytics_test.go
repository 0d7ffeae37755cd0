package service

import (
	"database/sql"
	"testing"

	"github.com/fortuna/gully/internal/store"
)

func ns(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }

func metaRec(matchID, date, ground, toss, result string, playoff bool) store.BattingRecord {
	return store.BattingRecord{
		Name:    "Someone",
		MatchID: matchID,
		Meta: store.MatchMetadata{
			MatchDate:    ns(date),
			Ground:       ns(ground),
			TossDecision: ns(toss),
			MatchResult:  ns(result),
			IsPlayoff:    playoff,
		},
	}
}

func TestBuildTeamAnalytics(t *testing.T) {
	t.Parallel()

	batting := []store.BattingRecord{
		metaRec("1", "2025-09-01", "Eastside Oval", "batted", "Win", false),
		metaRec("1", "2025-09-01", "Eastside Oval", "batted", "Win", false), // same match, second record ignored
		metaRec("2", "2025-09-08", "Eastside Oval", "bowled", "Loss", false),
		metaRec("3", "2025-09-15", "Westpark", "batted", "Win", true),
		metaRec("4", "2025-09-22", "Westpark", "bowled", "Draw", false),
	}
	out := BuildTeamAnalytics(batting, "Strikers")
	if out.TeamName != "Strikers" {
		t.Fatalf("team got=%q", out.TeamName)
	}
	if out.OverallWinPct != 50.0 {
		t.Fatalf("overall want=50 got=%v", out.OverallWinPct)
	}
	east := out.WinRateByGround["Eastside Oval"]
	if east.Wins != 1 || east.Losses != 1 || east.Total != 2 || east.WinPct != 50.0 {
		t.Fatalf("eastside got=%+v", east)
	}
	batted := out.WinRateByToss["batted"]
	if batted.Wins != 2 || batted.Total != 2 || batted.WinPct != 100.0 {
		t.Fatalf("batted got=%+v", batted)
	}
	league := out.WinRateByMatchType["League"]
	if league.Total != 3 || league.Wins != 1 || league.Draws != 1 {
		t.Fatalf("league got=%+v", league)
	}
	playoff := out.WinRateByMatchType["Playoff"]
	if playoff.Total != 1 || playoff.WinPct != 100.0 {
		t.Fatalf("playoff got=%+v", playoff)
	}
}

func TestBuildTeamAnalytics_Empty(t *testing.T) {
	t.Parallel()

	out := BuildTeamAnalytics(nil, "Strikers")
	if out.OverallWinPct != 0 || len(out.WinRateByGround) != 0 {
		t.Fatalf("empty input must yield zero analytics: %+v", out)
	}
}

func TestBuildMatchResults_NewestFirst(t *testing.T) {
	t.Parallel()

	batting := []store.BattingRecord{
		metaRec("10", "2025-09-01", "Eastside Oval", "batted", "Win", false),
		metaRec("11", "2025-09-15", "Westpark", "bowled", "Loss", false),
		metaRec("12", "", "Westpark", "batted", "Win", false),
	}
	batting[2].Meta.MatchDate = sql.NullString{}

	out := BuildMatchResults(batting)
	if len(out) != 3 {
		t.Fatalf("results want=3 got=%d", len(out))
	}
	if out[0].MatchID != "11" || out[1].MatchID != "10" {
		t.Fatalf("order got=%q,%q", out[0].MatchID, out[1].MatchID)
	}
	// Undated matches sort last.
	if out[2].MatchID != "12" {
		t.Fatalf("undated match must be last, got=%q", out[2].MatchID)
	}
	if !out[0].Result.Valid || out[0].Result.String != "Loss" {
		t.Fatalf("result got=%+v", out[0].Result)
	}
}
