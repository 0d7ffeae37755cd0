package extract

import "testing"

func TestParseDate_MonthFirstPriority(t *testing.T) {
	t.Parallel()

	got, ok := ParseDate("10/18/2025")
	if !ok || got != "2025-10-18" {
		t.Fatalf("want 2025-10-18 got=%q ok=%v", got, ok)
	}
	// Month slot over 12 only fits day-first layouts.
	got, ok = ParseDate("18/10/2025")
	if !ok || got != "2025-10-18" {
		t.Fatalf("want 2025-10-18 got=%q ok=%v", got, ok)
	}
	got, ok = ParseDate("Oct 18 2025")
	if !ok || got != "2025-10-18" {
		t.Fatalf("want 2025-10-18 got=%q ok=%v", got, ok)
	}
}

func TestParseDate_ISOSwap(t *testing.T) {
	t.Parallel()

	got, ok := ParseDate("2025-10-18")
	if !ok || got != "2025-10-18" {
		t.Fatalf("plain iso got=%q ok=%v", got, ok)
	}
	// A middle component over 12 can only be the day.
	got, ok = ParseDate("2025-18-10")
	if !ok || got != "2025-10-18" {
		t.Fatalf("swapped iso got=%q ok=%v", got, ok)
	}
	// Ambiguous both-under-12 stays year-month-day.
	got, ok = ParseDate("2025-03-04")
	if !ok || got != "2025-03-04" {
		t.Fatalf("ambiguous iso got=%q ok=%v", got, ok)
	}
	if _, ok := ParseDate("2025-18-18"); ok {
		t.Fatalf("impossible iso must fail")
	}
	if _, ok := ParseDate("not a date"); ok {
		t.Fatalf("garbage must fail")
	}
}

const tossInfoHTML = `<table>
	<tr><th>Toss:</th><th>Riders won the toss and <b>elected to bat</b></th></tr>
	<tr><th>Ground:</th><th>Eastside Oval</th></tr>
	<tr><th>Player of the Match:</th><th><a href="/p/9">vikram patel</a></th></tr>
</table>`

func TestParseMetadata_TossInversion(t *testing.T) {
	t.Parallel()

	meta := ParseMetadata("<html></html>", tossInfoHTML, "Strikers")
	if !meta.TossWinner.Valid || meta.TossWinner.String != "Riders" {
		t.Fatalf("toss winner got=%+v", meta.TossWinner)
	}
	// Opponent elected to bat, so our side bowled.
	if !meta.TossDecision.Valid || meta.TossDecision.String != "bowled" {
		t.Fatalf("toss decision want=bowled got=%+v", meta.TossDecision)
	}
	if !meta.Ground.Valid || meta.Ground.String != "Eastside Oval" {
		t.Fatalf("ground got=%+v", meta.Ground)
	}
	if !meta.PlayerOfMatch.Valid || meta.PlayerOfMatch.String != "Vikram Patel" {
		t.Fatalf("player of match got=%+v", meta.PlayerOfMatch)
	}
}

func TestParseMetadata_TossKeptWhenOurWin(t *testing.T) {
	t.Parallel()

	info := `<table><tr><th>Toss:</th><th>Strikers won the toss and elected to bat</th></tr></table>`
	meta := ParseMetadata("<html></html>", info, "Strikers")
	if !meta.TossDecision.Valid || meta.TossDecision.String != "batted" {
		t.Fatalf("toss decision want=batted got=%+v", meta.TossDecision)
	}
}

func TestParseMetadata_LabeledDateAndPlayoff(t *testing.T) {
	t.Parallel()

	full := `<table><tr><td>Date</td><td>10/18/2025</td></tr>
	<tr><td>Match Type</td><td>Semi Final</td></tr></table>`
	meta := ParseMetadata(full, "", "Strikers")
	if !meta.MatchDate.Valid || meta.MatchDate.String != "2025-10-18" {
		t.Fatalf("date got=%+v", meta.MatchDate)
	}
	if !meta.MatchType.Valid || meta.MatchType.String != "Semi Final" {
		t.Fatalf("match type got=%+v", meta.MatchType)
	}
	if !meta.IsPlayoff {
		t.Fatalf("semi final must flag playoff")
	}
}

func TestParseResult_WinWithMargin(t *testing.T) {
	t.Parallel()

	full := `<div>Strikers won by 15 runs</div>`
	tables := `<table><tr><th>Riders Innings (18 overs maximum)</th></tr></table>
	<table><tr><th>Strikers Innings</th></tr></table>`
	result, margin, opponent := ParseResult(full, "Strikers", tables, "")
	if !result.Valid || result.String != "Win" {
		t.Fatalf("result got=%+v", result)
	}
	if !margin.Valid || margin.String != "15 runs" {
		t.Fatalf("margin got=%+v", margin)
	}
	if !opponent.Valid || opponent.String != "Riders" {
		t.Fatalf("opponent got=%+v", opponent)
	}
}

func TestParseResult_LossOpponentFromResultText(t *testing.T) {
	t.Parallel()

	full := `<div>Riders won by 5 wickets</div>`
	result, margin, opponent := ParseResult(full, "Strikers", "", "")
	if !result.Valid || result.String != "Loss" {
		t.Fatalf("result got=%+v", result)
	}
	if !margin.Valid || margin.String != "5 wickets" {
		t.Fatalf("margin got=%+v", margin)
	}
	if !opponent.Valid || opponent.String != "Riders" {
		t.Fatalf("opponent got=%+v", opponent)
	}
}

func TestParseResult_OpponentPrefersTableHeaders(t *testing.T) {
	t.Parallel()

	// Result text names a stale opponent; the scorecard tables say otherwise
	// and win.
	full := `<div>Chargers won by 8 wickets</div>`
	tables := `<table><tr><th>Mavericks Innings</th></tr></table>
	<table><tr><th>Strikers Innings</th></tr></table>`
	result, _, opponent := ParseResult(full, "Strikers", tables, "")
	if !result.Valid || result.String != "Loss" {
		t.Fatalf("result got=%+v", result)
	}
	if !opponent.Valid || opponent.String != "Mavericks" {
		t.Fatalf("opponent want=Mavericks got=%+v", opponent)
	}
}

func TestParseResult_Draw(t *testing.T) {
	t.Parallel()

	result, margin, opponent := ParseResult(`<div>Match tied</div>`, "Strikers", "", "")
	if !result.Valid || result.String != "Draw" {
		t.Fatalf("result got=%+v", result)
	}
	if margin.Valid || opponent.Valid {
		t.Fatalf("draw must leave margin and opponent unset")
	}
}

func TestParseResult_NoResultText(t *testing.T) {
	t.Parallel()

	result, margin, opponent := ParseResult(`<div>scorecard</div>`, "Strikers", "", "")
	if result.Valid || margin.Valid || opponent.Valid {
		t.Fatalf("no result text must yield all absent")
	}
}
