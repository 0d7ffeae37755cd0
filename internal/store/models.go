package store

import (
	"database/sql"
)

// MatchMetadata holds match-level fields parsed once per match and shared
// read-only by every record of that match.
type MatchMetadata struct {
	MatchDate     sql.NullString `json:"match_date,omitempty" db:"match_date"`
	MatchType     sql.NullString `json:"match_type,omitempty" db:"match_type"`
	IsPlayoff     bool           `json:"is_playoff" db:"is_playoff"`
	Series        sql.NullString `json:"series,omitempty" db:"series"`
	Ground        sql.NullString `json:"ground,omitempty" db:"ground"`
	TossWinner    sql.NullString `json:"toss_winner,omitempty" db:"toss_winner"`
	TossDecision  sql.NullString `json:"toss_decision,omitempty" db:"toss_decision"`
	PlayerOfMatch sql.NullString `json:"player_of_match,omitempty" db:"player_of_match"`
	MatchResult   sql.NullString `json:"match_result,omitempty" db:"match_result"`
	ResultMargin  sql.NullString `json:"result_margin,omitempty" db:"result_margin"`
	OpponentTeam  sql.NullString `json:"opponent_team,omitempty" db:"opponent_team"`
}

// BattingRecord is one accepted batting scorecard row. Absent statistics
// stay invalid rather than defaulting to zero; every valid numeric field has
// already passed the plausibility bounds.
type BattingRecord struct {
	Name            string          `json:"name" db:"name"`
	Runs            sql.NullFloat64 `json:"runs,omitempty" db:"runs"`
	Balls           sql.NullFloat64 `json:"balls,omitempty" db:"balls"`
	Fours           sql.NullFloat64 `json:"fours,omitempty" db:"fours"`
	Sixes           sql.NullFloat64 `json:"sixes,omitempty" db:"sixes"`
	StrikeRate      sql.NullFloat64 `json:"strike_rate,omitempty" db:"strike_rate"`
	Dismissal       string          `json:"dismissal" db:"dismissal"`
	MatchID         string          `json:"match_id" db:"match_id"`
	BattingPosition int             `json:"batting_position" db:"batting_position"`
	DotBalls        sql.NullInt32   `json:"dot_balls,omitempty" db:"dot_balls"`
	TrackedBalls    sql.NullInt32   `json:"tracked_balls,omitempty" db:"tracked_balls"`
	DotPct          sql.NullFloat64 `json:"dot_pct,omitempty" db:"dot_pct"`
	Meta            MatchMetadata   `json:"meta"`

	// Quality counts how many of the five core stats are present. It breaks
	// best-performance ties downstream and never affects acceptance.
	Quality int `json:"-" db:"-"`
}

// BowlingRecord is one accepted bowling scorecard row.
type BowlingRecord struct {
	Name    string          `json:"name" db:"name"`
	Overs   sql.NullFloat64 `json:"overs,omitempty" db:"overs"`
	Maidens sql.NullFloat64 `json:"maidens,omitempty" db:"maidens"`
	Dots    sql.NullFloat64 `json:"dots,omitempty" db:"dots"`
	Runs    sql.NullFloat64 `json:"runs,omitempty" db:"runs"`
	Wickets sql.NullFloat64 `json:"wickets,omitempty" db:"wickets"`
	Economy sql.NullFloat64 `json:"economy,omitempty" db:"economy"`
	Wides   int             `json:"wides" db:"wides"`
	NoBalls int             `json:"no_balls" db:"no_balls"`
	MatchID string          `json:"match_id" db:"match_id"`
	Meta    MatchMetadata   `json:"meta"`

	Quality int `json:"-" db:"-"`
}
