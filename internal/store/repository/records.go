package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/gully/internal/store"
)

// RecordRepository handles match, batting and bowling record persistence
type RecordRepository struct {
	db *store.Database
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *store.Database) *RecordRepository {
	return &RecordRepository{db: db}
}

// UpsertMatch stores match metadata, replacing any earlier extraction of the
// same match
func (r *RecordRepository) UpsertMatch(ctx context.Context, matchID string, meta store.MatchMetadata) error {
	query := `
		INSERT INTO matches (match_id, match_date, match_type, is_playoff, series, ground,
			toss_winner, toss_decision, player_of_match, match_result, result_margin, opponent_team)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (match_id) DO UPDATE SET
			match_date = EXCLUDED.match_date,
			match_type = EXCLUDED.match_type,
			is_playoff = EXCLUDED.is_playoff,
			series = EXCLUDED.series,
			ground = EXCLUDED.ground,
			toss_winner = EXCLUDED.toss_winner,
			toss_decision = EXCLUDED.toss_decision,
			player_of_match = EXCLUDED.player_of_match,
			match_result = EXCLUDED.match_result,
			result_margin = EXCLUDED.result_margin,
			opponent_team = EXCLUDED.opponent_team
	`
	_, err := r.db.DB().ExecContext(ctx, query, matchID,
		meta.MatchDate, meta.MatchType, meta.IsPlayoff, meta.Series, meta.Ground,
		meta.TossWinner, meta.TossDecision, meta.PlayerOfMatch,
		meta.MatchResult, meta.ResultMargin, meta.OpponentTeam)
	if err != nil {
		return fmt.Errorf("upserting match %s: %w", matchID, err)
	}
	return nil
}

// ReplaceBatting swaps the stored batting records for a match
func (r *RecordRepository) ReplaceBatting(ctx context.Context, matchID string, recs []store.BattingRecord) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning batting tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM batting_records WHERE match_id = $1", matchID); err != nil {
		return fmt.Errorf("clearing batting records for %s: %w", matchID, err)
	}
	query := `
		INSERT INTO batting_records (match_id, name, runs, balls, fours, sixes, strike_rate,
			dismissal, batting_position, dot_balls, tracked_balls, dot_pct)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	for _, rec := range recs {
		if _, err := tx.ExecContext(ctx, query, matchID, rec.Name,
			rec.Runs, rec.Balls, rec.Fours, rec.Sixes, rec.StrikeRate,
			rec.Dismissal, rec.BattingPosition,
			rec.DotBalls, rec.TrackedBalls, rec.DotPct); err != nil {
			return fmt.Errorf("inserting batting record %s/%s: %w", matchID, rec.Name, err)
		}
	}
	return tx.Commit()
}

// ReplaceBowling swaps the stored bowling records for a match
func (r *RecordRepository) ReplaceBowling(ctx context.Context, matchID string, recs []store.BowlingRecord) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning bowling tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM bowling_records WHERE match_id = $1", matchID); err != nil {
		return fmt.Errorf("clearing bowling records for %s: %w", matchID, err)
	}
	query := `
		INSERT INTO bowling_records (match_id, name, overs, maidens, dots, runs, wickets,
			economy, wides, no_balls)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, rec := range recs {
		if _, err := tx.ExecContext(ctx, query, matchID, rec.Name,
			rec.Overs, rec.Maidens, rec.Dots, rec.Runs, rec.Wickets,
			rec.Economy, rec.Wides, rec.NoBalls); err != nil {
			return fmt.Errorf("inserting bowling record %s/%s: %w", matchID, rec.Name, err)
		}
	}
	return tx.Commit()
}

// ListBatting returns every batting record joined with its match metadata,
// ordered by match then batting position
func (r *RecordRepository) ListBatting(ctx context.Context) ([]store.BattingRecord, error) {
	query := `
		SELECT b.name, b.runs, b.balls, b.fours, b.sixes, b.strike_rate, b.dismissal,
			b.match_id, b.batting_position, b.dot_balls, b.tracked_balls, b.dot_pct,
			m.match_date, m.match_type, m.is_playoff, m.series, m.ground,
			m.toss_winner, m.toss_decision, m.player_of_match,
			m.match_result, m.result_margin, m.opponent_team
		FROM batting_records b
		JOIN matches m ON b.match_id = m.match_id
		ORDER BY b.match_id, b.batting_position, b.name
	`
	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying batting records: %w", err)
	}
	defer rows.Close()

	var out []store.BattingRecord
	for rows.Next() {
		var rec store.BattingRecord
		if err := rows.Scan(
			&rec.Name, &rec.Runs, &rec.Balls, &rec.Fours, &rec.Sixes, &rec.StrikeRate,
			&rec.Dismissal, &rec.MatchID, &rec.BattingPosition,
			&rec.DotBalls, &rec.TrackedBalls, &rec.DotPct,
			&rec.Meta.MatchDate, &rec.Meta.MatchType, &rec.Meta.IsPlayoff,
			&rec.Meta.Series, &rec.Meta.Ground, &rec.Meta.TossWinner, &rec.Meta.TossDecision,
			&rec.Meta.PlayerOfMatch, &rec.Meta.MatchResult, &rec.Meta.ResultMargin,
			&rec.Meta.OpponentTeam,
		); err != nil {
			return nil, fmt.Errorf("scanning batting record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListBowling returns every bowling record joined with its match metadata
func (r *RecordRepository) ListBowling(ctx context.Context) ([]store.BowlingRecord, error) {
	query := `
		SELECT b.name, b.overs, b.maidens, b.dots, b.runs, b.wickets, b.economy,
			b.wides, b.no_balls, b.match_id,
			m.match_date, m.match_type, m.is_playoff, m.series, m.ground,
			m.toss_winner, m.toss_decision, m.player_of_match,
			m.match_result, m.result_margin, m.opponent_team
		FROM bowling_records b
		JOIN matches m ON b.match_id = m.match_id
		ORDER BY b.match_id, b.name
	`
	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying bowling records: %w", err)
	}
	defer rows.Close()

	var out []store.BowlingRecord
	for rows.Next() {
		var rec store.BowlingRecord
		if err := rows.Scan(
			&rec.Name, &rec.Overs, &rec.Maidens, &rec.Dots, &rec.Runs, &rec.Wickets,
			&rec.Economy, &rec.Wides, &rec.NoBalls, &rec.MatchID,
			&rec.Meta.MatchDate, &rec.Meta.MatchType, &rec.Meta.IsPlayoff,
			&rec.Meta.Series, &rec.Meta.Ground, &rec.Meta.TossWinner, &rec.Meta.TossDecision,
			&rec.Meta.PlayerOfMatch, &rec.Meta.MatchResult, &rec.Meta.ResultMargin,
			&rec.Meta.OpponentTeam,
		); err != nil {
			return nil, fmt.Errorf("scanning bowling record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
