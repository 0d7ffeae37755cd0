package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/fortuna/gully/internal/store"
)

// WinRate is a win/loss/draw tally for one grouping bucket.
type WinRate struct {
	WinPct float64 `json:"win_pct"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Draws  int     `json:"draws"`
	Total  int     `json:"total"`
}

// TeamAnalytics is the team-level rollup of stored match outcomes.
type TeamAnalytics struct {
	TeamName           string             `json:"team_name"`
	OverallWinPct      float64            `json:"overall_win_pct"`
	WinRateByGround    map[string]WinRate `json:"win_rate_by_ground"`
	WinRateByToss      map[string]WinRate `json:"win_rate_by_toss"`
	WinRateByMatchType map[string]WinRate `json:"win_rate_by_match_type"`
}

// MatchResultSummary is one match's outcome line.
type MatchResultSummary struct {
	MatchID       string         `json:"match_id"`
	MatchDate     sql.NullString `json:"match_date"`
	Opponent      sql.NullString `json:"opponent"`
	Result        sql.NullString `json:"result"`
	ResultMargin  sql.NullString `json:"result_margin"`
	Ground        sql.NullString `json:"ground"`
	Series        sql.NullString `json:"series"`
	TossWinner    sql.NullString `json:"toss_winner"`
	TossDecision  sql.NullString `json:"toss_decision"`
	PlayerOfMatch sql.NullString `json:"player_of_match"`
	IsPlayoff     bool           `json:"is_playoff"`
}

// matchMetaByID reduces batting records to one metadata row per match, the
// first record of each match winning, with match IDs in sorted order.
func matchMetaByID(batting []store.BattingRecord) ([]string, map[string]store.MatchMetadata) {
	metas := map[string]store.MatchMetadata{}
	var ids []string
	for _, rec := range batting {
		if rec.MatchID == "" {
			continue
		}
		if _, ok := metas[rec.MatchID]; !ok {
			metas[rec.MatchID] = rec.Meta
			ids = append(ids, rec.MatchID)
		}
	}
	sort.Strings(ids)
	return ids, metas
}

func (w *WinRate) add(result sql.NullString) {
	switch result.String {
	case "Win":
		w.Wins++
	case "Loss":
		w.Losses++
	case "Draw":
		w.Draws++
	}
}

func (w *WinRate) finish() {
	w.Total = w.Wins + w.Losses + w.Draws
	w.WinPct = pct(float64(w.Wins), float64(w.Total))
}

// BuildTeamAnalytics rolls stored batting records up into team win rates
// split by ground, toss decision and match type.
func BuildTeamAnalytics(batting []store.BattingRecord, teamName string) TeamAnalytics {
	out := TeamAnalytics{
		TeamName:           teamName,
		WinRateByGround:    map[string]WinRate{},
		WinRateByToss:      map[string]WinRate{},
		WinRateByMatchType: map[string]WinRate{},
	}
	ids, metas := matchMetaByID(batting)

	var overall WinRate
	byGround := map[string]*WinRate{}
	byToss := map[string]*WinRate{}
	byType := map[string]*WinRate{}
	bucket := func(m map[string]*WinRate, key string) *WinRate {
		if w, ok := m[key]; ok {
			return w
		}
		w := &WinRate{}
		m[key] = w
		return w
	}

	for _, id := range ids {
		meta := metas[id]
		overall.add(meta.MatchResult)
		if meta.Ground.Valid {
			bucket(byGround, meta.Ground.String).add(meta.MatchResult)
		}
		if meta.TossDecision.Valid {
			bucket(byToss, meta.TossDecision.String).add(meta.MatchResult)
		}
		matchType := "League"
		if meta.IsPlayoff {
			matchType = "Playoff"
		}
		bucket(byType, matchType).add(meta.MatchResult)
	}

	overall.finish()
	if overall.Total > 0 {
		out.OverallWinPct = overall.WinPct
	}
	collect := func(dst map[string]WinRate, src map[string]*WinRate) {
		for key, w := range src {
			w.finish()
			if w.Total > 0 {
				dst[key] = *w
			}
		}
	}
	collect(out.WinRateByGround, byGround)
	collect(out.WinRateByToss, byToss)
	collect(out.WinRateByMatchType, byType)
	return out
}

// BuildMatchResults lists per-match outcomes, newest first. Matches without a
// parsed date sort last; ties fall back to match ID so the order is stable.
func BuildMatchResults(batting []store.BattingRecord) []MatchResultSummary {
	ids, metas := matchMetaByID(batting)
	out := make([]MatchResultSummary, 0, len(ids))
	for _, id := range ids {
		meta := metas[id]
		out = append(out, MatchResultSummary{
			MatchID:       id,
			MatchDate:     meta.MatchDate,
			Opponent:      meta.OpponentTeam,
			Result:        meta.MatchResult,
			ResultMargin:  meta.ResultMargin,
			Ground:        meta.Ground,
			Series:        meta.Series,
			TossWinner:    meta.TossWinner,
			TossDecision:  meta.TossDecision,
			PlayerOfMatch: meta.PlayerOfMatch,
			IsPlayoff:     meta.IsPlayoff,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].MatchDate, out[j].MatchDate
		if di.Valid != dj.Valid {
			return di.Valid
		}
		if di.String != dj.String {
			return di.String > dj.String
		}
		return out[i].MatchID > out[j].MatchID
	})
	return out
}

// AnalyticsService serves team-level rollups from stored records
type AnalyticsService struct {
	repo     recordLister
	teamName string
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo recordLister, teamName string) *AnalyticsService {
	return &AnalyticsService{repo: repo, teamName: teamName}
}

// GetTeamAnalytics returns win rates split by ground, toss and match type
func (s *AnalyticsService) GetTeamAnalytics(ctx context.Context) (TeamAnalytics, error) {
	batting, err := s.repo.ListBatting(ctx)
	if err != nil {
		return TeamAnalytics{}, fmt.Errorf("listing batting records: %w", err)
	}
	return BuildTeamAnalytics(batting, s.teamName), nil
}

// GetMatchResults returns the per-match outcome list, newest first
func (s *AnalyticsService) GetMatchResults(ctx context.Context) ([]MatchResultSummary, error) {
	batting, err := s.repo.ListBatting(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing batting records: %w", err)
	}
	return BuildMatchResults(batting), nil
}
