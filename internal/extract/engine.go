package extract

import (
	"strings"

	"github.com/fortuna/gully/internal/store"
)

// MatchBundle is one exported match: the scorecard tables plus the optional
// full page, ball-by-ball page and match-info page around them.
type MatchBundle struct {
	MatchID    string `json:"match_id"`
	TablesHTML string `json:"tables_html"`
	FullHTML   string `json:"full_html"`
	BallHTML   string `json:"ball_html"`
	InfoHTML   string `json:"info_html"`
}

// Engine turns raw match bundles into validated batting and bowling records
// for one configured team. It holds no per-match state; ProcessMatch is a
// pure function of its input, so identical bundles always yield identical
// records.
type Engine struct {
	TeamName string
	Roster   *Roster
}

// MatchRecords is the extraction output for a single match.
type MatchRecords struct {
	Meta    store.MatchMetadata
	Batting []store.BattingRecord
	Bowling []store.BowlingRecord

	// UnknownBatters and UnknownBowlers hold names that were extracted but
	// not found on the roster, for operator visibility.
	UnknownBatters map[string]struct{}
	UnknownBowlers map[string]struct{}
}

// ProcessMatch extracts every accepted record from one match bundle. Bundles
// without scorecard tables yield empty output; every other piece of the
// bundle is optional and its absence only degrades the result.
func (e *Engine) ProcessMatch(b MatchBundle) MatchRecords {
	out := MatchRecords{
		UnknownBatters: map[string]struct{}{},
		UnknownBowlers: map[string]struct{}{},
	}
	if b.TablesHTML == "" {
		return out
	}
	fullHTML := b.FullHTML
	if fullHTML == "" {
		fullHTML = b.TablesHTML
	}

	meta := ParseMetadata(fullHTML, b.InfoHTML, e.TeamName)
	meta.MatchResult, meta.ResultMargin, meta.OpponentTeam = ParseResult(fullHTML, e.TeamName, b.TablesHTML, b.InfoHTML)
	out.Meta = meta

	rawDots := ParseBallByBall(b.BallHTML)
	dots := make(map[string]DotBallCount, len(rawDots))
	for k, v := range rawDots {
		dots[titleClean(k)] = v
	}

	teamKey := CanonicalKey(e.TeamName)
	tables, err := ParseTables(b.TablesHTML)
	if err != nil {
		return out
	}

	for _, rows := range tables {
		kind, owner := ClassifyTable(rows)
		if kind == KindNeither {
			continue
		}
		if teamKey != "" {
			if owner != "" {
				if !strings.Contains(owner, teamKey) {
					continue
				}
			} else if e.Roster.Len() == 0 {
				// Without a roster there is no second filter, so ownerless
				// tables cannot be attributed safely.
				continue
			}
		}

		if kind == KindBatting {
			position := 0
			for _, row := range rows {
				position++
				rec, ok := ParseBattingRow(row, b.MatchID, dots, meta, position)
				if !ok {
					position--
					continue
				}
				name, ok := e.Roster.Resolve(rec.Name, out.UnknownBatters)
				if !ok {
					position--
					continue
				}
				rec.Name = name
				out.Batting = append(out.Batting, *rec)
			}
		} else {
			for _, row := range rows {
				rec, ok := ParseBowlingRow(row, b.MatchID)
				if !ok {
					continue
				}
				name, ok := e.Roster.Resolve(rec.Name, out.UnknownBowlers)
				if !ok {
					continue
				}
				rec.Name = name
				rec.Meta = meta
				out.Bowling = append(out.Bowling, *rec)
			}
		}
	}
	return out
}
