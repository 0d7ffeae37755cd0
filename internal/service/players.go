package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fortuna/gully/internal/store"
)

// BattingSummary is a player's career batting aggregate.
type BattingSummary struct {
	Runs       int      `json:"runs"`
	Balls      int      `json:"balls"`
	Fours      int      `json:"fours"`
	Sixes      int      `json:"sixes"`
	StrikeRate float64  `json:"sr"`
	Outs       int      `json:"outs"`
	Average    float64  `json:"avg"`
	DotPct     float64  `json:"dot_pct,omitempty"`
	Innings    int      `json:"innings"`
	Best       []string `json:"best,omitempty"`
}

// BowlingSummary is a player's career bowling aggregate.
type BowlingSummary struct {
	Wickets int      `json:"wickets"`
	Overs   string   `json:"overs"`
	Balls   int      `json:"balls"`
	Runs    int      `json:"runs_conceded"`
	Economy float64  `json:"econ"`
	DotPct  float64  `json:"dot_pct,omitempty"`
	Wides   int      `json:"wides"`
	NoBalls int      `json:"no_balls"`
	Spells  int      `json:"spells"`
	Best    []string `json:"best,omitempty"`
}

// PlayerSummary is one player's combined career line.
type PlayerSummary struct {
	Name    string          `json:"name"`
	Photo   string          `json:"photo,omitempty"`
	Batting *BattingSummary `json:"batting,omitempty"`
	Bowling *BowlingSummary `json:"bowling,omitempty"`
}

// isOut reports whether a dismissal string counts against the batting
// average. Empty dismissals and not-outs do not.
func isOut(dismissal string) bool {
	d := strings.ToLower(strings.TrimSpace(dismissal))
	return d != "" && !strings.Contains(d, "not out")
}

// BuildPlayerSummaries folds per-innings records into per-player career
// lines, sorted by name. It is a pure function of its inputs so repeated runs
// over the same records emit identical output.
func BuildPlayerSummaries(batting []store.BattingRecord, bowling []store.BowlingRecord, photo func(string) string) []PlayerSummary {
	players := map[string]*PlayerSummary{}
	get := func(name string) *PlayerSummary {
		if p, ok := players[name]; ok {
			return p
		}
		p := &PlayerSummary{Name: name}
		players[name] = p
		return p
	}

	batByName := map[string][]store.BattingRecord{}
	for _, rec := range batting {
		batByName[rec.Name] = append(batByName[rec.Name], rec)
	}
	for name, recs := range batByName {
		sum := &BattingSummary{Innings: len(recs)}
		var runs, balls, dotBalls, trackedBalls float64
		for _, rec := range recs {
			runs += rec.Runs.Float64
			balls += rec.Balls.Float64
			sum.Fours += int(rec.Fours.Float64)
			sum.Sixes += int(rec.Sixes.Float64)
			if isOut(rec.Dismissal) {
				sum.Outs++
			}
			if rec.TrackedBalls.Valid {
				dotBalls += float64(rec.DotBalls.Int32)
				trackedBalls += float64(rec.TrackedBalls.Int32)
			}
		}
		sum.Runs = int(runs + 0.5)
		sum.Balls = int(balls + 0.5)
		sum.StrikeRate = StrikeRate(runs, balls)
		sum.Average = Average(runs, sum.Outs)
		if trackedBalls > 0 {
			sum.DotPct = pct(dotBalls, trackedBalls)
		}
		sum.Best = bestBattingLines(recs)
		get(name).Batting = sum
	}

	bowlByName := map[string][]store.BowlingRecord{}
	for _, rec := range bowling {
		bowlByName[rec.Name] = append(bowlByName[rec.Name], rec)
	}
	for name, recs := range bowlByName {
		sum := &BowlingSummary{Spells: len(recs)}
		var runs, wickets, dots float64
		balls := 0
		for _, rec := range recs {
			balls += BallsFromOvers(rec.Overs)
			runs += rec.Runs.Float64
			wickets += rec.Wickets.Float64
			dots += rec.Dots.Float64
			sum.Wides += rec.Wides
			sum.NoBalls += rec.NoBalls
		}
		sum.Wickets = int(wickets + 0.5)
		sum.Balls = balls
		sum.Overs = OversFromBalls(balls)
		sum.Runs = int(runs + 0.5)
		sum.Economy = Economy(runs, balls)
		if balls > 0 {
			sum.DotPct = pct(dots, float64(balls))
		}
		sum.Best = bestBowlingLines(recs)
		get(name).Bowling = sum
	}

	out := make([]PlayerSummary, 0, len(players))
	for _, p := range players {
		if photo != nil {
			p.Photo = photo(p.Name)
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// bestBattingLines picks a player's top three innings: most runs first,
// fewer balls breaking ties.
func bestBattingLines(recs []store.BattingRecord) []string {
	sorted := append([]store.BattingRecord(nil), recs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Runs.Float64 != sorted[j].Runs.Float64 {
			return sorted[i].Runs.Float64 > sorted[j].Runs.Float64
		}
		return sorted[i].Balls.Float64 < sorted[j].Balls.Float64
	})
	var lines []string
	for i, rec := range sorted {
		if i == 3 {
			break
		}
		lines = append(lines, fmt.Sprintf("%d (%db)", int(rec.Runs.Float64), int(rec.Balls.Float64)))
	}
	return lines
}

// bestBowlingLines picks a player's top three spells: most wickets, then
// fewest runs, then the longer spell.
func bestBowlingLines(recs []store.BowlingRecord) []string {
	sorted := append([]store.BowlingRecord(nil), recs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Wickets.Float64 != sorted[j].Wickets.Float64 {
			return sorted[i].Wickets.Float64 > sorted[j].Wickets.Float64
		}
		if sorted[i].Runs.Float64 != sorted[j].Runs.Float64 {
			return sorted[i].Runs.Float64 < sorted[j].Runs.Float64
		}
		return BallsFromOvers(sorted[i].Overs) > BallsFromOvers(sorted[j].Overs)
	})
	var lines []string
	for i, rec := range sorted {
		if i == 3 {
			break
		}
		balls := BallsFromOvers(rec.Overs)
		lines = append(lines, fmt.Sprintf("%d/%d (%s ov)",
			int(rec.Wickets.Float64), int(rec.Runs.Float64), OversFromBalls(balls)))
	}
	return lines
}

// recordLister is the slice of the repository the services need.
type recordLister interface {
	ListBatting(ctx context.Context) ([]store.BattingRecord, error)
	ListBowling(ctx context.Context) ([]store.BowlingRecord, error)
}

// PlayerService serves career summaries from stored records
type PlayerService struct {
	repo  recordLister
	photo func(string) string
}

// NewPlayerService creates a new player service. photo may be nil.
func NewPlayerService(repo recordLister, photo func(string) string) *PlayerService {
	return &PlayerService{repo: repo, photo: photo}
}

// GetPlayerSummaries returns career summaries for every known player
func (s *PlayerService) GetPlayerSummaries(ctx context.Context) ([]PlayerSummary, error) {
	batting, err := s.repo.ListBatting(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing batting records: %w", err)
	}
	bowling, err := s.repo.ListBowling(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bowling records: %w", err)
	}
	return BuildPlayerSummaries(batting, bowling, s.photo), nil
}

// GetPlayer returns one player's summary by display name
func (s *PlayerService) GetPlayer(ctx context.Context, name string) (*PlayerSummary, error) {
	summaries, err := s.GetPlayerSummaries(ctx)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		if strings.EqualFold(summaries[i].Name, name) {
			return &summaries[i], nil
		}
	}
	return nil, fmt.Errorf("player %s not found", name)
}
