package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/fortuna/gully/internal/cache"
	"github.com/fortuna/gully/internal/extract"
	"github.com/fortuna/gully/internal/publisher"
	"github.com/fortuna/gully/internal/store"
)

// LoadBundles reads an exported matches file: a JSON array of match bundles.
func LoadBundles(path string) ([]extract.MatchBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading matches file %s: %w", path, err)
	}
	var bundles []extract.MatchBundle
	if err := json.Unmarshal(data, &bundles); err != nil {
		return nil, fmt.Errorf("parsing matches file %s: %w", path, err)
	}
	return bundles, nil
}

// RecordStore is the slice of the repository the ingester writes through.
type RecordStore interface {
	UpsertMatch(ctx context.Context, matchID string, meta store.MatchMetadata) error
	ReplaceBatting(ctx context.Context, matchID string, recs []store.BattingRecord) error
	ReplaceBowling(ctx context.Context, matchID string, recs []store.BowlingRecord) error
}

// Ingester runs the extraction engine over match bundles and persists the
// accepted records
type Ingester struct {
	engine *extract.Engine
	repo   RecordStore
	pub    *publisher.RedisPublisher
	cache  *cache.RedisCache
}

// NewIngester creates a new ingester. pub and rc may be nil.
func NewIngester(engine *extract.Engine, repo RecordStore, pub *publisher.RedisPublisher, rc *cache.RedisCache) *Ingester {
	return &Ingester{engine: engine, repo: repo, pub: pub, cache: rc}
}

// Summary reports what one ingest run produced.
type Summary struct {
	Matches        int
	BattingRecords int
	BowlingRecords int
	Skipped        int
}

// Run processes every bundle once, newest extraction replacing any earlier
// one per match. Duplicate match IDs within the input are processed only the
// first time they appear.
func (ing *Ingester) Run(ctx context.Context, bundles []extract.MatchBundle) (Summary, error) {
	var sum Summary
	seen := map[string]struct{}{}
	unknownBatters := map[string]struct{}{}
	unknownBowlers := map[string]struct{}{}

	for _, bundle := range bundles {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if bundle.MatchID == "" || bundle.TablesHTML == "" {
			sum.Skipped++
			continue
		}
		if _, dup := seen[bundle.MatchID]; dup {
			sum.Skipped++
			continue
		}
		seen[bundle.MatchID] = struct{}{}

		if bundle.BallHTML == "" {
			log.Printf("match %s: no ball-by-ball page, dot-ball stats unavailable", bundle.MatchID)
		}

		out := ing.engine.ProcessMatch(bundle)
		for name := range out.UnknownBatters {
			unknownBatters[name] = struct{}{}
		}
		for name := range out.UnknownBowlers {
			unknownBowlers[name] = struct{}{}
		}

		if err := ing.persist(ctx, bundle.MatchID, out); err != nil {
			return sum, err
		}
		sum.Matches++
		sum.BattingRecords += len(out.Batting)
		sum.BowlingRecords += len(out.Bowling)

		if ing.pub != nil {
			event := publisher.MatchIngestedEvent{
				MatchID:        bundle.MatchID,
				MatchDate:      out.Meta.MatchDate.String,
				Opponent:       out.Meta.OpponentTeam.String,
				Result:         out.Meta.MatchResult.String,
				BattingRecords: len(out.Batting),
				BowlingRecords: len(out.Bowling),
			}
			if err := ing.pub.PublishMatchIngested(ctx, event); err != nil {
				log.Printf("publishing match %s: %v", bundle.MatchID, err)
			}
		}
	}

	logUnknown("batting", unknownBatters)
	logUnknown("bowling", unknownBowlers)

	if ing.cache != nil {
		if err := ing.cache.Invalidate(ctx); err != nil {
			log.Printf("invalidating cache: %v", err)
		}
	}
	return sum, nil
}

func (ing *Ingester) persist(ctx context.Context, matchID string, out extract.MatchRecords) error {
	if err := ing.repo.UpsertMatch(ctx, matchID, out.Meta); err != nil {
		return err
	}
	if err := ing.repo.ReplaceBatting(ctx, matchID, out.Batting); err != nil {
		return err
	}
	return ing.repo.ReplaceBowling(ctx, matchID, out.Bowling)
}

// logUnknown prints roster misses in sorted order so repeated runs produce
// identical logs.
func logUnknown(kind string, names map[string]struct{}) {
	if len(names) == 0 {
		return
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)
	log.Printf("%s names missing from roster (dropped): %s", kind, strings.Join(sorted, ", "))
}
