package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fortuna/gully/internal/extract"
	"github.com/fortuna/gully/internal/store"
)

type fakeStore struct {
	matches map[string]store.MatchMetadata
	batting map[string][]store.BattingRecord
	bowling map[string][]store.BowlingRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		matches: map[string]store.MatchMetadata{},
		batting: map[string][]store.BattingRecord{},
		bowling: map[string][]store.BowlingRecord{},
	}
}

func (f *fakeStore) UpsertMatch(_ context.Context, matchID string, meta store.MatchMetadata) error {
	f.matches[matchID] = meta
	return nil
}

func (f *fakeStore) ReplaceBatting(_ context.Context, matchID string, recs []store.BattingRecord) error {
	f.batting[matchID] = recs
	return nil
}

func (f *fakeStore) ReplaceBowling(_ context.Context, matchID string, recs []store.BowlingRecord) error {
	f.bowling[matchID] = recs
	return nil
}

const ingestTables = `<table>
	<tr><th>Strikers Innings</th></tr>
	<tr><td>Rahul Sharma c Smith b Jones</td><td>41</td><td>29</td><td>5</td><td>2</td><td>141.38</td></tr>
</table>`

func TestIngesterRun(t *testing.T) {
	t.Parallel()

	engine := &extract.Engine{TeamName: "Strikers"}
	// A roster is required for ownerless attribution, but this table carries
	// an owner, so a bare engine suffices.
	fs := newFakeStore()
	ing := NewIngester(engine, fs, nil, nil)

	bundles := []extract.MatchBundle{
		{MatchID: "1001", TablesHTML: ingestTables},
		{MatchID: "1001", TablesHTML: ingestTables}, // duplicate
		{MatchID: "", TablesHTML: ingestTables},     // unidentified
		{MatchID: "1002"},                           // no tables
	}
	sum, err := ing.Run(context.Background(), bundles)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Matches != 1 || sum.Skipped != 3 {
		t.Fatalf("summary got=%+v", sum)
	}
	if sum.BattingRecords != 1 {
		t.Fatalf("batting records want=1 got=%d", sum.BattingRecords)
	}
	if len(fs.batting["1001"]) != 1 || fs.batting["1001"][0].Name != "Rahul Sharma" {
		t.Fatalf("stored batting got=%+v", fs.batting["1001"])
	}
	if _, ok := fs.matches["1001"]; !ok {
		t.Fatalf("match metadata not stored")
	}
}

func TestIngesterRun_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ing := NewIngester(&extract.Engine{TeamName: "Strikers"}, newFakeStore(), nil, nil)
	if _, err := ing.Run(ctx, []extract.MatchBundle{{MatchID: "1", TablesHTML: ingestTables}}); err == nil {
		t.Fatalf("cancelled context must abort the run")
	}
}

func TestLoadBundles(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "matches.json")
	content := `[{"match_id":"7","tables_html":"<table></table>","ball_html":"","info_html":"","full_html":""}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	bundles, err := LoadBundles(path)
	if err != nil {
		t.Fatalf("LoadBundles: %v", err)
	}
	if len(bundles) != 1 || bundles[0].MatchID != "7" {
		t.Fatalf("bundles got=%+v", bundles)
	}

	if _, err := LoadBundles(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("missing file must error")
	}
}
