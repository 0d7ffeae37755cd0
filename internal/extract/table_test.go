package extract

import "testing"

func TestParseTables_DropsEmptyRows(t *testing.T) {
	t.Parallel()

	html := `<table>
		<tr><th>Gully Kings Innings</th></tr>
		<tr><td></td><td>  </td></tr>
		<tr><td>Rohit</td><td>41</td></tr>
	</table>`
	tables, err := ParseTables(html)
	if err != nil {
		t.Fatalf("ParseTables: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("tables want=1 got=%d", len(tables))
	}
	if len(tables[0]) != 2 {
		t.Fatalf("rows want=2 got=%d", len(tables[0]))
	}
}

func TestClassifyTable_Batting(t *testing.T) {
	t.Parallel()

	kind, owner := ClassifyTable([][]string{{"Gully Kings Innings (18 overs maximum)"}})
	if kind != KindBatting {
		t.Fatalf("kind want=batting got=%s", kind)
	}
	if owner != "gully kings" {
		t.Fatalf("owner want=%q got=%q", "gully kings", owner)
	}
}

func TestClassifyTable_BowlingWithSeparators(t *testing.T) {
	t.Parallel()

	kind, owner := ClassifyTable([][]string{{"Gully-Kings : Bowling", "O", "M", "R", "W"}})
	if kind != KindBowling {
		t.Fatalf("kind want=bowling got=%s", kind)
	}
	if owner != "gully kings" {
		t.Fatalf("owner want=%q got=%q", "gully kings", owner)
	}
}

func TestClassifyTable_Neither(t *testing.T) {
	t.Parallel()

	kind, owner := ClassifyTable([][]string{{"Fall of Wickets", "1-23", "2-51"}})
	if kind != KindNeither || owner != "" {
		t.Fatalf("want neither with empty owner, got %s %q", kind, owner)
	}
	if k, _ := ClassifyTable(nil); k != KindNeither {
		t.Fatalf("empty table want=neither got=%s", k)
	}
}
