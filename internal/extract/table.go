package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TableKind classifies a scorecard table by its header row.
type TableKind string

const (
	KindBatting TableKind = "batting"
	KindBowling TableKind = "bowling"
	KindNeither TableKind = "neither"
)

// ParseTables extracts every <table> in the fragment as ordered rows of
// untyped cell strings. Rows with no non-empty cell are dropped.
func ParseTables(fragment string) ([][][]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}
	var tables [][][]string
	doc.Find("table").Each(func(_ int, tbl *goquery.Selection) {
		if rows := tableRows(tbl); len(rows) > 0 {
			tables = append(tables, rows)
		}
	})
	return tables, nil
}

func tableRows(tbl *goquery.Selection) [][]string {
	var rows [][]string
	tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		any := false
		tr.Find("td,th").Each(func(_ int, td *goquery.Selection) {
			c := normSpace(td.Text())
			if c != "" {
				any = true
			}
			cells = append(cells, c)
		})
		if any {
			rows = append(rows, cells)
		}
	})
	return rows
}

// ClassifyTable decides whether a table is a batting or bowling scorecard
// from its first row's joined text and, when it is, which team owns it. The
// owning team is the canonicalized text preceding the keyword.
func ClassifyTable(rows [][]string) (TableKind, string) {
	if len(rows) == 0 {
		return KindNeither, ""
	}
	header := lowerNorm(strings.Join(rows[0], " "))
	if header == "" {
		return KindNeither, ""
	}
	if i := strings.Index(header, "innings"); i >= 0 {
		return KindBatting, CanonicalKey(strings.Trim(header[:i], " :-"))
	}
	if i := strings.Index(header, "bowling"); i >= 0 {
		return KindBowling, CanonicalKey(strings.Trim(header[:i], " :-"))
	}
	return KindNeither, ""
}
