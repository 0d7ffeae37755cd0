package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DotBallCount tallies the legal deliveries a batter faced in the
// ball-by-ball feed and how many scored nothing.
type DotBallCount struct {
	Balls int
	Dots  int
}

var (
	detailClassRE = regexp.MustCompile(`(?i)ball|detail|expand|over`)
	deliveryRE    = regexp.MustCompile(`(?i)(\d+)\.(\d+)\s+([A-Za-z][A-Za-z\s\.]+?)\s+to\s+([A-Za-z][A-Za-z\s\.]+?)(?:[,\s]+|$)`)
	runAfterRE    = regexp.MustCompile(`(?i),\s*(-?\d+)\s+run`)
	noBallRunsRE  = regexp.MustCompile(`(?i)(\d+)\s*(?:nb|no\s+ball)`)
	anyIntRE      = regexp.MustCompile(`-?\d+`)
)

// ParseBallByBall tallies balls faced and dot balls per batter from the
// ball-by-ball page. Wides are not balls faced and are skipped; no-balls are
// faced and count. Commentary text is the primary source, with a tabular
// delivery log as fallback for older page layouts.
func ParseBallByBall(ballHTML string) map[string]DotBallCount {
	counts := map[string]DotBallCount{}
	if ballHTML == "" {
		return counts
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(ballHTML))
	if err != nil {
		return counts
	}

	doc.Find("div,span").Each(func(_ int, el *goquery.Selection) {
		class, _ := el.Attr("class")
		if !detailClassRE.MatchString(class) {
			return
		}
		text := normSpace(el.Text())
		if len(text) < 10 {
			return
		}
		for _, loc := range deliveryRE.FindAllStringSubmatchIndex(text, -1) {
			batter := titleClean(text[loc[8]:loc[9]])
			if len(batter) < 2 {
				continue
			}
			// The outcome follows the delivery header within a few words.
			end := loc[1] + 50
			if end > len(text) {
				end = len(text)
			}
			next := strings.ToLower(text[loc[1]:end])
			if strings.Contains(next, "wide") || strings.Contains(next, " wd") ||
				strings.HasPrefix(strings.TrimSpace(next), "wd") {
				continue
			}
			runs := 0
			if m := runAfterRE.FindStringSubmatch(next); m != nil {
				runs, _ = strconv.Atoi(m[1])
			} else if m := noBallRunsRE.FindStringSubmatch(next); m != nil {
				runs, _ = strconv.Atoi(m[1])
			}
			entry := counts[batter]
			entry.Balls++
			if runs == 0 {
				entry.Dots++
			}
			counts[batter] = entry
		}
	})

	doc.Find("table").Each(func(_ int, tbl *goquery.Selection) {
		var headers []string
		tbl.Find("th").Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, lowerNorm(th.Text()))
		})
		if len(headers) == 0 {
			return
		}
		// Runs-per-over summary tables carry no per-delivery data.
		if len(headers) >= 2 && strings.Contains(headers[0], "over") {
			for _, h := range headers[1:min(3, len(headers))] {
				if len(h) > 2 {
					return
				}
			}
		}
		idxBat := headerIndex(headers, "batsman", "striker", "batter", "player")
		idxRuns := headerIndex(headers, "run", "result", "runs", "score", "r")
		if idxBat < 0 || idxRuns < 0 {
			return
		}
		tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("td").Each(func(_ int, td *goquery.Selection) {
				cells = append(cells, normSpace(td.Text()))
			})
			if len(cells) <= idxBat || len(cells) <= idxRuns {
				return
			}
			batter := titleClean(cells[idxBat])
			if batter == "" {
				return
			}
			runText := strings.ToLower(cells[idxRuns])
			if runText == "" {
				return
			}
			if strings.Contains(runText, "wide") || strings.Contains(runText, "wd") {
				return
			}
			runs := 0
			if m := anyIntRE.FindString(runText); m != "" {
				runs, _ = strconv.Atoi(m)
			}
			entry := counts[batter]
			entry.Balls++
			if runs == 0 {
				entry.Dots++
			}
			counts[batter] = entry
		})
	})
	return counts
}

func headerIndex(headers []string, needles ...string) int {
	for i, h := range headers {
		for _, n := range needles {
			if strings.Contains(h, n) {
				return i
			}
		}
	}
	return -1
}
