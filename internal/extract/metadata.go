package extract

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/gully/internal/store"
)

// dateLayouts in priority order. CricClubs prints month/day/year, so those
// layouts go first and day-first layouts only catch what they reject.
var dateLayouts = []string{
	"1/2/2006",
	"1-2-2006",
	"Jan 2 2006",
	"2/1/2006",
	"2-1-2006",
	"2 Jan 2006",
}

var isoDateRE = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)

// ParseDate normalizes a raw scorecard date to YYYY-MM-DD. ISO-looking
// strings get a sanity check: a middle component over 12 can only be a day,
// so "2025-18-10" is read as year-day-month.
func ParseDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if m := isoDateRE.FindStringSubmatch(raw); m != nil {
		year, _ := strconv.Atoi(m[1])
		p1, _ := strconv.Atoi(m[2])
		p2, _ := strconv.Atoi(m[3])
		month, day := p1, p2
		if (p1 > 12 || p2 > 12) && p2 >= 1 && p2 <= 12 {
			month, day = p2, p1
		}
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			if t.Day() == day {
				return t.Format("2006-01-02"), true
			}
		}
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// labeledPatterns try the table-cell markups CricClubs uses for "Label: value"
// pairs, then a bare text fallback.
var labeledPatterns = []string{
	`(?i)%s[^<]*</td>\s*<td[^>]*>([^<]+)`,
	`(?i)%s[^<]*</th>\s*<td[^>]*>([^<]+)`,
	`(?i)%s\s*[:\-]\s*([A-Za-z0-9,\-/ ]+)`,
	`(?i)<td[^>]*>%s[^<]*</td>\s*<td[^>]*>([^<]+)`,
}

func extractLabeled(text, label string) string {
	for _, pat := range labeledPatterns {
		re := regexp.MustCompile(fmt.Sprintf(pat, label))
		if m := re.FindStringSubmatch(text); m != nil {
			return normSpace(m[1])
		}
	}
	return ""
}

var (
	playoffRE     = regexp.MustCompile(`(?i)(quarter|semi|final|playoff)`)
	seriesRE      = regexp.MustCompile(`(?is)<div[^>]*class[^>]*match-summary[^>]*>.*?<h3><strong>\s*([^<]+)</strong>`)
	infoDateRE    = regexp.MustCompile(`(?is)<h3[^>]*class[^>]*ms-league-name[^>]*>.*?(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)
	groundRE      = regexp.MustCompile(`(?is)<th[^>]*>(?:Ground|Venue|Location):</th>\s*<th[^>]*>([^<]+)`)
	tossRE        = regexp.MustCompile(`(?is)<th[^>]*>Toss:</th>\s*<th[^>]*>([^<]+(?:<[^>]+>[^<]+</[^>]+>)*[^<]*)`)
	tagRE         = regexp.MustCompile(`<[^>]+>`)
	tossWinnerRE  = regexp.MustCompile(`(?i)([A-Za-z0-9\s]+)\s+won\s+the\s+toss`)
	electedBatRE  = regexp.MustCompile(`(?i)\belected\s+to\s+bat\b|\bbatted\b`)
	electedBowlRE = regexp.MustCompile(`(?i)\belected\s+to\s+bowl\b|\bbowled\b|\bfield\b`)
	pomLinkRE     = regexp.MustCompile(`(?is)<th[^>]*>Player\s+of\s+the\s+Match:</th>\s*<th[^>]*>.*?<a[^>]*>([^<]+)</a>`)
	pomPlainRE    = regexp.MustCompile(`(?is)<th[^>]*>Player\s+of\s+the\s+Match:</th>\s*<th[^>]*>([^<]+)`)
	leagueNameRE  = regexp.MustCompile(`(?is)<h3[^>]*class[^>]*ms-league-name[^>]*>([^<]+)`)
	dateTailRE    = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}.*`)
)

func nullStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// ParseMetadata pulls match-level fields out of the scorecard page and the
// match-info page. Every field degrades to absent rather than erroring; the
// two sources overlap, and the scorecard wins where both carry a value.
func ParseMetadata(fullHTML, infoHTML, teamName string) store.MatchMetadata {
	var meta store.MatchMetadata
	if fullHTML == "" && infoHTML == "" {
		return meta
	}

	if raw := extractLabeled(fullHTML, "Date"); raw != "" {
		if d, ok := ParseDate(raw); ok {
			meta.MatchDate = nullStr(d)
		} else {
			meta.MatchDate = nullStr(strings.TrimSpace(raw))
		}
	}
	if mt := extractLabeled(fullHTML, `Match\s*Type`); mt != "" {
		meta.MatchType = nullStr(mt)
		if playoffRE.MatchString(mt) {
			meta.IsPlayoff = true
		}
	}

	if infoHTML == "" {
		return meta
	}

	if m := seriesRE.FindStringSubmatch(infoHTML); m != nil {
		meta.Series = nullStr(normSpace(m[1]))
	}
	if !meta.MatchDate.Valid {
		if m := infoDateRE.FindStringSubmatch(infoHTML); m != nil {
			if d, ok := ParseDate(m[1]); ok {
				meta.MatchDate = nullStr(d)
			} else {
				meta.MatchDate = nullStr(strings.TrimSpace(m[1]))
			}
		}
	}
	if m := groundRE.FindStringSubmatch(infoHTML); m != nil {
		meta.Ground = nullStr(normSpace(m[1]))
	}

	if m := tossRE.FindStringSubmatch(infoHTML); m != nil {
		tossText := normSpace(tagRE.ReplaceAllString(m[1], " "))
		meta.TossWinner = nullStr(tossText)
		winnerName := ""
		if tm := tossWinnerRE.FindStringSubmatch(tossText); tm != nil {
			winnerName = normSpace(tm[1])
			meta.TossWinner = nullStr(winnerName)
		}
		decision := ""
		if electedBatRE.MatchString(tossText) {
			decision = "batted"
		} else if electedBowlRE.MatchString(tossText) {
			decision = "bowled"
		}
		// The stored decision is what OUR team did, so an opponent toss win
		// inverts it.
		if teamName != "" && winnerName != "" && decision != "" {
			teamKey := CanonicalKey(teamName)
			winnerKey := CanonicalKey(winnerName)
			if strings.Contains(winnerKey, teamKey) || strings.Contains(teamKey, winnerKey) {
				meta.TossDecision = nullStr(decision)
			} else if decision == "batted" {
				meta.TossDecision = nullStr("bowled")
			} else {
				meta.TossDecision = nullStr("batted")
			}
		} else if decision != "" {
			meta.TossDecision = nullStr(decision)
		}
	}

	if m := pomLinkRE.FindStringSubmatch(infoHTML); m != nil {
		meta.PlayerOfMatch = nullStr(titleClean(m[1]))
	} else if m := pomPlainRE.FindStringSubmatch(infoHTML); m != nil {
		pom := normSpace(m[1])
		switch strings.ToLower(pom) {
		case "", "none", "n/a":
		default:
			meta.PlayerOfMatch = nullStr(titleClean(pom))
		}
	}

	if !meta.MatchType.Valid {
		if m := leagueNameRE.FindStringSubmatch(infoHTML); m != nil {
			mt := strings.TrimSpace(dateTailRE.ReplaceAllString(normSpace(m[1]), ""))
			if mt != "" {
				meta.MatchType = nullStr(mt)
				if playoffRE.MatchString(mt) {
					meta.IsPlayoff = true
				}
			}
		}
	}
	return meta
}

// invalidTeamNames are canonical keys that look like team names to the result
// regexes but are really navigation chrome, section labels or league names.
var invalidTeamNames = map[string]struct{}{
	"player search": {}, "search": {}, "view": {}, "click": {}, "here": {},
	"more": {}, "details": {}, "scorecard": {}, "ball by ball": {}, "info": {},
	"match": {}, "league": {}, "club": {}, "team": {}, "home": {}, "back": {},
	"next": {}, "previous": {}, "menu": {}, "navigation": {}, "innings": {},
	"1st innings": {}, "2nd innings": {}, "first innings": {}, "second innings": {},
	"last updated": {}, "updated": {}, "last": {}, "series": {},
}

var (
	wonByRE    = regexp.MustCompile(`(?i)([A-Za-z0-9\s]+)\s+won\s+by\s+(\d+)\s+(runs?|wickets?)`)
	tiedRE     = regexp.MustCompile(`(?i)Match\s+(tied|drawn|draw)`)
	beatRE     = regexp.MustCompile(`(?i)([A-Za-z0-9\s]+)\s+beat\s+([A-Za-z0-9\s]+)`)
	tossNoise  = regexp.MustCompile(`(?i)won\s+the\s+toss|elected\s+to`)
	scoreLike  = regexp.MustCompile(`\d+\s*[,:]\s*\d+`)
	dateLike   = regexp.MustCompile(`\d{4}|\d{1,2}/\d{1,2}`)
	numberedRE = regexp.MustCompile(`^\d+\.`)

	inningsPrefixRE = regexp.MustCompile(`(?i)^(1st|2nd|first|second)\s+`)
	parentheticalRE = regexp.MustCompile(`\([^)]*\)`)
	trailingColonRE = regexp.MustCompile(`:\s*$`)
	plainTeamCellRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9\s]+$`)
	tableNoiseRE    = regexp.MustCompile(`(?i)(bowling|overs|maximum|did not bat)`)
	seriesKeyRE     = regexp.MustCompile(`(?i)series|league`)
	infoLabelRE     = regexp.MustCompile(`(?i)^(date|time|venue|ground|toss|match|series|league|club):`)

	headerCellRE = regexp.MustCompile(`(?i)(?:<h[1-6][^>]*>|<th[^>]*>|<td[^>]*class[^>]*team[^>]*>)([A-Za-z0-9\s]{2,30})(?:</h[1-6]>|</th>|</td>)`)
)

// opponentExcludeREs filter full-page header text that regex matching mistakes
// for a team name.
var opponentExcludeREs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)won\s+the\s+toss`),
	regexp.MustCompile(`(?i)elected\s+to\s+(bat|bowl)`),
	regexp.MustCompile(`\d+\s*[,:]\s*\d+`),
	regexp.MustCompile(`^\d+\.`),
	regexp.MustCompile(`(?i)\d+\s*(min|pm|am|hr|hour)`),
	regexp.MustCompile(`(?i)(?:1st|2nd|first|second)\s+innings`),
	regexp.MustCompile(`:\s*$`),
	regexp.MustCompile(`\d{4}`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`),
	regexp.MustCompile(`(?i)break`),
	regexp.MustCompile(`(?i)league\s+\d`),
	regexp.MustCompile(`(?i)last\s+updated`),
	regexp.MustCompile(`(?i)updated\s*:`),
}

type teamCandidate struct {
	display string
	key     string
}

// ParseResult works out whether the configured team won, lost or drew, the
// victory margin, and who the opponent was. Opponent resolution is layered:
// result text, then scorecard table headers (the most reliable source, so
// they override), then the match-info page, then full-page header cells.
func ParseResult(fullHTML, teamName, tablesHTML, infoHTML string) (result, margin, opponent sql.NullString) {
	if fullHTML == "" || teamName == "" {
		return
	}
	teamKey := CanonicalKey(teamName)

	for _, re := range []*regexp.Regexp{wonByRE, tiedRE, beatRE} {
		for _, m := range re.FindAllStringSubmatch(fullHTML, -1) {
			whole := strings.ToLower(m[0])
			if strings.Contains(whole, "tied") || strings.Contains(whole, "drawn") || strings.Contains(whole, "draw") {
				result = nullStr("Draw")
				break
			}
			winner := normSpace(m[1])
			winnerKey := CanonicalKey(winner)
			if len(m) >= 4 {
				margin = nullStr(m[2] + " " + m[3])
			}
			if winnerKey == "" || teamKey == "" {
				continue
			}
			if strings.Contains(teamKey, winnerKey) || strings.Contains(winnerKey, teamKey) {
				result = nullStr("Win")
			} else {
				result = nullStr("Loss")
				if _, bad := invalidTeamNames[winnerKey]; !bad &&
					!tossNoise.MatchString(winner) && !scoreLike.MatchString(winner) {
					opponent = nullStr(titleClean(winner))
				}
			}
			break
		}
	}

	candidates := teamsFromTables(tablesHTML, teamKey)

	// Match-info page only as a last resort, when nothing better surfaced.
	if infoHTML != "" && !opponent.Valid && len(candidates) == 0 {
		candidates = teamsFromInfo(infoHTML, teamKey)
	}

	if result.Valid && (result.String == "Win" || result.String == "Loss") {
		for _, c := range candidates {
			if c.key == teamKey {
				continue
			}
			lower := strings.ToLower(c.display)
			if scoreLike.MatchString(c.display) || dateLike.MatchString(c.display) ||
				strings.Contains(lower, "break") || strings.Contains(lower, "league") {
				continue
			}
			opponent = nullStr(c.display)
			break
		}
		if !opponent.Valid {
			opponent = opponentFromHeaders(fullHTML, teamKey)
		}
	}
	return
}

// teamsFromTables collects team names from scorecard table headers, in table
// order with duplicates dropped.
func teamsFromTables(tablesHTML, teamKey string) []teamCandidate {
	if tablesHTML == "" {
		return nil
	}
	tables, err := ParseTables(tablesHTML)
	if err != nil {
		return nil
	}
	var out []teamCandidate
	seen := map[string]struct{}{}
	add := func(display, key string) {
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, teamCandidate{display: display, key: key})
	}
	for _, rows := range tables {
		if len(rows) == 0 {
			continue
		}
		header := lowerNorm(strings.Join(rows[0], " "))
		if i := strings.Index(header, "innings"); i >= 0 {
			raw := strings.TrimSpace(header[:i])
			raw = strings.TrimSpace(inningsPrefixRE.ReplaceAllString(raw, ""))
			raw = strings.TrimSpace(parentheticalRE.ReplaceAllString(raw, ""))
			raw = strings.TrimSpace(trailingColonRE.ReplaceAllString(raw, ""))
			raw = normSpace(raw)
			if len(raw) <= 2 {
				continue
			}
			display := titleClean(raw)
			key := CanonicalKey(display)
			if _, bad := invalidTeamNames[key]; bad || key == "" {
				continue
			}
			if len(display) <= 2 || len(display) >= 50 ||
				dateLike.MatchString(display) || numberedRE.MatchString(display) {
				continue
			}
			add(display, key)
		} else if len(rows[0]) > 0 {
			first := strings.TrimSpace(rows[0][0])
			if len(first) <= 2 || len(first) >= 50 {
				continue
			}
			if !plainTeamCellRE.MatchString(first) || tableNoiseRE.MatchString(first) ||
				dateLike.MatchString(first) {
				continue
			}
			display := titleClean(first)
			key := CanonicalKey(display)
			if _, bad := invalidTeamNames[key]; bad || key == "" || key == teamKey {
				continue
			}
			add(display, key)
		}
	}
	return out
}

func teamsFromInfo(infoHTML, teamKey string) []teamCandidate {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(infoHTML))
	if err != nil {
		return nil
	}
	var out []teamCandidate
	seen := map[string]struct{}{}
	doc.Find("h2,h3,h4,th,td").Each(func(_ int, el *goquery.Selection) {
		text := normSpace(el.Text())
		if len(text) <= 2 || len(text) >= 50 {
			return
		}
		key := CanonicalKey(text)
		if key == "" || key == teamKey {
			return
		}
		if _, bad := invalidTeamNames[key]; bad {
			return
		}
		if seriesKeyRE.MatchString(key) || infoLabelRE.MatchString(text) {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, teamCandidate{display: titleClean(text), key: key})
	})
	return out
}

func opponentFromHeaders(fullHTML, teamKey string) sql.NullString {
	for _, m := range headerCellRE.FindAllStringSubmatch(fullHTML, -1) {
		candidate := strings.TrimSpace(m[1])
		key := CanonicalKey(candidate)
		excluded := false
		for _, re := range opponentExcludeREs {
			if re.MatchString(candidate) {
				excluded = true
				break
			}
		}
		if excluded || seriesKeyRE.MatchString(key) {
			continue
		}
		if _, bad := invalidTeamNames[key]; bad {
			continue
		}
		if key == "" || key == teamKey || len(candidate) <= 2 || len(candidate) >= 40 {
			continue
		}
		return nullStr(titleClean(candidate))
	}
	return sql.NullString{}
}
