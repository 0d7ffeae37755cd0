package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Roster maps canonical player keys to their preferred display names, with an
// optional photo URL per player. An empty roster accepts every name as-is.
type Roster struct {
	names  map[string]string
	photos map[string]string
}

// LoadRoster reads the players CSV: one player per row, display name first,
// optional photo URL second. Header rows and URL-only rows are skipped.
func LoadRoster(r io.Reader) (*Roster, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	ros := &Roster{names: map[string]string{}, photos: map[string]string{}}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading roster csv: %w", err)
		}
		var cells []string
		for _, c := range row {
			if v := normSpace(c); v != "" {
				cells = append(cells, v)
			}
		}
		if len(cells) == 0 {
			continue
		}
		name := cells[0]
		if strings.EqualFold(name, "name") || strings.HasPrefix(strings.ToLower(name), "http") {
			continue
		}
		display := titleClean(name)
		ros.names[CanonicalKey(name)] = display
		if len(cells) >= 2 {
			ros.photos[display] = cells[1]
		}
	}
	return ros, nil
}

// Resolve maps an extracted name onto its roster display name. Unknown names
// are recorded in the unknown set and rejected. With no roster loaded every
// name passes through untouched.
func (r *Roster) Resolve(name string, unknown map[string]struct{}) (string, bool) {
	if r == nil || len(r.names) == 0 {
		return name, true
	}
	if display, ok := r.names[CanonicalKey(name)]; ok {
		return display, true
	}
	if unknown != nil {
		unknown[titleClean(name)] = struct{}{}
	}
	return "", false
}

// Photo returns the roster photo URL for a display name, if any.
func (r *Roster) Photo(display string) string {
	if r == nil {
		return ""
	}
	return r.photos[display]
}

// Len reports the number of roster entries.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}
