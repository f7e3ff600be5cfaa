package resolve

import (
	"strings"

	"golang.org/x/text/cases"

	"artbridge/internal/catalogue"
)

var fold = cases.Fold()

// trackCandidates returns the folded track name followed by versions with
// trailing words dropped, so "Violin 1" also tries "Violin". DAW track names
// commonly append instance numbers the library file names lack.
func trackCandidates(trackName string) []string {
	full := fold.String(strings.Join(strings.Fields(trackName), " "))
	if full == "" {
		return nil
	}
	candidates := []string{full}
	for {
		idx := strings.LastIndex(full, " ")
		if idx < 0 {
			break
		}
		full = full[:idx]
		candidates = append(candidates, full)
	}
	return candidates
}

// Contains reports whether a candidate name and track name satisfy the
// containment test: the candidate contains the (possibly trimmed) track name,
// or the full track name contains the candidate.
func Contains(candidate, trackName string) bool {
	c := fold.String(strings.TrimSpace(candidate))
	if c == "" {
		return false
	}
	tracks := trackCandidates(trackName)
	if len(tracks) == 0 {
		return false
	}
	if strings.Contains(tracks[0], c) {
		return true
	}
	for _, t := range tracks {
		if strings.Contains(c, t) {
			return true
		}
	}
	return false
}

// Match selects the best catalogue entry for a track name, or nil when no
// entry satisfies the containment test. Callers must not fabricate a set on a
// nil result.
//
// Preference order: the first entry containing the full track name (forward
// match); then the first entry the track name contains, in catalogue order;
// then forward matches against the track name with trailing words dropped.
func Match(trackName string, entries []catalogue.Entry) *catalogue.Entry {
	tracks := trackCandidates(trackName)
	if len(tracks) == 0 {
		return nil
	}
	full := tracks[0]

	var fallback *catalogue.Entry
	for i := range entries {
		c := fold.String(entries[i].Name)
		if c == "" {
			continue
		}
		if strings.Contains(c, full) {
			return &entries[i]
		}
		if fallback == nil && strings.Contains(full, c) {
			fallback = &entries[i]
		}
	}
	if fallback != nil {
		return fallback
	}

	for _, t := range tracks[1:] {
		for i := range entries {
			if strings.Contains(fold.String(entries[i].Name), t) {
				return &entries[i]
			}
		}
	}
	return nil
}
