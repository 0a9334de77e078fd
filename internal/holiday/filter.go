package holiday

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/username/apprentice-calendar/pkg/dateutil"
)

// Applies reports whether a holiday record is observed at loc.
//
//   - national and optional holidays apply everywhere
//   - state holidays apply when StateCode matches loc.State
//   - municipal holidays match on IBGE code when both sides carry one,
//     otherwise on city name (accent and case insensitive), and on state
//     when the record carries a state
func Applies(h Holiday, loc Location) bool {
	switch h.Level {
	case LevelNational, LevelOptional:
		return true

	case LevelState:
		return h.StateCode != "" && strings.EqualFold(strings.TrimSpace(h.StateCode), strings.TrimSpace(loc.State))

	case LevelMunicipal:
		if h.IBGECode != "" && loc.IBGECode != "" {
			return strings.TrimSpace(h.IBGECode) == strings.TrimSpace(loc.IBGECode)
		}
		if h.City == "" || normalizeName(h.City) != normalizeName(loc.City) {
			return false
		}
		if h.StateCode != "" && !strings.EqualFold(strings.TrimSpace(h.StateCode), strings.TrimSpace(loc.State)) {
			return false
		}
		return true
	}

	return false
}

// Applicable selects the holidays observed at loc and keeps a single
// record per date, the one with the highest level priority. Among records
// of equal priority the first one in input order wins. The result is
// sorted by date.
func Applicable(holidays []Holiday, loc Location) []Holiday {
	byDate := make(map[string]Holiday)

	for _, h := range holidays {
		if !Applies(h, loc) {
			continue
		}

		key := dateutil.Key(h.Date)
		current, ok := byDate[key]
		if !ok || h.Level.Priority() > current.Level.Priority() {
			byDate[key] = h
		}
	}

	result := make([]Holiday, 0, len(byDate))
	for _, h := range byDate {
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	return result
}

// Between returns the holidays dated within [from, to].
func Between(holidays []Holiday, from, to time.Time) []Holiday {
	result := make([]Holiday, 0, len(holidays))
	for _, h := range holidays {
		if dateutil.InRange(h.Date, from, to) {
			result = append(result, h)
		}
	}
	return result
}

// DateSet indexes holidays by ISO day key.
func DateSet(holidays []Holiday) map[string]Holiday {
	set := make(map[string]Holiday, len(holidays))
	for _, h := range holidays {
		set[dateutil.Key(h.Date)] = h
	}
	return set
}

// CountByLevel counts records per level.
func CountByLevel(holidays []Holiday) map[Level]int {
	counts := make(map[Level]int)
	for _, h := range holidays {
		counts[h.Level]++
	}
	return counts
}

func normalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.Join(strings.Fields(out), " "))
}
