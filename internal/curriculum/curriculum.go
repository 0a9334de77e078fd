// Package curriculum models the program's tracks and subjects and the
// providers that supply them per cohort.
package curriculum

import (
	"context"
	"fmt"
	"strings"
)

// TrackType is the curriculum phase a track belongs to
type TrackType string

const (
	TrackOnboarding    TrackType = "onboarding"
	TrackSpecific      TrackType = "specific"
	TrackProfessional  TrackType = "professional"
	TrackEmployability TrackType = "employability"
)

// SummaryOrder is the order tracks follow after onboarding.
var SummaryOrder = []TrackType{TrackSpecific, TrackProfessional, TrackEmployability}

// ParseTrackType parses a track type; Portuguese names are accepted too
func ParseTrackType(s string) (TrackType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "onboarding", "integracao", "integração":
		return TrackOnboarding, nil
	case "specific", "track-specific", "especifica", "específica":
		return TrackSpecific, nil
	case "professional", "profissional":
		return TrackProfessional, nil
	case "employability", "empregabilidade":
		return TrackEmployability, nil
	}
	return "", fmt.Errorf("unknown track type: %q", s)
}

// Subject is a curriculum unit with an hour target
type Subject struct {
	ID           string  `json:"id,omitempty"`
	Name         string  `json:"name"`
	Hours        float64 `json:"hours"`
	MeetingCount int     `json:"meeting_count"`
}

// Track is a named curriculum phase composed of ordered subjects
type Track struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Code     string    `json:"code,omitempty"`
	Type     TrackType `json:"type"`
	CohortID string    `json:"cohort_id"`
	Subjects []Subject `json:"subjects"`
}

// TotalHours sums the hours of the track's subjects
func (t Track) TotalHours() float64 {
	total := 0.0
	for _, s := range t.Subjects {
		total += s.Hours
	}
	return total
}

// Provider supplies the tracks applicable to a cohort
type Provider interface {
	TracksForCohort(ctx context.Context, cohortID string) ([]Track, error)
}

// ForCohort returns the tracks that belong to cohortID. Tracks without a
// cohort are treated as shared by every cohort.
func ForCohort(tracks []Track, cohortID string) []Track {
	result := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		if t.CohortID == "" || t.CohortID == cohortID {
			result = append(result, t)
		}
	}
	return result
}

// OfType returns the tracks of the given type, keeping input order
func OfType(tracks []Track, typ TrackType) []Track {
	result := make([]Track, 0)
	for _, t := range tracks {
		if t.Type == typ {
			result = append(result, t)
		}
	}
	return result
}

// Ordered returns the non-onboarding tracks in SummaryOrder, stable
// within each type.
func Ordered(tracks []Track) []Track {
	result := make([]Track, 0, len(tracks))
	for _, typ := range SummaryOrder {
		result = append(result, OfType(tracks, typ)...)
	}
	return result
}

// Clone deep-copies a track list so callers can hold a snapshot
func Clone(tracks []Track) []Track {
	if tracks == nil {
		return nil
	}
	out := make([]Track, len(tracks))
	for i, t := range tracks {
		out[i] = t
		out[i].Subjects = append([]Subject(nil), t.Subjects...)
	}
	return out
}

// ValidateTracks reports configuration problems with a cohort's tracks.
// The findings are advisory; generation still proceeds.
func ValidateTracks(tracks []Track, cohortID string) []string {
	var problems []string

	cohortTracks := ForCohort(tracks, cohortID)
	if len(cohortTracks) == 0 {
		return append(problems, fmt.Sprintf("no tracks found for cohort %q", cohortID))
	}

	if len(OfType(cohortTracks, TrackOnboarding)) == 0 {
		problems = append(problems, "onboarding track not found for cohort")
	}
	if len(OfType(cohortTracks, TrackSpecific)) == 0 {
		problems = append(problems, "specific track not found for cohort")
	}

	for _, t := range cohortTracks {
		if len(t.Subjects) == 0 {
			problems = append(problems, fmt.Sprintf("track %q has no subjects", t.Name))
			continue
		}
		if t.TotalHours() == 0 {
			problems = append(problems, fmt.Sprintf("track %q has zero hours", t.Name))
		}
	}

	return problems
}
