package generator

import (
	"math"

	"github.com/username/apprentice-calendar/internal/curriculum"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

// summarizeTracks builds the reporting rollup: Module 1 from the placed
// onboarding days, then each cohort track laid end to end in weekly
// blocks with a one week gap.
func summarizeTracks(onboarding []CalendarEvent, tracks []curriculum.Track, hoursPerDay, weeklyBudget float64) []TrackSummary {
	if len(onboarding) == 0 {
		return nil
	}

	first := onboarding[0].Date
	last := onboarding[len(onboarding)-1].Date

	summaries := []TrackSummary{{
		Name:  OnboardingLabel,
		Type:  curriculum.TrackOnboarding,
		Start: first,
		End:   last,
		Hours: float64(len(onboarding)) * hoursPerDay,
	}}

	start := dateutil.AddDays(last, 7)
	for _, t := range curriculum.Ordered(tracks) {
		hours := t.TotalHours()
		if hours <= 0 {
			continue
		}

		weeks := int(math.Ceil(hours / weeklyBudget))
		end := dateutil.AddDays(start, weeks*7)

		summaries = append(summaries, TrackSummary{
			Name:  t.Name,
			Type:  t.Type,
			Start: start,
			End:   end,
			Hours: hours,
		})

		start = dateutil.AddDays(end, 7)
	}

	return summaries
}
