package generator

import (
	"fmt"
	"time"

	"github.com/username/apprentice-calendar/internal/holiday"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

// placeOnboarding books target Module 1 theory days starting at start.
// Weekends, taken dates and holidays are passed over without counting.
// It returns the placed events in date order.
func placeOnboarding(
	s *schedule,
	start time.Time,
	target int,
	subject string,
	holidays map[string]holiday.Holiday,
	horizonYears int,
) ([]CalendarEvent, error) {
	placed := make([]CalendarEvent, 0, target)
	limit := start.AddDate(horizonYears, 0, 0)

	for day := dateutil.Day(start); len(placed) < target; day = dateutil.AddDays(day, 1) {
		if day.After(limit) {
			return nil, fmt.Errorf("%w: placed %d of %d onboarding days before %s",
				ErrSafetyBoundExceeded, len(placed), target, dateutil.Key(limit))
		}

		if dateutil.IsWeekend(day) || s.occupied(day) {
			continue
		}
		if _, isHoliday := holidays[dateutil.Key(day)]; isHoliday {
			continue
		}

		e := CalendarEvent{
			Date:        day,
			Kind:        KindTheory,
			Description: OnboardingLabel,
			Subject:     subject,
		}
		s.place(e)
		placed = append(placed, e)
	}

	return placed, nil
}
