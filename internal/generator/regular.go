package generator

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/username/apprentice-calendar/internal/holiday"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
}

// theoryDays enumerates every occurrence of weekday in [from, to]
func theoryDays(weekday time.Weekday, from, to time.Time) (map[string]bool, error) {
	day, ok := rruleWeekdays[weekday]
	if !ok {
		return nil, fmt.Errorf("theory weekday %s is not a business day", weekday)
	}
	if to.Before(from) {
		return map[string]bool{}, nil
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{day},
		Dtstart:   from,
		Until:     to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build theory recurrence: %w", err)
	}

	days := make(map[string]bool)
	for _, occ := range r.All() {
		days[dateutil.Key(occ)] = true
	}
	return days, nil
}

type regularResult struct {
	theory    int
	practical int
	skipped   int // theory days lost to holidays or taken dates
}

// placeRegular fills [from, to] with the weekly pattern: the theory
// weekday gets a theory event, other business days practical events up
// to practicalCap per Monday-anchored week. A theory day that cannot be
// used is not made up later in the week.
func placeRegular(
	s *schedule,
	from, to time.Time,
	weekday time.Weekday,
	practicalCap int,
	picker theoryPicker,
	holidays map[string]holiday.Holiday,
) (regularResult, error) {
	var res regularResult

	theory, err := theoryDays(weekday, from, to)
	if err != nil {
		return res, err
	}

	var weekStart time.Time
	practicalThisWeek := 0

	for day := dateutil.Day(from); !day.After(to); day = dateutil.AddDays(day, 1) {
		if dateutil.IsWeekend(day) {
			continue
		}

		if monday := dateutil.StartOfWeek(day); !monday.Equal(weekStart) {
			weekStart = monday
			practicalThisWeek = 0
		}

		key := dateutil.Key(day)
		_, isHoliday := holidays[key]
		if isHoliday || s.occupied(day) {
			if theory[key] {
				res.skipped++
			}
			continue
		}

		if theory[key] {
			subject, description := picker.next(day)
			s.place(CalendarEvent{
				Date:        day,
				Kind:        KindTheory,
				Description: description,
				Subject:     subject,
			})
			res.theory++
			continue
		}

		if practicalThisWeek >= practicalCap {
			continue
		}
		s.place(CalendarEvent{
			Date:        day,
			Kind:        KindPractical,
			Description: PracticalLabel,
		})
		practicalThisWeek++
		res.practical++
	}

	return res, nil
}
