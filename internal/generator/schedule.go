package generator

import (
	"sort"
	"time"

	"github.com/username/apprentice-calendar/pkg/dateutil"
)

// schedule holds at most one event per date. Events placed first win.
type schedule struct {
	byDate map[string]CalendarEvent
}

func newSchedule() *schedule {
	return &schedule{byDate: make(map[string]CalendarEvent)}
}

func (s *schedule) occupied(date time.Time) bool {
	_, ok := s.byDate[dateutil.Key(date)]
	return ok
}

// place stores e unless its date is taken and reports whether it did
func (s *schedule) place(e CalendarEvent) bool {
	key := dateutil.Key(e.Date)
	if _, ok := s.byDate[key]; ok {
		return false
	}
	e.Date = dateutil.Day(e.Date)
	s.byDate[key] = e
	return true
}

func (s *schedule) len() int {
	return len(s.byDate)
}

// events returns the placed events in ascending date order
func (s *schedule) events() []CalendarEvent {
	result := make([]CalendarEvent, 0, len(s.byDate))
	for _, e := range s.byDate {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result
}
