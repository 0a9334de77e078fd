package generator

import (
	"fmt"

	"github.com/username/apprentice-calendar/pkg/dateutil"
)

// vacationEvents emits one vacation event per calendar day of each
// window. Vacation is placed first and is never checked for conflicts.
func vacationEvents(policy VacationPolicy) []CalendarEvent {
	total := 0
	for _, w := range policy.Windows {
		total += w.Length
	}

	events := make([]CalendarEvent, 0, total)
	split := len(policy.Windows) > 1

	for i, w := range policy.Windows {
		block := i + 1
		description := VacationLabel
		if split {
			description = fmt.Sprintf("%s - Block %d", VacationLabel, block)
		}

		for day := 0; day < w.Length; day++ {
			events = append(events, CalendarEvent{
				Date:        dateutil.AddDays(w.Start, day),
				Kind:        KindVacation,
				Description: description,
				Block:       block,
			})
		}
	}

	return events
}
