package generator

import (
	"time"

	"go.uber.org/zap"

	"github.com/username/apprentice-calendar/internal/holiday"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

// projectHolidays places one holiday event per applicable date in
// [from, to]. Dates already taken keep their event and the holiday is
// dropped with a warning. It returns how many holidays were placed.
func projectHolidays(s *schedule, applicable []holiday.Holiday, from, to time.Time, logger *zap.Logger) int {
	placed := 0
	for _, h := range holiday.Between(applicable, from, to) {
		ok := s.place(CalendarEvent{
			Date:        h.Date,
			Kind:        KindHoliday,
			Description: h.Name,
			Level:       h.Level,
		})
		if !ok {
			logger.Warn("Holiday date already booked, keeping existing event",
				zap.String("date", dateutil.Key(h.Date)),
				zap.String("holiday", h.Name))
			continue
		}
		placed++
	}
	return placed
}
