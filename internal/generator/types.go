package generator

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/username/apprentice-calendar/internal/curriculum"
	"github.com/username/apprentice-calendar/internal/holiday"
	"github.com/username/apprentice-calendar/internal/roster"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

// EventKind is the closed set of day assignments
type EventKind string

const (
	KindTheory    EventKind = "theory"
	KindPractical EventKind = "practical"
	KindHoliday   EventKind = "holiday"
	KindVacation  EventKind = "vacation"
)

// Event labels
const (
	OnboardingLabel   = "Module 1 - Onboarding"
	OnboardingSubject = "Onboarding Track"
	TheoryLabel       = "Theory Class"
	PracticalLabel    = "Practical Activity at Company"
	VacationLabel     = "Vacation"
)

// CalendarEvent is one day's assignment
type CalendarEvent struct {
	Date        time.Time
	Kind        EventKind
	Description string
	Subject     string
	Block       int           // vacation block number, 0 for other kinds
	Level       holiday.Level // holiday jurisdiction, empty for other kinds
}

type eventJSON struct {
	Date        string        `json:"date"`
	Kind        EventKind     `json:"kind"`
	Description string        `json:"description"`
	Subject     string        `json:"subject,omitempty"`
	Block       int           `json:"block,omitempty"`
	Level       holiday.Level `json:"level,omitempty"`
}

// MarshalJSON writes the date as an ISO day
func (e CalendarEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventJSON{
		Date:        dateutil.Key(e.Date),
		Kind:        e.Kind,
		Description: e.Description,
		Subject:     e.Subject,
		Block:       e.Block,
		Level:       e.Level,
	})
}

// VacationWindow is one contiguous vacation block
type VacationWindow struct {
	Start  time.Time
	Length int // calendar days, start included
}

// End returns the last vacation day
func (w VacationWindow) End() time.Time {
	return dateutil.AddDays(w.Start, w.Length-1)
}

// Contains reports whether date falls inside the window
func (w VacationWindow) Contains(date time.Time) bool {
	return w.Length > 0 && dateutil.InRange(date, w.Start, w.End())
}

// MarshalJSON writes start, end and length
func (w VacationWindow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start  string `json:"start"`
		End    string `json:"end"`
		Length int    `json:"length"`
	}{dateutil.Key(w.Start), dateutil.Key(w.End()), w.Length})
}

// VacationPolicy is either a single block or a split of two blocks
type VacationPolicy struct {
	Windows []VacationWindow
}

// SingleVacation is one block of length days, e.g. 30
func SingleVacation(start time.Time, length int) VacationPolicy {
	return VacationPolicy{Windows: []VacationWindow{{Start: dateutil.Day(start), Length: length}}}
}

// SplitVacation is two blocks, e.g. 15+15
func SplitVacation(start1 time.Time, length1 int, start2 time.Time, length2 int) VacationPolicy {
	return VacationPolicy{Windows: []VacationWindow{
		{Start: dateutil.Day(start1), Length: length1},
		{Start: dateutil.Day(start2), Length: length2},
	}}
}

// Mode returns "single" or "split"
func (p VacationPolicy) Mode() string {
	if len(p.Windows) > 1 {
		return "split"
	}
	return "single"
}

// Normalized returns a copy with every window start moved to its
// calendar day at UTC midnight.
func (p VacationPolicy) Normalized() VacationPolicy {
	if p.Windows == nil {
		return p
	}
	windows := make([]VacationWindow, len(p.Windows))
	for i, w := range p.Windows {
		windows[i] = VacationWindow{Start: dateutil.Day(w.Start), Length: w.Length}
	}
	return VacationPolicy{Windows: windows}
}

// TrackSummary is the reporting rollup of one curriculum track
type TrackSummary struct {
	Name  string
	Type  curriculum.TrackType
	Start time.Time
	End   time.Time
	Hours float64
}

// MarshalJSON writes the dates as ISO days
func (s TrackSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name  string               `json:"name"`
		Type  curriculum.TrackType `json:"type"`
		Start string               `json:"start"`
		End   string               `json:"end"`
		Hours float64              `json:"hours"`
	}{s.Name, s.Type, dateutil.Key(s.Start), dateutil.Key(s.End), s.Hours})
}

// GeneratedCalendar is the complete output of one generation call
type GeneratedCalendar struct {
	ID              uuid.UUID
	Student         roster.Student
	HolidayLocation holiday.Location
	ContractStart   time.Time
	ContractEnd     time.Time
	Vacations       []VacationWindow
	TheoryStrategy  string
	Events          []CalendarEvent // ascending by date, one per date
	TrackSummaries  []TrackSummary
}

// MarshalJSON writes the contract dates as ISO days
func (c GeneratedCalendar) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID              string           `json:"id"`
		Student         roster.Student   `json:"student"`
		HolidayLocation holiday.Location `json:"holiday_location"`
		ContractStart   string           `json:"contract_start"`
		ContractEnd     string           `json:"contract_end"`
		Vacations       []VacationWindow `json:"vacations"`
		TheoryStrategy  string           `json:"theory_strategy"`
		Events          []CalendarEvent  `json:"events"`
		TrackSummaries  []TrackSummary   `json:"track_summaries"`
	}{
		ID:              c.ID.String(),
		Student:         c.Student,
		HolidayLocation: c.HolidayLocation,
		ContractStart:   dateutil.Key(c.ContractStart),
		ContractEnd:     dateutil.Key(c.ContractEnd),
		Vacations:       c.Vacations,
		TheoryStrategy:  c.TheoryStrategy,
		Events:          c.Events,
		TrackSummaries:  c.TrackSummaries,
	})
}

// EventOn returns the event placed on date, if any
func (c *GeneratedCalendar) EventOn(date time.Time) (CalendarEvent, bool) {
	for _, e := range c.Events {
		if dateutil.IsSameDay(e.Date, date) {
			return e, true
		}
	}
	return CalendarEvent{}, false
}

// Stats counts a calendar's events
type Stats struct {
	Total           int
	ByKind          map[EventKind]int
	TheoryHours     float64
	SubjectCount    map[string]int
	HolidaysByLevel map[holiday.Level]int
}

// Stats counts events per kind, theory sessions per subject and placed
// holidays per level
func (c *GeneratedCalendar) Stats(hoursPerDay float64) Stats {
	s := Stats{
		ByKind:          make(map[EventKind]int),
		SubjectCount:    make(map[string]int),
		HolidaysByLevel: make(map[holiday.Level]int),
	}
	for _, e := range c.Events {
		s.Total++
		s.ByKind[e.Kind]++
		switch e.Kind {
		case KindTheory:
			s.TheoryHours += hoursPerDay
			if e.Subject != "" {
				s.SubjectCount[e.Subject]++
			}
		case KindHoliday:
			s.HolidaysByLevel[e.Level]++
		}
	}
	return s
}

// Reference is the caller-owned reference data for one generation call.
// A nil slice means "not configured"; an empty one means "none apply".
type Reference struct {
	Holidays []holiday.Holiday
	Tracks   []curriculum.Track
}

// Snapshot copies the reference data so the call is isolated from
// concurrent updates by the caller.
func (r Reference) Snapshot() Reference {
	var holidays []holiday.Holiday
	if r.Holidays != nil {
		holidays = append(make([]holiday.Holiday, 0, len(r.Holidays)), r.Holidays...)
	}
	return Reference{
		Holidays: holidays,
		Tracks:   curriculum.Clone(r.Tracks),
	}
}

// Request is the input of Generate
type Request struct {
	Student       roster.Student
	ContractStart time.Time
	ContractEnd   time.Time
	Vacation      VacationPolicy
	Reference     Reference
}
