// Package export renders generated calendars as JSON, iCalendar or a
// plain text report.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/username/apprentice-calendar/internal/generator"
	"github.com/username/apprentice-calendar/internal/holiday"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

// Format is an output encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatICS  Format = "ics"
	FormatText Format = "text"
)

// ParseFormat accepts json, ics (or ical) and text
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "ics", "ical":
		return FormatICS, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown output format: %q", s)
}

// Extension returns the file extension for the format
func (f Format) Extension() string {
	switch f {
	case FormatICS:
		return ".ics"
	case FormatText:
		return ".txt"
	default:
		return ".json"
	}
}

// Write renders cal in the given format
func Write(w io.Writer, f Format, cal *generator.GeneratedCalendar, hoursPerDay float64) error {
	switch f {
	case FormatICS:
		return WriteICS(w, cal)
	case FormatText:
		return WriteSummary(w, cal, hoursPerDay)
	default:
		return WriteJSON(w, cal)
	}
}

// WriteJSON writes the calendar as indented JSON
func WriteJSON(w io.Writer, cal *generator.GeneratedCalendar) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

var categories = map[generator.EventKind]string{
	generator.KindTheory:    "THEORY",
	generator.KindPractical: "PRACTICAL",
	generator.KindHoliday:   "HOLIDAY",
	generator.KindVacation:  "VACATION",
}

// WriteICS writes one all-day VEVENT per calendar event. UIDs and DTSTAMP
// are derived from the calendar so repeated exports are identical.
func WriteICS(w io.Writer, cal *generator.GeneratedCalendar) error {
	out := ical.NewCalendar()
	out.SetMethod(ical.MethodPublish)
	out.SetProductId("-//apprentice-calendar//calendar-gen//EN")
	out.SetName(fmt.Sprintf("%s - program calendar", cal.Student.Name))
	out.SetXWRCalName(fmt.Sprintf("%s - program calendar", cal.Student.Name))

	stamp := cal.ContractStart
	for _, e := range cal.Events {
		key := dateutil.Key(e.Date)

		ev := out.AddEvent(fmt.Sprintf("%s-%s@apprentice-calendar", cal.ID, key))
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(e.Date)
		ev.SetAllDayEndAt(dateutil.AddDays(e.Date, 1))
		ev.SetSummary(e.Description)
		if e.Subject != "" {
			ev.SetDescription(e.Subject)
		}
		ev.AddProperty(ical.ComponentPropertyCategories, categories[e.Kind])
		if e.Kind == generator.KindHoliday || e.Kind == generator.KindVacation {
			ev.SetProperty(ical.ComponentPropertyTransp, "TRANSPARENT")
		}
	}

	if _, err := io.WriteString(w, out.Serialize()); err != nil {
		return fmt.Errorf("failed to write ics: %w", err)
	}
	return nil
}

// WriteSummary writes a human readable report: contract, vacations, track
// timeline, event counts and the holidays that fall on the calendar.
func WriteSummary(w io.Writer, cal *generator.GeneratedCalendar, hoursPerDay float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Student:\t%s (%s)\n", cal.Student.Name, cal.Student.ID)
	fmt.Fprintf(tw, "Cohort:\t%s\n", cal.Student.CohortID)
	fmt.Fprintf(tw, "Theory day:\t%s\n", cal.Student.TheoryWeekday)
	fmt.Fprintf(tw, "Holidays observed in:\t%s\n", cal.HolidayLocation)
	fmt.Fprintf(tw, "Contract:\t%s to %s\n", dateutil.Key(cal.ContractStart), dateutil.Key(cal.ContractEnd))
	fmt.Fprintf(tw, "Theory strategy:\t%s\n", cal.TheoryStrategy)
	for i, v := range cal.Vacations {
		fmt.Fprintf(tw, "Vacation %d:\t%s to %s (%d days)\n", i+1, dateutil.Key(v.Start), dateutil.Key(v.End()), v.Length)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "TRACK\tTYPE\tSTART\tEND\tHOURS")
	for _, s := range cal.TrackSummaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g\n", s.Name, s.Type, dateutil.Key(s.Start), dateutil.Key(s.End), s.Hours)
	}

	stats := cal.Stats(hoursPerDay)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "KIND\tDAYS")
	for _, k := range []generator.EventKind{generator.KindTheory, generator.KindPractical, generator.KindHoliday, generator.KindVacation} {
		fmt.Fprintf(tw, "%s\t%d\n", k, stats.ByKind[k])
	}
	fmt.Fprintf(tw, "total\t%d\n", stats.Total)
	fmt.Fprintf(tw, "theory hours\t%g\n", stats.TheoryHours)

	if len(stats.SubjectCount) > 0 {
		subjects := make([]string, 0, len(stats.SubjectCount))
		for s := range stats.SubjectCount {
			subjects = append(subjects, s)
		}
		sort.Strings(subjects)

		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "SUBJECT\tSESSIONS")
		for _, s := range subjects {
			fmt.Fprintf(tw, "%s\t%d\n", s, stats.SubjectCount[s])
		}
	}

	holidays := make([]generator.CalendarEvent, 0)
	for _, e := range cal.Events {
		if e.Kind == generator.KindHoliday {
			holidays = append(holidays, e)
		}
	}
	if len(holidays) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "HOLIDAY\tDATE\tWEEKDAY\tLEVEL")
		for _, h := range holidays {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", h.Description, dateutil.Key(h.Date), weekdayShort(h.Date), h.Level.Label())
		}
		for _, l := range []holiday.Level{holiday.LevelNational, holiday.LevelState, holiday.LevelMunicipal, holiday.LevelOptional} {
			if n := stats.HolidaysByLevel[l]; n > 0 {
				fmt.Fprintf(tw, "%s holidays\t%d\n", strings.ToLower(l.Label()), n)
			}
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func weekdayShort(d time.Time) string {
	return d.Weekday().String()[:3]
}
