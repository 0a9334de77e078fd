// Package dateutil holds the calendar-day helpers shared by the generator
// and the reference-data providers. All dates are normalized to UTC
// midnight so that two values for the same calendar day compare equal.
package dateutil

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Layout is the ISO day layout used for keys and serialization.
const Layout = "2006-01-02"

// Date builds a UTC midnight date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Day truncates t to the calendar day it falls on, keeping the wall-clock
// date of its own location and moving it to UTC midnight.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a day by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// StartOfWeek returns the most recent Monday (or the day itself when it is a Monday)
func StartOfWeek(date time.Time) time.Time {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday = 7
	}
	return AddDays(date, -(weekday - 1))
}

// ISOWeek returns the ISO year and week number for the given date
func ISOWeek(date time.Time) (year int, week int) {
	return date.ISOWeek()
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	return !IsWeekday(date)
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return Day(date1).Equal(Day(date2))
}

// DaysBetween returns the number of whole calendar days from a to b.
// The result is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(Day(b).Sub(Day(a)).Hours() / 24))
}

// Key formats a date as its ISO day string. Used as a map key for
// occupancy and holiday lookups.
func Key(date time.Time) string {
	return date.Format(Layout)
}

// InRange reports whether date lies within [from, to], both inclusive.
func InRange(date, from, to time.Time) bool {
	d := Day(date)
	return !d.Before(Day(from)) && !d.After(Day(to))
}

// ParseDate parses a date string in the supported formats and returns it
// normalized to UTC midnight.
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		Layout,
		"02/01/2006",
		"02.01.2006",
		"2006-01-02T15:04:05",
		time.RFC3339,
	}

	dateStr = strings.TrimSpace(dateStr)
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return Day(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported date format: %q", dateStr)
}

// ParseWeekday accepts English and Portuguese weekday names, case-insensitive,
// full or abbreviated to three letters.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "monday", "mon", "segunda", "seg":
		return time.Monday, nil
	case "tuesday", "tue", "terça", "terca", "ter":
		return time.Tuesday, nil
	case "wednesday", "wed", "quarta", "qua":
		return time.Wednesday, nil
	case "thursday", "thu", "quinta", "qui":
		return time.Thursday, nil
	case "friday", "fri", "sexta", "sex":
		return time.Friday, nil
	case "saturday", "sat", "sábado", "sabado", "sab":
		return time.Saturday, nil
	case "sunday", "sun", "domingo", "dom":
		return time.Sunday, nil
	}
	return time.Sunday, fmt.Errorf("unknown weekday: %q", s)
}
