package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/username/apprentice-calendar/internal/generator"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

// parseVacations turns "2025-06-02:15" style flags into a vacation policy.
// One flag gives a single block, two give a split.
func parseVacations(specs []string) (generator.VacationPolicy, error) {
	windows := make([]generator.VacationWindow, 0, len(specs))
	for _, spec := range specs {
		w, err := parseVacation(spec)
		if err != nil {
			return generator.VacationPolicy{}, err
		}
		windows = append(windows, w)
	}

	switch len(windows) {
	case 1:
		return generator.SingleVacation(windows[0].Start, windows[0].Length), nil
	case 2:
		return generator.SplitVacation(windows[0].Start, windows[0].Length, windows[1].Start, windows[1].Length), nil
	}
	return generator.VacationPolicy{Windows: windows}, nil
}

func parseVacation(spec string) (generator.VacationWindow, error) {
	i := strings.LastIndex(spec, ":")
	if i < 0 {
		return generator.VacationWindow{}, fmt.Errorf("invalid vacation %q, want START:DAYS", spec)
	}

	start, err := dateutil.ParseDate(spec[:i])
	if err != nil {
		return generator.VacationWindow{}, fmt.Errorf("invalid vacation start in %q: %w", spec, err)
	}
	days, err := strconv.Atoi(strings.TrimSpace(spec[i+1:]))
	if err != nil {
		return generator.VacationWindow{}, fmt.Errorf("invalid vacation length in %q: %w", spec, err)
	}

	return generator.VacationWindow{Start: start, Length: days}, nil
}

// parseRange parses the --start/--end pair
func parseRange(from, to string) (time.Time, time.Time, error) {
	start, err := dateutil.ParseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := dateutil.ParseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", err)
	}
	return start, end, nil
}
