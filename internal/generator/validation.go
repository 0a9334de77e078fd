package generator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/username/apprentice-calendar/internal/config"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

// ValidationResult lists every rule a candidate timeline violates
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Validate checks a contract timeline and vacation placement against the
// program policy. All rules are evaluated; violations are collected in
// rule order.
func Validate(policy config.PolicyConfig, contractStart, contractEnd time.Time, vacation VacationPolicy, weekday time.Weekday) ValidationResult {
	var errs []string

	start := dateutil.Day(contractStart)
	end := dateutil.Day(contractEnd)

	if !start.Before(end) {
		errs = append(errs, "contract start must be before contract end")
	}

	months := float64(dateutil.DaysBetween(start, end)) / 30
	if months < policy.MinContractMonths {
		errs = append(errs, fmt.Sprintf("contract must last at least %g months (got %.1f)", policy.MinContractMonths, months))
	}
	if months > policy.MaxContractMonths {
		errs = append(errs, fmt.Sprintf("contract cannot exceed %g months (got %.1f)", policy.MaxContractMonths, months))
	}

	windows := vacation.Normalized().Windows
	if len(windows) == 0 || len(windows) > 2 {
		errs = append(errs, fmt.Sprintf("vacation policy must have one or two periods (got %d)", len(windows)))
	}

	for i, w := range windows {
		n := i + 1
		if w.Length <= 0 {
			errs = append(errs, fmt.Sprintf("vacation period %d must have a positive length", n))
			continue
		}
		if w.Start.Before(start) || w.End().After(end) {
			errs = append(errs, fmt.Sprintf("vacation period %d must be within the contract period", n))
		}
		if len(policy.VacationStartMonths) > 0 && !monthAllowed(w.Start.Month(), policy.VacationStartMonths) {
			errs = append(errs, fmt.Sprintf("vacation period %d cannot start in %s (allowed: %s)",
				n, w.Start.Month(), monthList(policy.VacationStartMonths)))
		}
	}

	if len(windows) == 2 && windows[0].Length > 0 && windows[1].Length > 0 && overlaps(windows[0], windows[1]) {
		errs = append(errs, "vacation periods cannot overlap")
	}

	if first, ok := earliest(windows); ok {
		if dateutil.DaysBetween(start, first.Start) < policy.MinVacationOffsetDays {
			errs = append(errs, fmt.Sprintf("vacation must start at least %d days after contract start", policy.MinVacationOffsetDays))
		}
	}

	if weekday < time.Monday || weekday > time.Friday {
		errs = append(errs, fmt.Sprintf("theory weekday must be Monday through Friday (got %s)", weekday))
	}

	return ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

func overlaps(a, b VacationWindow) bool {
	return !a.End().Before(b.Start) && !b.End().Before(a.Start)
}

func earliest(windows []VacationWindow) (VacationWindow, bool) {
	if len(windows) == 0 {
		return VacationWindow{}, false
	}
	first := windows[0]
	for _, w := range windows[1:] {
		if w.Start.Before(first.Start) {
			first = w
		}
	}
	return first, true
}

func monthAllowed(m time.Month, allowed []int) bool {
	for _, a := range allowed {
		if int(m) == a {
			return true
		}
	}
	return false
}

func monthList(months []int) string {
	sorted := append([]int(nil), months...)
	sort.Ints(sorted)
	names := make([]string, len(sorted))
	for i, m := range sorted {
		names[i] = time.Month(m).String()
	}
	return strings.Join(names, ", ")
}
