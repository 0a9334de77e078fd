package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/apprentice-calendar/internal/config"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

func TestValidate(t *testing.T) {
	start := dateutil.Date(2025, 2, 3)
	end := dateutil.Date(2026, 7, 31)
	split := SplitVacation(dateutil.Date(2025, 6, 2), 15, dateutil.Date(2025, 12, 1), 15)

	tests := []struct {
		name       string
		start, end time.Time
		vacation   VacationPolicy
		weekday    time.Weekday
		wantErrs   []string
	}{
		{
			name: "valid split", start: start, end: end, vacation: split, weekday: time.Wednesday,
		},
		{
			name: "valid single", start: start, end: end,
			vacation: SingleVacation(dateutil.Date(2025, 7, 1), 30), weekday: time.Friday,
		},
		{
			name: "start after end", start: end, end: start, vacation: split, weekday: time.Wednesday,
			wantErrs: []string{
				"contract start must be before contract end",
				"contract must last at least 6 months (got -18.1)",
				"vacation period 1 must be within the contract period",
				"vacation period 2 must be within the contract period",
				"vacation must start at least 90 days after contract start",
			},
		},
		{
			name: "too short", start: start, end: dateutil.Date(2025, 7, 1),
			vacation: SingleVacation(dateutil.Date(2025, 6, 2), 15), weekday: time.Wednesday,
			wantErrs: []string{"contract must last at least 6 months (got 4.9)"},
		},
		{
			name: "too long", start: start, end: dateutil.Date(2027, 6, 1),
			vacation: split, weekday: time.Wednesday,
			wantErrs: []string{"contract cannot exceed 24 months (got 28.3)"},
		},
		{
			name: "overlapping blocks", start: start, end: end,
			vacation: SplitVacation(dateutil.Date(2025, 6, 2), 15, dateutil.Date(2025, 6, 16), 15),
			weekday:  time.Wednesday,
			wantErrs: []string{"vacation periods cannot overlap"},
		},
		{
			name: "overlap hidden by time of day", start: start, end: end,
			vacation: VacationPolicy{Windows: []VacationWindow{
				{Start: dateutil.Date(2025, 6, 2), Length: 15},
				{Start: time.Date(2025, 6, 16, 15, 0, 0, 0, time.UTC), Length: 15},
			}},
			weekday:  time.Wednesday,
			wantErrs: []string{"vacation periods cannot overlap"},
		},
		{
			name: "adjacent blocks", start: start, end: end,
			vacation: SplitVacation(dateutil.Date(2025, 6, 2), 15, dateutil.Date(2025, 6, 17), 15),
			weekday:  time.Wednesday,
		},
		{
			name: "vacation too early", start: dateutil.Date(2025, 4, 1), end: end,
			vacation: split, weekday: time.Wednesday,
			wantErrs: []string{"vacation must start at least 90 days after contract start"},
		},
		{
			name: "month not allowed", start: start, end: end,
			vacation: SingleVacation(dateutil.Date(2025, 8, 4), 30), weekday: time.Wednesday,
			wantErrs: []string{"vacation period 1 cannot start in August (allowed: January, June, July, December)"},
		},
		{
			name: "vacation past contract end", start: start, end: end,
			vacation: SingleVacation(dateutil.Date(2026, 7, 20), 30), weekday: time.Wednesday,
			wantErrs: []string{"vacation period 1 must be within the contract period"},
		},
		{
			name: "zero length", start: start, end: end,
			vacation: SingleVacation(dateutil.Date(2025, 6, 2), 0), weekday: time.Wednesday,
			wantErrs: []string{"vacation period 1 must have a positive length"},
		},
		{
			name: "no vacation", start: start, end: end, vacation: VacationPolicy{}, weekday: time.Wednesday,
			wantErrs: []string{"vacation policy must have one or two periods (got 0)"},
		},
		{
			name: "weekend theory day", start: start, end: end, vacation: split, weekday: time.Saturday,
			wantErrs: []string{"theory weekday must be Monday through Friday (got Saturday)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(config.DefaultPolicy(), tt.start, tt.end, tt.vacation, tt.weekday)
			assert.Equal(t, len(tt.wantErrs) == 0, res.Valid)
			assert.Equal(t, tt.wantErrs, res.Errors)
		})
	}
}

func TestValidate_AnyMonthWhenUnrestricted(t *testing.T) {
	policy := config.DefaultPolicy()
	policy.VacationStartMonths = nil

	res := Validate(policy, dateutil.Date(2025, 2, 3), dateutil.Date(2026, 7, 31),
		SingleVacation(dateutil.Date(2025, 8, 4), 30), time.Monday)
	assert.True(t, res.Valid, res.Errors)
}

func TestVacationWindow(t *testing.T) {
	w := VacationWindow{Start: dateutil.Date(2025, 6, 2), Length: 15}

	assert.Equal(t, "2025-06-16", dateutil.Key(w.End()))
	assert.True(t, w.Contains(dateutil.Date(2025, 6, 2)))
	assert.True(t, w.Contains(dateutil.Date(2025, 6, 16)))
	assert.False(t, w.Contains(dateutil.Date(2025, 6, 17)))
	assert.Equal(t, "split", SplitVacation(w.Start, 15, dateutil.Date(2025, 12, 1), 15).Mode())
	assert.Equal(t, "single", SingleVacation(w.Start, 30).Mode())
}

func TestVacationPolicy_Normalized(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	raw := VacationPolicy{Windows: []VacationWindow{
		{Start: time.Date(2025, 12, 1, 23, 30, 0, 0, brt), Length: 15},
	}}

	got := raw.Normalized()
	require.Len(t, got.Windows, 1)
	assert.Equal(t, dateutil.Date(2025, 12, 1), got.Windows[0].Start)
	assert.Equal(t, 15, got.Windows[0].Length)
	assert.Equal(t, brt, raw.Windows[0].Start.Location(), "input is left untouched")
	assert.Nil(t, VacationPolicy{}.Normalized().Windows)
}

func TestVacationEvents(t *testing.T) {
	events := vacationEvents(SingleVacation(dateutil.Date(2025, 7, 1), 30))

	assert.Len(t, events, 30)
	assert.Equal(t, "2025-07-01", dateutil.Key(events[0].Date))
	assert.Equal(t, "2025-07-30", dateutil.Key(events[29].Date))
	assert.Equal(t, VacationLabel, events[0].Description)
	assert.Equal(t, 1, events[0].Block)
}
