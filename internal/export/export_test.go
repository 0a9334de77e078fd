package export

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/apprentice-calendar/internal/config"
	"github.com/username/apprentice-calendar/internal/curriculum"
	"github.com/username/apprentice-calendar/internal/generator"
	"github.com/username/apprentice-calendar/internal/holiday"
	"github.com/username/apprentice-calendar/internal/roster"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

func testCalendar(t *testing.T) *generator.GeneratedCalendar {
	t.Helper()

	req := generator.Request{
		Student: roster.Student{
			ID:            "s1",
			Name:          "Ana Souza",
			CohortID:      "c1",
			TheoryWeekday: time.Wednesday,
			Site:          holiday.Location{City: "Recife", State: "PE"},
		},
		ContractStart: dateutil.Date(2025, 2, 3),
		ContractEnd:   dateutil.Date(2025, 9, 30),
		Vacation:      generator.SingleVacation(dateutil.Date(2025, 7, 1), 30),
		Reference: generator.Reference{
			Holidays: []holiday.Holiday{
				{Date: dateutil.Date(2025, 4, 21), Name: "Tiradentes", Level: holiday.LevelNational},
			},
			Tracks: []curriculum.Track{
				{Name: "Integração", Type: curriculum.TrackOnboarding},
				{Name: "Assistente", Type: curriculum.TrackSpecific,
					Subjects: []curriculum.Subject{{Name: "Rotinas", Hours: 16, MeetingCount: 2}}},
			},
		},
	}

	cal, err := generator.New(config.DefaultPolicy(), nil).Generate(context.Background(), req)
	require.NoError(t, err)
	return cal
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"ics", FormatICS, false},
		{"ical", FormatICS, false},
		{"text", FormatText, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	cal := testCalendar(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, cal))

	var doc struct {
		ID            string `json:"id"`
		ContractStart string `json:"contract_start"`
		Events        []struct {
			Date string `json:"date"`
			Kind string `json:"kind"`
		} `json:"events"`
		Vacations []struct {
			End string `json:"end"`
		} `json:"vacations"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, cal.ID.String(), doc.ID)
	assert.Equal(t, "2025-02-03", doc.ContractStart)
	require.Len(t, doc.Events, len(cal.Events))
	assert.Equal(t, "2025-02-03", doc.Events[0].Date)
	assert.Equal(t, "theory", doc.Events[0].Kind)
	assert.Equal(t, "2025-07-30", doc.Vacations[0].End)
}

func TestWriteICS(t *testing.T) {
	cal := testCalendar(t)

	var first, second bytes.Buffer
	require.NoError(t, WriteICS(&first, cal))
	require.NoError(t, WriteICS(&second, cal))

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, len(cal.Events), strings.Count(first.String(), "BEGIN:VEVENT"))

	parsed, err := ical.ParseCalendar(strings.NewReader(first.String()))
	require.NoError(t, err)
	events := parsed.Events()
	require.Len(t, events, len(cal.Events))

	summary := events[0].GetProperty(ical.ComponentPropertySummary)
	require.NotNil(t, summary)
	assert.Equal(t, generator.OnboardingLabel, summary.Value)

	dtstart := events[0].GetProperty(ical.ComponentPropertyDtStart)
	require.NotNil(t, dtstart)
	assert.Equal(t, "20250203", dtstart.Value)
}

func TestWriteSummary(t *testing.T) {
	cal := testCalendar(t)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, cal, 8))
	out := buf.String()

	assert.Contains(t, out, "Ana Souza (s1)")
	assert.Contains(t, out, "Recife/PE")
	assert.Contains(t, out, "Vacation 1:")
	assert.Contains(t, out, "2025-07-01 to 2025-07-30 (30 days)")
	assert.Contains(t, out, generator.OnboardingLabel)
	assert.Contains(t, out, "Assistente")
	assert.Contains(t, out, "Tiradentes")
	assert.Contains(t, out, "Rotinas")
	assert.Regexp(t, `HOLIDAY\s+DATE\s+WEEKDAY\s+LEVEL`, out)
	assert.Regexp(t, `Tiradentes\s+2025-04-21\s+\S+\s+National`, out)
	assert.Regexp(t, `national holidays\s+1\n`, out)
}

func TestWrite_Dispatch(t *testing.T) {
	cal := testCalendar(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatICS, cal, 8))
	assert.True(t, strings.HasPrefix(buf.String(), "BEGIN:VCALENDAR"))
	assert.Equal(t, ".ics", FormatICS.Extension())
	assert.Equal(t, ".json", FormatJSON.Extension())
}
