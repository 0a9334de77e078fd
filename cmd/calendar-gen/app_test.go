package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/username/apprentice-calendar/internal/config"
	"github.com/username/apprentice-calendar/internal/export"
	"github.com/username/apprentice-calendar/internal/generator"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

const holidaysYAML = `
holidays:
  - date: "2025-04-21"
    name: Tiradentes
    level: nacional
  - date: "2025-06-24"
    name: São João
    level: municipal
    city: Recife
    state: PE
  - date: "2025-03-06"
    name: Data Magna
    level: estadual
    state: PE
`

const tracksYAML = `
tracks:
  - id: onb
    name: Integração
    type: onboarding
  - id: adm
    name: Assistente Administrativo
    type: specific
    cohort: C1
    subjects:
      - name: Rotinas
        hours: 16
        meetings: 2
`

const studentsYAML = `
students:
  - id: S1
    name: Ana
    cohort: C1
    theory_weekday: quarta
    site: {city: Recife, state: PE}
  - id: S2
    name: Bruno
    cohort: C1
    theory_weekday: monday
    site: {city: São Paulo, state: SP}
  - id: S3
    name: Carla
    cohort: C1
    theory_weekday: sábado
    site: {city: Recife, state: PE}
`

func testApp(t *testing.T) *app {
	t.Helper()
	dir := t.TempDir()

	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	c := &config.Config{
		Policy: config.DefaultPolicy(),
		Data: config.DataConfig{
			Source:       "file",
			HolidaysFile: write("holidays.yaml", holidaysYAML),
			TracksFile:   write("tracks.yaml", tracksYAML),
			StudentsFile: write("students.yaml", studentsYAML),
		},
		Cache: config.CacheConfig{Backend: "memory", TTL: "1m"},
	}
	require.NoError(t, c.Validate())

	a, err := newApp(context.Background(), c, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.close)
	return a
}

func TestApp_Generate(t *testing.T) {
	a := testApp(t)
	ctx := context.Background()

	students, err := a.roster()
	require.NoError(t, err)
	s, err := students.Find("S1")
	require.NoError(t, err)

	cal, err := a.generate(ctx, s,
		dateutil.Date(2025, 2, 3), dateutil.Date(2025, 12, 31),
		generator.SingleVacation(dateutil.Date(2025, 7, 1), 30))
	require.NoError(t, err)

	e, ok := cal.EventOn(dateutil.Date(2025, 6, 24))
	require.True(t, ok)
	assert.Equal(t, generator.KindHoliday, e.Kind)
	assert.Equal(t, "São João", e.Description)

	e, ok = cal.EventOn(dateutil.Date(2025, 3, 6))
	require.True(t, ok)
	assert.Equal(t, "Data Magna", e.Description)

	e, ok = cal.EventOn(dateutil.Date(2025, 2, 3))
	require.True(t, ok)
	assert.Equal(t, "Integração", e.Subject)
}

func TestApp_GenerateAll(t *testing.T) {
	a := testApp(t)
	ctx := context.Background()

	students, err := a.roster()
	require.NoError(t, err)

	var (
		mu  sync.Mutex
		ids []string
	)
	written, err := a.generateAll(ctx, students.All(),
		dateutil.Date(2025, 2, 3), dateutil.Date(2025, 12, 31),
		generator.SingleVacation(dateutil.Date(2025, 7, 1), 30), 2,
		func(cal *generator.GeneratedCalendar) error {
			mu.Lock()
			defer mu.Unlock()
			ids = append(ids, cal.Student.ID)
			return nil
		})

	assert.Equal(t, 2, written)
	sort.Strings(ids)
	assert.Equal(t, []string{"S1", "S2"}, ids)

	require.Error(t, err)
	assert.True(t, errors.Is(err, generator.ErrValidation))
	assert.Contains(t, err.Error(), "student S3")
}

func TestApp_GenerateAll_SinkFailureStops(t *testing.T) {
	a := testApp(t)

	students, err := a.roster()
	require.NoError(t, err)

	sinkErr := errors.New("disk full")
	_, err = a.generateAll(context.Background(), students.All()[:2],
		dateutil.Date(2025, 2, 3), dateutil.Date(2025, 12, 31),
		generator.SingleVacation(dateutil.Date(2025, 7, 1), 30), 1,
		func(*generator.GeneratedCalendar) error { return sinkErr })
	assert.ErrorIs(t, err, sinkErr)
}

func TestApp_WriteCalendar(t *testing.T) {
	a := testApp(t)

	students, err := a.roster()
	require.NoError(t, err)
	s, err := students.Find("S2")
	require.NoError(t, err)

	cal, err := a.generate(context.Background(), s,
		dateutil.Date(2025, 2, 3), dateutil.Date(2025, 12, 31),
		generator.SingleVacation(dateutil.Date(2025, 7, 1), 30))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "S2.ics")
	require.NoError(t, a.writeCalendar(path, export.FormatICS, cal))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "BEGIN:VCALENDAR")
}

func TestApp_CacheInvalidate(t *testing.T) {
	a := testApp(t)
	ctx := context.Background()

	require.NotNil(t, a.holidayCache)
	require.NotNil(t, a.trackCache)

	_, err := a.tracks.TracksForCohort(ctx, "C1")
	require.NoError(t, err)
	require.NoError(t, a.holidayCache.Invalidate(ctx))
	require.NoError(t, a.trackCache.Invalidate(ctx, ""))

	tracks, err := a.tracks.TracksForCohort(ctx, "C1")
	require.NoError(t, err)
	assert.Len(t, tracks, 2)
}
