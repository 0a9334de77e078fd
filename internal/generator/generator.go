// Package generator builds an apprentice's day-by-day program calendar
// from the contract timeline, vacation policy and reference data.
package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/username/apprentice-calendar/internal/config"
	"github.com/username/apprentice-calendar/internal/curriculum"
	"github.com/username/apprentice-calendar/internal/holiday"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

// calendarNamespace scopes the deterministic calendar ids
var calendarNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("apprentice-calendar/calendar"))

// Generator builds calendars under a fixed policy. It holds no state
// between calls and is safe for concurrent use.
type Generator struct {
	policy config.PolicyConfig
	logger *zap.Logger
}

// New creates a generator. A nil logger disables logging.
func New(policy config.PolicyConfig, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		policy: policy,
		logger: logger,
	}
}

// Policy returns the policy the generator enforces
func (g *Generator) Policy() config.PolicyConfig {
	return g.policy
}

// Validate checks a request's timeline without generating anything
func (g *Generator) Validate(req Request) ValidationResult {
	return Validate(g.policy, req.ContractStart, req.ContractEnd, req.Vacation, req.Student.TheoryWeekday)
}

// Generate builds the full calendar for one student. Either a complete
// calendar or an error is returned, never a partial result.
func (g *Generator) Generate(ctx context.Context, req Request) (*GeneratedCalendar, error) {
	start := dateutil.Day(req.ContractStart)
	end := dateutil.Day(req.ContractEnd)
	student := req.Student

	logger := g.logger.With(zap.String("student", student.ID))
	logger.Info("Starting calendar generation",
		zap.String("contract_start", dateutil.Key(start)),
		zap.String("contract_end", dateutil.Key(end)),
		zap.String("vacation_mode", req.Vacation.Mode()),
		zap.String("theory_strategy", g.policy.TheoryStrategy))

	if err := g.policy.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	// 1. Validate the timeline
	if res := g.Validate(req); !res.Valid {
		logger.Warn("Calendar request failed validation", zap.Strings("errors", res.Errors))
		return nil, &ValidationError{Errors: res.Errors}
	}

	// 2. Reference data
	if req.Reference.Holidays == nil {
		return nil, fmt.Errorf("%w: holidays not provided", ErrReferenceDataMissing)
	}
	if req.Reference.Tracks == nil {
		return nil, fmt.Errorf("%w: tracks not provided", ErrReferenceDataMissing)
	}
	ref := req.Reference.Snapshot()

	tracks := curriculum.ForCohort(ref.Tracks, student.CohortID)
	for _, problem := range curriculum.ValidateTracks(ref.Tracks, student.CohortID) {
		logger.Warn("Track configuration problem",
			zap.String("cohort", student.CohortID),
			zap.String("problem", problem))
	}

	// 3. Holidays observed where the student works
	location := student.HolidayLocation()
	applicable := holiday.Applicable(ref.Holidays, location)
	holidayDates := holiday.DateSet(applicable)
	logger.Debug("Holidays filtered",
		zap.String("location", location.String()),
		zap.Int("total", len(ref.Holidays)),
		zap.Int("applicable", len(applicable)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sched := newSchedule()

	// 4. Vacation
	for _, e := range vacationEvents(req.Vacation) {
		sched.place(e)
	}
	logger.Debug("Vacation placed", zap.Int("days", sched.len()))

	// 5. Module 1
	onboarding, err := placeOnboarding(sched, start, g.policy.OnboardingDays,
		onboardingSubject(tracks), holidayDates, g.policy.SafetyHorizonYears)
	if err != nil {
		return nil, fmt.Errorf("failed to place onboarding: %w", err)
	}
	lastOnboarding := onboarding[len(onboarding)-1].Date
	logger.Debug("Onboarding placed",
		zap.String("first", dateutil.Key(onboarding[0].Date)),
		zap.String("last", dateutil.Key(lastOnboarding)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 6. Regular module
	picker := newTheoryPicker(g.policy, tracks)
	regular, err := placeRegular(sched, dateutil.AddDays(lastOnboarding, 1), end,
		student.TheoryWeekday, g.policy.PracticalDaysPerWeek, picker, holidayDates)
	if err != nil {
		return nil, fmt.Errorf("failed to place regular module: %w", err)
	}
	fields := []zap.Field{
		zap.Int("theory", regular.theory),
		zap.Int("practical", regular.practical),
		zap.Int("theory_skipped", regular.skipped),
	}
	if mc, ok := picker.(*meetingCountPicker); ok {
		fields = append(fields, zap.Int("meetings_unscheduled", mc.remaining()))
	}
	logger.Debug("Regular module placed", fields...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 7. Holiday events
	holidaysPlaced := projectHolidays(sched, applicable, start, end, logger)

	// 8. Summaries
	summaries := summarizeTracks(onboarding, tracks, g.policy.HoursPerDay, g.policy.WeeklyHourBudget)

	windows := req.Vacation.Normalized().Windows
	cal := &GeneratedCalendar{
		ID:              calendarID(req, g.policy.TheoryStrategy),
		Student:         student,
		HolidayLocation: location,
		ContractStart:   start,
		ContractEnd:     end,
		Vacations:       windows,
		TheoryStrategy:  g.policy.TheoryStrategy,
		Events:          sched.events(),
		TrackSummaries:  summaries,
	}

	logger.Info("Calendar generated",
		zap.String("id", cal.ID.String()),
		zap.Int("events", len(cal.Events)),
		zap.Int("holidays", holidaysPlaced),
		zap.Int("tracks", len(summaries)))

	return cal, nil
}

func onboardingSubject(tracks []curriculum.Track) string {
	if ob := curriculum.OfType(tracks, curriculum.TrackOnboarding); len(ob) > 0 && ob[0].Name != "" {
		return ob[0].Name
	}
	return OnboardingSubject
}

// calendarID derives a stable id from the request so repeated runs for
// the same student and timeline produce the same id.
func calendarID(req Request, strategy string) uuid.UUID {
	parts := []string{
		req.Student.ID,
		req.Student.CohortID,
		req.Student.TheoryWeekday.String(),
		req.Student.HolidayLocation().String(),
		dateutil.Key(req.ContractStart),
		dateutil.Key(req.ContractEnd),
		strategy,
	}
	for _, w := range req.Vacation.Windows {
		parts = append(parts, fmt.Sprintf("%s+%d", dateutil.Key(w.Start), w.Length))
	}
	return uuid.NewSHA1(calendarNamespace, []byte(strings.Join(parts, "|")))
}
