package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/username/apprentice-calendar/internal/export"
	"github.com/username/apprentice-calendar/internal/generator"
	"github.com/username/apprentice-calendar/internal/roster"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

func generateCmd() *cobra.Command {
	var (
		studentID string
		startStr  string
		endStr    string
		vacations []string
		format    string
		outPath   string
		all       bool
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a student's program calendar",
		Example: `  calendar-gen generate --student s1 --start 2025-02-03 --end 2026-07-31 \
    --vacation 2025-06-02:15 --vacation 2025-12-01:15 --format ics --out s1.ics
  calendar-gen generate --all --start 2025-02-03 --end 2026-07-31 --vacation 2025-07-01:30 --out calendars/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && studentID == "" {
				return fmt.Errorf("either --student or --all is required")
			}

			start, end, err := parseRange(startStr, endStr)
			if err != nil {
				return err
			}
			vacation, err := parseVacations(vacations)
			if err != nil {
				return err
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			students, err := a.roster()
			if err != nil {
				return err
			}

			if !all {
				s, err := students.Find(studentID)
				if err != nil {
					return err
				}

				cal, err := a.generate(ctx, s, start, end, vacation)
				if err != nil {
					return err
				}
				if outPath == "" {
					return export.Write(os.Stdout, f, cal, cfg.Policy.HoursPerDay)
				}
				if err := a.writeCalendar(outPath, f, cal); err != nil {
					return err
				}
				fmt.Printf("✅ Calendar for %s written to %s (%d events)\n", s.ID, outPath, len(cal.Events))
				return nil
			}

			if outPath == "" {
				outPath = "calendars"
			}
			if err := os.MkdirAll(outPath, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			written, err := a.generateAll(ctx, students.All(), start, end, vacation, workers, func(cal *generator.GeneratedCalendar) error {
				return a.writeCalendar(filepath.Join(outPath, cal.Student.ID+f.Extension()), f, cal)
			})
			fmt.Printf("📋 %d of %d calendars written to %s\n", written, len(students.All()), outPath)
			return err
		},
	}

	cmd.Flags().StringVarP(&studentID, "student", "s", "", "Student id from the students file")
	cmd.Flags().StringVar(&startStr, "start", "", "Contract start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endStr, "end", "", "Contract end date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&vacations, "vacation", nil, "Vacation block START:DAYS, repeat for a split vacation")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, ics or text")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (directory with --all)")
	cmd.Flags().BoolVar(&all, "all", false, "Generate for every student in the students file")
	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent generations with --all")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("vacation")

	return cmd
}

func (a *app) generate(ctx context.Context, s roster.Student, start, end time.Time, vacation generator.VacationPolicy) (*generator.GeneratedCalendar, error) {
	ref, err := a.reference(ctx, s, start, end)
	if err != nil {
		return nil, err
	}
	return a.generator.Generate(ctx, generator.Request{
		Student:       s,
		ContractStart: start,
		ContractEnd:   end,
		Vacation:      vacation,
		Reference:     ref,
	})
}

// generateAll builds calendars for every student with at most workers in
// flight. A student whose calendar cannot be generated is reported and
// skipped; a failing sink stops the batch.
func (a *app) generateAll(
	ctx context.Context,
	students []roster.Student,
	start, end time.Time,
	vacation generator.VacationPolicy,
	workers int,
	sink func(*generator.GeneratedCalendar) error,
) (int, error) {
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var (
		mu      sync.Mutex
		failed  error
		written int
	)

	for _, s := range students {
		s := s
		g.Go(func() error {
			cal, err := a.generate(ctx, s, start, end, vacation)
			if err != nil {
				a.logger.Warn("Calendar generation failed",
					zap.String("student", s.ID),
					zap.Error(err))
				mu.Lock()
				failed = multierr.Append(failed, fmt.Errorf("student %s: %w", s.ID, err))
				mu.Unlock()
				return nil
			}

			if err := sink(cal); err != nil {
				return err
			}

			mu.Lock()
			written++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return written, err
	}
	return written, failed
}

func (a *app) writeCalendar(path string, f export.Format, cal *generator.GeneratedCalendar) error {
	var buf bytes.Buffer
	if err := export.Write(&buf, f, cal, a.cfg.Policy.HoursPerDay); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.logger.Info("Calendar written",
		zap.String("student", cal.Student.ID),
		zap.String("file", path),
		zap.String("start", dateutil.Key(cal.ContractStart)))
	return nil
}
