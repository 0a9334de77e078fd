package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/username/apprentice-calendar/internal/holiday"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

func holidaysCmd() *cobra.Command {
	var (
		city    string
		state   string
		ibge    string
		fromStr string
		toStr   string
	)

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List the holidays observed in a city",
		RunE: func(cmd *cobra.Command, args []string) error {
			year := time.Now().Year()
			from := dateutil.Date(year, time.January, 1)
			to := dateutil.Date(year, time.December, 31)

			var err error
			if fromStr != "" {
				if from, err = dateutil.ParseDate(fromStr); err != nil {
					return fmt.Errorf("invalid --from: %w", err)
				}
			}
			if toStr != "" {
				if to, err = dateutil.ParseDate(toStr); err != nil {
					return fmt.Errorf("invalid --to: %w", err)
				}
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			loc := holiday.Location{City: city, State: state, IBGECode: ibge}
			all, err := a.holidays.Holidays(ctx, from, to, loc)
			if err != nil {
				return fmt.Errorf("failed to get holidays: %w", err)
			}
			observed := holiday.Between(holiday.Applicable(all, loc), from, to)

			fmt.Printf("Holidays in %s from %s to %s\n\n", loc, dateutil.Key(from), dateutil.Key(to))

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tWEEKDAY\tLEVEL\tNAME")
			for _, h := range observed {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", dateutil.Key(h.Date), h.Date.Weekday(), h.Level.Label(), h.Name)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			counts := holiday.CountByLevel(observed)
			fmt.Printf("\nTotal: %d (national %d, state %d, municipal %d, optional %d)\n",
				len(observed),
				counts[holiday.LevelNational],
				counts[holiday.LevelState],
				counts[holiday.LevelMunicipal],
				counts[holiday.LevelOptional])

			return nil
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "City name")
	cmd.Flags().StringVar(&state, "state", "", "State code (UF)")
	cmd.Flags().StringVar(&ibge, "ibge", "", "IBGE municipality code")
	cmd.Flags().StringVar(&fromStr, "from", "", "First date (default: January 1 of this year)")
	cmd.Flags().StringVar(&toStr, "to", "", "Last date (default: December 31 of this year)")

	return cmd
}
