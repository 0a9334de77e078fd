package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/username/apprentice-calendar/internal/generator"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

func validateCmd() *cobra.Command {
	var (
		startStr  string
		endStr    string
		vacations []string
		weekday   string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a contract timeline and vacation plan against the program policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(startStr, endStr)
			if err != nil {
				return err
			}
			vacation, err := parseVacations(vacations)
			if err != nil {
				return err
			}
			day, err := dateutil.ParseWeekday(weekday)
			if err != nil {
				return err
			}

			res := generator.Validate(cfg.Policy, start, end, vacation, day)
			if res.Valid {
				fmt.Fprintf(os.Stdout, "✅ %s to %s is valid (%s vacation)\n",
					dateutil.Key(start), dateutil.Key(end), vacation.Mode())
				return nil
			}

			fmt.Fprintln(os.Stdout, "❌ Timeline is not valid:")
			for _, e := range res.Errors {
				fmt.Fprintf(os.Stdout, "  - %s\n", e)
			}
			return &generator.ValidationError{Errors: res.Errors}
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "Contract start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endStr, "end", "", "Contract end date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&vacations, "vacation", nil, "Vacation block START:DAYS, repeat for a split vacation")
	cmd.Flags().StringVar(&weekday, "weekday", "wednesday", "Theory weekday")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
