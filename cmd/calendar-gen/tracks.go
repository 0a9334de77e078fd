package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/username/apprentice-calendar/internal/curriculum"
)

func tracksCmd() *cobra.Command {
	var cohort string

	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "Show a cohort's curriculum tracks and configuration problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			tracks, err := a.tracks.TracksForCohort(ctx, cohort)
			if err != nil {
				return fmt.Errorf("failed to get tracks: %w", err)
			}

			ordered := append(curriculum.OfType(tracks, curriculum.TrackOnboarding), curriculum.Ordered(tracks)...)

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TRACK\tTYPE\tSUBJECT\tHOURS\tMEETINGS")
			for _, t := range ordered {
				fmt.Fprintf(tw, "%s\t%s\t\t%g\t\n", t.Name, t.Type, t.TotalHours())
				for _, s := range t.Subjects {
					fmt.Fprintf(tw, "\t\t%s\t%g\t%d\n", s.Name, s.Hours, s.MeetingCount)
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			problems := curriculum.ValidateTracks(tracks, cohort)
			if len(problems) == 0 {
				fmt.Println("\n✅ Track configuration is complete")
				return nil
			}
			fmt.Println("\n⚠️  Track configuration problems:")
			for _, p := range problems {
				fmt.Printf("  - %s\n", p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cohort, "cohort", "", "Cohort id")
	_ = cmd.MarkFlagRequired("cohort")

	return cmd
}
