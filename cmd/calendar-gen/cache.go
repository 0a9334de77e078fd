package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the reference data cache",
	}

	var cohort string
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop cached holidays and tracks so the next run rereads the sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			if a.holidayCache == nil {
				fmt.Println("Cache is disabled, nothing to clear")
				return nil
			}

			if err := a.holidayCache.Invalidate(ctx); err != nil {
				return fmt.Errorf("failed to clear holiday cache: %w", err)
			}
			if err := a.trackCache.Invalidate(ctx, cohort); err != nil {
				return fmt.Errorf("failed to clear track cache: %w", err)
			}

			logger.Info("Reference cache cleared",
				zap.String("backend", cfg.Cache.Backend),
				zap.String("cohort", cohort))
			fmt.Println("✅ Cache cleared")
			return nil
		},
	}
	clearCmd.Flags().StringVar(&cohort, "cohort", "", "Only clear this cohort's tracks")

	cmd.AddCommand(clearCmd)
	return cmd
}
