// ABOUTME: CLI command for manual historical recalculation.
// ABOUTME: Replays the lookback range with per-day progress and a skipped summary.
package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/readiness/internal/recalc"
)

var recalcDays int

var recalcCmd = &cobra.Command{
	Use:   "recalc",
	Short: "Recalculate historical readiness scores",
	Long: `Reset and recompute readiness scores over the lookback range, oldest
day first, using the current settings.

Days without enough data are skipped and listed at the end; the run only
fails if no day could be scored.

Examples:
  readiness recalc              # Replay the default 90-day range
  readiness recalc --days 30    # Replay the last 30 days`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint)
		progressSink = func(p recalc.Progress) {
			faint.Printf("  [%3.0f%%] %s\n", p.Fraction*100, p.Status)
		}
		defer func() { progressSink = nil }()

		res, err := coord.RunHistorical(cmd.Context(), recalcDays)
		if err != nil {
			return err
		}

		color.Green("✓ Recalculated %d of %d days (%s to %s)", res.Scored, res.Days, res.From, res.To)
		for _, w := range res.Warnings {
			color.Yellow("! %s scored from partial data: %v", w.Date, w.Err)
		}
		for _, f := range res.Failures {
			faint.Printf("  skipped %s: %v\n", f.Date, f.Err)
		}

		return nil
	},
}

func init() {
	recalcCmd.Flags().IntVar(&recalcDays, "days", recalc.HistoricalLookbackDays, "lookback range in days")
	rootCmd.AddCommand(recalcCmd)
}
