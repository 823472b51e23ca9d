// ABOUTME: CLI command for today's readiness score.
// ABOUTME: Runs the quick recompute path and prints the adjustment breakdown.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/scoring"
)

var todayCmd = &cobra.Command{
	Use:     "today",
	Aliases: []string{"t"},
	Short:   "Compute and show today's readiness score",
	Long: `Compute today's readiness score from stored metrics and print the
score, category, and the adjustment breakdown.

The baseline is the average HRV over the configured rolling window, today
excluded. If fewer valid days than the configured minimum are available,
the score is unavailable and a hint is printed instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := coord.RecomputeToday(cmd.Context())
		if err != nil {
			var h scoring.Hinter
			if errors.As(err, &h) {
				color.Yellow("No score today: %v", err)
				fmt.Printf("  %s\n", h.Hint())
				return nil
			}
			return err
		}

		printScore(score)
		return nil
	},
}

func printScore(score *models.ReadinessScore) {
	categoryColor(score.Category).Printf("%s  %.0f  %s\n", score.Date, score.Score, score.Category)

	faint := color.New(color.Faint)
	faint.Printf("  baseline  %.1f ms (%d-day window)\n", score.HRVBaseline, score.WindowLengthDays)
	faint.Printf("  hrv dev   %+.1f%%\n", score.HRVDeviationPercent)
	if score.RHRAdjustment != 0 {
		faint.Printf("  rhr adj   %+.1f\n", score.RHRAdjustment)
	}
	if score.SleepAdjustment != 0 {
		faint.Printf("  sleep adj %+.1f\n", score.SleepAdjustment)
	}
}

func categoryColor(c models.Category) *color.Color {
	switch c {
	case models.CategoryOptimal:
		return color.New(color.FgGreen)
	case models.CategoryModerate:
		return color.New(color.FgCyan)
	case models.CategoryLow:
		return color.New(color.FgYellow)
	case models.CategoryFatigue:
		return color.New(color.FgRed)
	default:
		return color.New(color.Faint)
	}
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
