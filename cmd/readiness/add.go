// ABOUTME: CLI command for recording daily biometrics.
// ABOUTME: Upserts a day's metrics; out-of-range values are stored with a warning.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/readiness/internal/models"
)

var (
	addHRV     float64
	addRHR     float64
	addSleep   float64
	addQuality float64
)

var addCmd = &cobra.Command{
	Use:     "add <date|today>",
	Aliases: []string{"a"},
	Short:   "Record daily biometrics",
	Long: `Record biometrics for a date. Repeating the command for the same date
merges the values: metrics you pass replace the stored ones, metrics you
omit are kept.

Values outside physiological bounds are stored but flagged; the baseline
computation ignores them.

Examples:
  readiness add today --hrv 48 --rhr 52 --sleep 7.5
  readiness add 2026-08-20 --hrv 51
  readiness add today --sleep 6.2 --quality 70`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var date models.Date
		if args[0] == "today" {
			date = models.Today()
		} else {
			var err error
			date, err = models.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q (want YYYY-MM-DD or today): %w", args[0], err)
			}
		}

		m := models.DailyMetrics{
			Date:             date,
			HRV:              addHRV,
			RestingHeartRate: addRHR,
			SleepHours:       addSleep,
			SleepQuality:     addQuality,
		}
		if m.IsEmpty() {
			return fmt.Errorf("pass at least one of --hrv, --rhr, --sleep, --quality")
		}

		warnOutOfRange(m)

		if err := store.UpsertMetrics(cmd.Context(), m); err != nil {
			return fmt.Errorf("failed to store metrics: %w", err)
		}

		color.Green("✓ Recorded metrics for %s", date)
		if m.HRV != 0 {
			fmt.Printf("  hrv    %.1f ms\n", m.HRV)
		}
		if m.RestingHeartRate != 0 {
			fmt.Printf("  rhr    %.0f bpm\n", m.RestingHeartRate)
		}
		if m.SleepHours != 0 {
			fmt.Printf("  sleep  %.1f h\n", m.SleepHours)
		}
		if m.SleepQuality != 0 {
			fmt.Printf("  quality %.0f\n", m.SleepQuality)
		}

		return nil
	},
}

func warnOutOfRange(m models.DailyMetrics) {
	if m.HRV != 0 && !m.HasValidHRV() {
		color.Yellow("! hrv %.1f is outside the valid range (>= %.0f ms); baselines will skip it", m.HRV, models.MinValidHRV)
	}
	if m.RestingHeartRate != 0 && !m.HasValidRHR() {
		color.Yellow("! rhr %.0f is outside the valid range (%.0f-%.0f bpm); baselines will skip it", m.RestingHeartRate, models.MinValidRHR, models.MaxValidRHR)
	}
	if m.SleepHours != 0 && !m.HasValidSleep() {
		color.Yellow("! sleep %.1f is outside the valid range (0-%.0f h)", m.SleepHours, models.MaxValidSleepHours)
	}
}

func init() {
	addCmd.Flags().Float64Var(&addHRV, "hrv", 0, "heart-rate variability (ms)")
	addCmd.Flags().Float64Var(&addRHR, "rhr", 0, "resting heart rate (bpm)")
	addCmd.Flags().Float64Var(&addSleep, "sleep", 0, "sleep duration (hours)")
	addCmd.Flags().Float64Var(&addQuality, "quality", 0, "sleep quality (0-100)")
	rootCmd.AddCommand(addCmd)
}
