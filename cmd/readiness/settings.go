// ABOUTME: CLI commands for reading and writing scoring settings.
// ABOUTME: Writes route the typed diff through the recalculation coordinator.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/readiness/internal/recalc"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and write scoring settings",
	Long: `Read and write the scoring settings.

FIELDS:

  window            baseline window length in days (7, 14, or 30)
  min-samples       valid days required before a baseline exists
  rhr-adjustment    apply the resting-heart-rate adjustment (true/false)
  sleep-adjustment  apply the sleep adjustment (true/false)
  mode              morning or full_day
  window-end-hour   morning-mode cutoff hour (9-12)

Changing window, min-samples, or either adjustment toggle replays the
last 90 days in the background. Changing mode or window-end-hour only
recomputes today.`,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(settingsStore.Current(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Change one setting and trigger the required recalculation",
	Long: `Change one setting. The write validates the new value, persists it,
and notifies the coordinator, which recomputes today or schedules a
90-day replay depending on the field.

Examples:
  readiness settings set window 30
  readiness settings set mode full_day
  readiness settings set rhr-adjustment false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		diff, err := settingsStore.SetField(args[0], args[1])
		if err != nil {
			return err
		}
		if diff.Empty() {
			fmt.Println("No change.")
			return nil
		}

		color.Green("✓ Updated %s", args[0])
		switch recalc.Classify(diff) {
		case recalc.ScopeHistorical:
			// The CLI exits right after this command, so run the replay
			// here instead of leaving it to the debounced background path.
			coord.Cancel()
			res, err := coord.RunHistorical(cmd.Context(), recalc.HistoricalLookbackDays)
			if err != nil {
				return err
			}
			fmt.Printf("  Replayed %d of %d days.\n", res.Scored, res.Days)
		case recalc.ScopeToday:
			fmt.Println("  Today's score recomputed.")
		}
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
