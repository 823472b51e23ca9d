// ABOUTME: CLI command for listing recent readiness scores.
// ABOUTME: Renders a right-aligned table of score, category, and adjustments.
package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/harperreed/readiness/internal/models"
)

var historyDays int

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"hist", "h"},
	Short:   "List recent readiness scores",
	Long: `List readiness scores for the trailing window as a table, oldest first.

Days with no score (not yet computed, or skipped for missing data) are
simply absent from the table.

Examples:
  readiness history             # Last 30 days
  readiness history --days 7    # Last week`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		to := models.Today()
		from := to.AddDays(-(historyDays - 1))
		scores, err := store.GetScoresRange(cmd.Context(), from, to)
		if err != nil {
			return fmt.Errorf("failed to list scores: %w", err)
		}
		if len(scores) == 0 {
			fmt.Println("No scores yet. Run 'readiness recalc' or 'readiness today'.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"Date", "Score", "Category", "Baseline", "HRV Dev", "RHR Adj", "Sleep Adj"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, s := range scores {
			data = append(data, []string{
				string(s.Date),
				fmt.Sprintf("%.0f", s.Score),
				string(s.Category),
				fmt.Sprintf("%.1f", s.HRVBaseline),
				fmt.Sprintf("%+.1f%%", s.HRVDeviationPercent),
				fmt.Sprintf("%+.1f", s.RHRAdjustment),
				fmt.Sprintf("%+.1f", s.SleepAdjustment),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		return table.Render()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyDays, "days", 30, "trailing window in days")
	rootCmd.AddCommand(historyCmd)
}
