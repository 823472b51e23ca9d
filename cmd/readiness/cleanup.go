// ABOUTME: CLI command for retention cleanup.
// ABOUTME: Deletes metrics and scores older than a cutoff age.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var cleanupOlderThan string

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete metrics and scores older than a cutoff",
	Long: `Delete stored metrics and scores older than the given age.

The age is a number of days with a 'd' suffix. Deletion is permanent;
baselines near the cutoff will have fewer samples afterwards.

Examples:
  readiness cleanup --older-than 180d
  readiness cleanup --older-than 365d`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		age, err := parseAge(cleanupOlderThan)
		if err != nil {
			return err
		}

		deleted, err := store.DeleteOlderThan(cmd.Context(), age)
		if err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}

		color.Green("✓ Deleted %d rows older than %s", deleted, cleanupOlderThan)
		return nil
	},
}

// parseAge reads a day-suffixed age like "180d".
func parseAge(s string) (time.Duration, error) {
	v, ok := strings.CutSuffix(s, "d")
	if !ok {
		return 0, fmt.Errorf("invalid age %q (want a day count like 180d)", s)
	}
	days, err := strconv.Atoi(v)
	if err != nil || days <= 0 {
		return 0, fmt.Errorf("invalid age %q (want a positive day count like 180d)", s)
	}
	return time.Duration(days) * 24 * time.Hour, nil
}

func init() {
	cleanupCmd.Flags().StringVar(&cleanupOlderThan, "older-than", "180d", "cutoff age in days (e.g. 180d)")
	rootCmd.AddCommand(cleanupCmd)
}
