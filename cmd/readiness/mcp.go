// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/readiness/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant
integration. The server communicates via stdin/stdout.

CONFIGURATION:

  {
    "mcpServers": {
      "readiness": {
        "command": "readiness",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_metrics     Record daily biometrics for a date
  get_score       Get a readiness score, computing today's if absent
  recalculate     Recompute scores (scope: today or history)
  get_history     List recent readiness scores
  get_settings    Read the scoring settings
  update_setting  Change one setting, triggering the required recalculation

AVAILABLE RESOURCES:

  readiness://history/recent   Last week of scores, newest first
  readiness://today            Today's score and category`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, settingsStore, coord)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
