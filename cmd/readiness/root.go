// ABOUTME: Root Cobra command for readiness CLI.
// ABOUTME: Wires config, storage, settings, data source, and coordinator via PersistentPre/PostRunE.
package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harperreed/readiness/internal/config"
	"github.com/harperreed/readiness/internal/recalc"
	"github.com/harperreed/readiness/internal/settings"
	"github.com/harperreed/readiness/internal/source"
	"github.com/harperreed/readiness/internal/storage"
	"github.com/harperreed/readiness/internal/widget"
)

// Shared command state, initialized in PersistentPreRunE. No package-level
// singletons beyond this wiring; every command goes through these handles.
var (
	appConfig     *config.Config
	store         *storage.DB
	settingsStore *settings.Store
	sampleCache   *source.CachedSource
	publisher     widget.Publisher
	coord         *recalc.Coordinator

	// progressSink receives replay progress when a command wants it
	// printed (recalc does, background runs don't).
	progressSink recalc.ProgressFunc
)

var rootCmd = &cobra.Command{
	Use:   "readiness",
	Short: "Daily readiness score from HRV, resting heart rate, and sleep",
	Long: `Readiness computes a daily 0-100 readiness score from your biometrics.

HOW IT WORKS:

  The score starts from how today's HRV compares to your personal rolling
  baseline (default: 14-day average), then applies resting-heart-rate and
  sleep adjustments. Categories: optimal (80+), moderate (50-79),
  low (30-49), fatigue (below 30).

QUICK START:

  $ readiness add today --hrv 48 --rhr 52 --sleep 7.5   # Log today's metrics
  $ readiness today                                     # Compute today's score
  $ readiness history                                   # Recent scores table
  $ readiness settings set window 30                    # Widen the baseline window

SETTINGS AND RECALCULATION:

  Changing a baseline-affecting setting (window, min-samples, rhr-adjustment,
  sleep-adjustment) replays the last 90 days in the background. Changing
  mode or window-end-hour only recomputes today.

MCP INTEGRATION:

  Run 'readiness mcp' to start the Model Context Protocol server for use
  with MCP-compatible AI assistants:

  {
    "mcpServers": {
      "readiness": { "command": "readiness", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Scores and metrics live in SQLite at ~/.local/share/readiness/readiness.db.
  Settings live at ~/.config/readiness/settings.json. Set READINESS_DATA_DIR
  to relocate the data directory and READINESS_WIDGET to pick the widget
  surface (file, charm, off).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip wiring for commands that don't touch data
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		appConfig, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, err = appConfig.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		settingsStore, err = settings.Open(settings.DefaultPath())
		if err != nil {
			return fmt.Errorf("failed to open settings: %w", err)
		}

		var src source.DataSource = source.NewStoreSource(store)
		sampleCache, err = source.NewCachedSource(src, appConfig.CacheDir())
		if err != nil {
			return fmt.Errorf("failed to open sample cache: %w", err)
		}
		src = sampleCache

		switch appConfig.GetWidget() {
		case config.WidgetFile:
			publisher = widget.NewFilePublisher(appConfig.GetDataDir())
		case config.WidgetCharm:
			publisher, err = widget.NewCharmPublisher()
			if err != nil {
				return fmt.Errorf("failed to open charm widget publisher: %w", err)
			}
		case config.WidgetOff:
			publisher = nil
		}

		opts := []recalc.Option{recalc.WithProgress(func(p recalc.Progress) {
			if progressSink != nil {
				progressSink(p)
			}
		})}
		if publisher != nil {
			opts = append(opts, recalc.WithPublisher(publisher))
		}
		coord = recalc.New(store, src, settingsStore, opts...)
		settingsStore.Subscribe(coord.HandleSettingsChange)

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		var errs []error
		if coord != nil {
			errs = append(errs, coord.Close())
		}
		if c, ok := publisher.(io.Closer); ok && c != nil {
			errs = append(errs, c.Close())
		}
		if sampleCache != nil {
			errs = append(errs, sampleCache.Close())
		}
		if store != nil {
			errs = append(errs, store.Close())
		}
		return errors.Join(errs...)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
