// ABOUTME: MCP tool implementations for the readiness engine.
// ABOUTME: Metrics entry, score reads, recalculation, and settings management.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/recalc"
	"github.com/harperreed/readiness/internal/scoring"
)

func (s *Server) registerTools() {
	// add_metrics
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_metrics",
		Description: "Record daily biometrics (HRV, resting heart rate, sleep) for a date",
	}, s.handleAddMetrics)

	// get_score
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_score",
		Description: "Get the readiness score for a date, computing today's if absent",
	}, s.handleGetScore)

	// recalculate
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recalculate",
		Description: "Recompute readiness scores (scope: today or history)",
	}, s.handleRecalculate)

	// get_history
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_history",
		Description: "List recent readiness scores",
	}, s.handleGetHistory)

	// get_settings
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_settings",
		Description: "Read the current scoring settings",
	}, s.handleGetSettings)

	// update_setting
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_setting",
		Description: "Change one scoring setting; triggers the required recalculation",
	}, s.handleUpdateSetting)
}

// Tool input/output types

type addMetricsInput struct {
	Date         string  `json:"date,omitempty" jsonschema:"Calendar date (YYYY-MM-DD), defaults to today"`
	HRV          float64 `json:"hrv,omitempty" jsonschema:"Heart-rate variability in ms"`
	RestingHR    float64 `json:"resting_heart_rate,omitempty" jsonschema:"Resting heart rate in bpm"`
	SleepHours   float64 `json:"sleep_hours,omitempty" jsonschema:"Sleep duration in hours"`
	SleepQuality float64 `json:"sleep_quality,omitempty" jsonschema:"Sleep quality 0-100"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type getScoreInput struct {
	Date string `json:"date,omitempty" jsonschema:"Calendar date (YYYY-MM-DD), defaults to today"`
}

type scoreOutput struct {
	Date                string  `json:"date"`
	Score               float64 `json:"score"`
	Category            string  `json:"category"`
	HRVBaseline         float64 `json:"hrv_baseline"`
	HRVDeviationPercent float64 `json:"hrv_deviation_percent"`
	RHRAdjustment       float64 `json:"rhr_adjustment"`
	SleepAdjustment     float64 `json:"sleep_adjustment"`
}

func scoreRecordOutput(score *models.ReadinessScore) scoreOutput {
	return scoreOutput{
		Date:                string(score.Date),
		Score:               score.Score,
		Category:            string(score.Category),
		HRVBaseline:         score.HRVBaseline,
		HRVDeviationPercent: score.HRVDeviationPercent,
		RHRAdjustment:       score.RHRAdjustment,
		SleepAdjustment:     score.SleepAdjustment,
	}
}

type recalculateInput struct {
	Scope string `json:"scope,omitempty" jsonschema:"today (default) or history"`
	Days  int    `json:"days,omitempty" jsonschema:"History lookback in days (default 90)"`
}

type recalculateOutput struct {
	Scored  int    `json:"scored"`
	Skipped int    `json:"skipped"`
	Message string `json:"message"`
}

type getHistoryInput struct {
	Days int `json:"days,omitempty" jsonschema:"Number of trailing days (default 30)"`
}

type historyOutput struct {
	Scores []scoreOutput `json:"scores"`
}

type updateSettingInput struct {
	Field string `json:"field" jsonschema:"Settings field (window, min-samples, rhr-adjustment, sleep-adjustment, mode, window-end-hour)"`
	Value string `json:"value" jsonschema:"New value"`
}

// Tool handlers

func parseDateOrToday(s string) (models.Date, error) {
	if s == "" {
		return models.Today(), nil
	}
	return models.ParseDate(s)
}

func (s *Server) handleAddMetrics(ctx context.Context, req *mcp.CallToolRequest, input addMetricsInput) (*mcp.CallToolResult, simpleOutput, error) {
	date, err := parseDateOrToday(input.Date)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	m := models.DailyMetrics{
		Date:             date,
		HRV:              input.HRV,
		RestingHeartRate: input.RestingHR,
		SleepHours:       input.SleepHours,
		SleepQuality:     input.SleepQuality,
	}
	if m.IsEmpty() {
		return nil, simpleOutput{}, fmt.Errorf("at least one metric value is required")
	}
	if err := s.store.UpsertMetrics(ctx, m); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to store metrics: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Recorded metrics for %s", date),
	}, nil
}

func (s *Server) handleGetScore(ctx context.Context, req *mcp.CallToolRequest, input getScoreInput) (*mcp.CallToolResult, scoreOutput, error) {
	date, err := parseDateOrToday(input.Date)
	if err != nil {
		return nil, scoreOutput{}, err
	}

	score, err := s.store.GetScore(ctx, date)
	if err != nil {
		return nil, scoreOutput{}, fmt.Errorf("failed to read score: %w", err)
	}
	if score == nil && date == models.Today() {
		score, err = s.coord.RecomputeToday(ctx)
		if err != nil {
			return nil, scoreOutput{}, withHint(err)
		}
	}
	if score == nil {
		return nil, scoreOutput{}, fmt.Errorf("no score for %s", date)
	}

	return nil, scoreRecordOutput(score), nil
}

func (s *Server) handleRecalculate(ctx context.Context, req *mcp.CallToolRequest, input recalculateInput) (*mcp.CallToolResult, recalculateOutput, error) {
	switch input.Scope {
	case "", "today":
		score, err := s.coord.RecomputeToday(ctx)
		if err != nil {
			return nil, recalculateOutput{}, withHint(err)
		}
		return nil, recalculateOutput{
			Scored:  1,
			Message: fmt.Sprintf("Today: %.0f (%s)", score.Score, score.Category),
		}, nil
	case "history":
		days := input.Days
		if days <= 0 {
			days = recalc.HistoricalLookbackDays
		}
		res, err := s.coord.RunHistorical(ctx, days)
		if err != nil {
			return nil, recalculateOutput{}, withHint(err)
		}
		return nil, recalculateOutput{
			Scored:  res.Scored,
			Skipped: len(res.Failures),
			Message: fmt.Sprintf("Recalculated %d of %d days", res.Scored, res.Days),
		}, nil
	default:
		return nil, recalculateOutput{}, fmt.Errorf("unknown scope %q (want today or history)", input.Scope)
	}
}

func (s *Server) handleGetHistory(ctx context.Context, req *mcp.CallToolRequest, input getHistoryInput) (*mcp.CallToolResult, historyOutput, error) {
	days := input.Days
	if days <= 0 {
		days = 30
	}

	to := models.Today()
	from := to.AddDays(-(days - 1))
	scores, err := s.store.GetScoresRange(ctx, from, to)
	if err != nil {
		return nil, historyOutput{}, fmt.Errorf("failed to list scores: %w", err)
	}

	out := historyOutput{Scores: make([]scoreOutput, 0, len(scores))}
	for _, sc := range scores {
		out.Scores = append(out.Scores, scoreRecordOutput(&sc))
	}
	return nil, out, nil
}

func (s *Server) handleGetSettings(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, models.Settings, error) {
	return nil, s.settings.Current(), nil
}

func (s *Server) handleUpdateSetting(ctx context.Context, req *mcp.CallToolRequest, input updateSettingInput) (*mcp.CallToolResult, simpleOutput, error) {
	diff, err := s.settings.SetField(input.Field, input.Value)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if diff.Empty() {
		return nil, simpleOutput{Message: "No change."}, nil
	}

	// The settings store notified the coordinator; report what that
	// kicked off so the caller knows whether history is being replayed.
	var msg string
	switch recalc.Classify(diff) {
	case recalc.ScopeHistorical:
		msg = fmt.Sprintf("Updated %s; historical recalculation scheduled", input.Field)
	case recalc.ScopeToday:
		msg = fmt.Sprintf("Updated %s; today's score recomputed", input.Field)
	default:
		msg = fmt.Sprintf("Updated %s", input.Field)
	}
	return nil, simpleOutput{Message: msg}, nil
}

// withHint appends a recovery hint to errors that carry one.
func withHint(err error) error {
	var h scoring.Hinter
	if errors.As(err, &h) {
		return fmt.Errorf("%w (%s)", err, h.Hint())
	}
	return err
}
