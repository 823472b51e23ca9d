// ABOUTME: Score engine: converts today's metrics plus baselines into a readiness score.
// ABOUTME: Uses the continuous linear deviation mapping; categories derive from the final score.
package scoring

import (
	"time"

	"github.com/harperreed/readiness/internal/models"
)

// Result is the full breakdown of one score calculation.
type Result struct {
	Score               float64
	Category            models.Category
	HRVBaseline         float64
	HRVDeviationPercent float64
	RHRAdjustment       float64
	SleepAdjustment     float64
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ComputeScore derives a readiness score from today's metrics and the
// HRV baseline, with optional RHR and sleep adjustments.
//
// The base score maps HRV deviation linearly:
//
//	deviation = (hrv - hrvBaseline) / hrvBaseline * 100
//	baseScore = clamp(50 + deviation/2, 0, 100)
//
// An earlier revision of this engine mapped deviation through discrete
// buckets (deviation <= -15 -> 30, -15..-10 -> 45, ...); the linear form
// is canonical and the only one implemented. Do not mix the two.
//
// rhrBaseline is nil when no resting-heart-rate baseline is available;
// the RHR adjustment applies only when enabled and the baseline is
// positive. A missing optional input never blocks scoring. HRV is
// mandatory: an absent or invalid HRV fails with InsufficientDataError,
// and the caller fails earlier with BaselineUnavailableError when no HRV
// baseline exists.
func ComputeScore(today models.DailyMetrics, hrvBaseline float64, rhrBaseline *float64, settings models.Settings) (Result, error) {
	if !today.HasValidHRV() {
		return Result{}, &InsufficientDataError{Missing: []string{"hrv"}, Available: availableMetrics(today)}
	}
	if hrvBaseline <= 0 {
		return Result{}, &BaselineUnavailableError{DaysAvailable: 0, DaysNeeded: settings.MinimumSamplesForBaseline}
	}

	deviation := (today.HRV - hrvBaseline) / hrvBaseline * 100
	baseScore := clamp(50+deviation/2, 0, 100)

	var rhrAdjustment float64
	if settings.UseRHRAdjustment && rhrBaseline != nil && *rhrBaseline > 0 && today.HasValidRHR() {
		rhrDeviation := (*rhrBaseline - today.RestingHeartRate) / *rhrBaseline * 100
		rhrAdjustment = rhrDeviation * 0.5
	}

	var sleepAdjustment float64
	if settings.UseSleepAdjustment && today.HasValidSleep() {
		switch {
		case today.SleepHours < 7:
			sleepAdjustment = -(7 - today.SleepHours) * 5
		case today.SleepHours > 9:
			sleepAdjustment = -(today.SleepHours - 9) * 2
		default:
			sleepAdjustment = (today.SleepHours - 7) * 3
		}
	}

	finalScore := clamp(baseScore+rhrAdjustment+sleepAdjustment, 0, 100)

	return Result{
		Score:               finalScore,
		Category:            models.CategoryForScore(finalScore),
		HRVBaseline:         hrvBaseline,
		HRVDeviationPercent: deviation,
		RHRAdjustment:       rhrAdjustment,
		SleepAdjustment:     sleepAdjustment,
	}, nil
}

// ScoreRecord builds the persistable record for a computed result.
func (r Result) ScoreRecord(date models.Date, settings models.Settings, at time.Time) models.ReadinessScore {
	return models.ReadinessScore{
		Date:                date,
		Score:               r.Score,
		Category:            r.Category,
		HRVBaseline:         r.HRVBaseline,
		HRVDeviationPercent: r.HRVDeviationPercent,
		RHRAdjustment:       r.RHRAdjustment,
		SleepAdjustment:     r.SleepAdjustment,
		Mode:                settings.Mode,
		WindowLengthDays:    settings.WindowLengthDays,
		CalculatedAt:        at,
	}
}

func availableMetrics(m models.DailyMetrics) []string {
	var have []string
	if m.HasValidHRV() {
		have = append(have, "hrv")
	}
	if m.HasValidRHR() {
		have = append(have, "resting_heart_rate")
	}
	if m.HasValidSleep() {
		have = append(have, "sleep")
	}
	return have
}
