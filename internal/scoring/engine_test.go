// ABOUTME: Tests for the score engine: deviation mapping, adjustments, clamping.
// ABOUTME: Includes the worked example from the scoring documentation.
package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/harperreed/readiness/internal/models"
)

func settingsWith(rhr, sleep bool) models.Settings {
	s := models.DefaultSettings()
	s.UseRHRAdjustment = rhr
	s.UseSleepAdjustment = sleep
	return s
}

func TestComputeScoreWorkedExample(t *testing.T) {
	// baseline 50, hrv 53 -> deviation 6% -> base 53; sleep 8h -> +3;
	// RHR adjustment disabled -> final 56, Moderate.
	today := models.DailyMetrics{Date: "2026-08-23", HRV: 53, SleepHours: 8}
	res, err := ComputeScore(today, 50, nil, settingsWith(false, true))
	if err != nil {
		t.Fatalf("ComputeScore failed: %v", err)
	}

	if math.Abs(res.HRVDeviationPercent-6) > 1e-9 {
		t.Errorf("deviation = %v, want 6", res.HRVDeviationPercent)
	}
	if math.Abs(res.SleepAdjustment-3) > 1e-9 {
		t.Errorf("sleep adjustment = %v, want 3", res.SleepAdjustment)
	}
	if res.RHRAdjustment != 0 {
		t.Errorf("rhr adjustment = %v, want 0", res.RHRAdjustment)
	}
	if math.Abs(res.Score-56) > 1e-9 {
		t.Errorf("score = %v, want 56", res.Score)
	}
	if res.Category != models.CategoryModerate {
		t.Errorf("category = %s, want moderate", res.Category)
	}
}

func TestComputeScoreRHRAdjustment(t *testing.T) {
	// Baseline 60 bpm, today 54 bpm: 10% below baseline -> +5.
	rhrBaseline := 60.0
	today := models.DailyMetrics{Date: "2026-08-23", HRV: 50, RestingHeartRate: 54}
	res, err := ComputeScore(today, 50, &rhrBaseline, settingsWith(true, false))
	if err != nil {
		t.Fatalf("ComputeScore failed: %v", err)
	}
	if math.Abs(res.RHRAdjustment-5) > 1e-9 {
		t.Errorf("rhr adjustment = %v, want 5", res.RHRAdjustment)
	}
	if math.Abs(res.Score-55) > 1e-9 {
		t.Errorf("score = %v, want 55", res.Score)
	}
}

func TestComputeScoreRHRDisabledIgnoresBaseline(t *testing.T) {
	rhrBaseline := 60.0
	today := models.DailyMetrics{Date: "2026-08-23", HRV: 50, RestingHeartRate: 54}
	res, err := ComputeScore(today, 50, &rhrBaseline, settingsWith(false, false))
	if err != nil {
		t.Fatalf("ComputeScore failed: %v", err)
	}
	if res.RHRAdjustment != 0 {
		t.Errorf("rhr adjustment = %v, want 0 when disabled", res.RHRAdjustment)
	}
}

func TestComputeScoreSleepAdjustments(t *testing.T) {
	tests := []struct {
		hours float64
		want  float64
	}{
		{5, -10},   // 2h short of 7 -> -(2*5)
		{6.5, -2.5},
		{7, 0},
		{8.5, 4.5},
		{9, 6},
		{10, -2},  // 1h over 9 -> -(1*2)
		{0, 0},    // absent sleep, adjustment skipped
	}

	for _, tt := range tests {
		today := models.DailyMetrics{Date: "2026-08-23", HRV: 50, SleepHours: tt.hours}
		res, err := ComputeScore(today, 50, nil, settingsWith(false, true))
		if err != nil {
			t.Fatalf("ComputeScore(%vh) failed: %v", tt.hours, err)
		}
		if math.Abs(res.SleepAdjustment-tt.want) > 1e-9 {
			t.Errorf("sleep %vh: adjustment = %v, want %v", tt.hours, res.SleepAdjustment, tt.want)
		}
	}
}

func TestComputeScoreClamped(t *testing.T) {
	// Massive positive deviation plus ideal sleep must still cap at 100.
	today := models.DailyMetrics{Date: "2026-08-23", HRV: 200, SleepHours: 9}
	res, err := ComputeScore(today, 40, nil, settingsWith(false, true))
	if err != nil {
		t.Fatalf("ComputeScore failed: %v", err)
	}
	if res.Score != 100 {
		t.Errorf("score = %v, want 100", res.Score)
	}
	if res.Category != models.CategoryOptimal {
		t.Errorf("category = %s, want optimal", res.Category)
	}

	// Crushed HRV plus short sleep must floor at 0.
	today = models.DailyMetrics{Date: "2026-08-23", HRV: 10, SleepHours: 3}
	res, err = ComputeScore(today, 80, nil, settingsWith(false, true))
	if err != nil {
		t.Fatalf("ComputeScore failed: %v", err)
	}
	if res.Score != 0 {
		t.Errorf("score = %v, want 0", res.Score)
	}
	if res.Category != models.CategoryFatigue {
		t.Errorf("category = %s, want fatigue", res.Category)
	}
}

func TestComputeScoreMissingHRV(t *testing.T) {
	today := models.DailyMetrics{Date: "2026-08-23", RestingHeartRate: 55, SleepHours: 8}
	_, err := ComputeScore(today, 50, nil, settingsWith(true, true))

	var insufficient *InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientDataError", err)
	}
	if len(insufficient.Missing) != 1 || insufficient.Missing[0] != "hrv" {
		t.Errorf("missing = %v, want [hrv]", insufficient.Missing)
	}
	if len(insufficient.Available) != 2 {
		t.Errorf("available = %v, want rhr and sleep", insufficient.Available)
	}
}

func TestComputeScoreNoBaseline(t *testing.T) {
	today := models.DailyMetrics{Date: "2026-08-23", HRV: 50}
	_, err := ComputeScore(today, 0, nil, settingsWith(false, false))
	var unavailable *BaselineUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("err = %v, want BaselineUnavailableError", err)
	}
}

func TestComputeScoreIdempotent(t *testing.T) {
	rhrBaseline := 58.0
	today := models.DailyMetrics{Date: "2026-08-23", HRV: 47, RestingHeartRate: 55, SleepHours: 7.4}
	s := settingsWith(true, true)

	a, err := ComputeScore(today, 50, &rhrBaseline, s)
	if err != nil {
		t.Fatalf("ComputeScore failed: %v", err)
	}
	b, err := ComputeScore(today, 50, &rhrBaseline, s)
	if err != nil {
		t.Fatalf("ComputeScore failed: %v", err)
	}
	if a != b {
		t.Errorf("same inputs gave different results: %+v vs %+v", a, b)
	}
}
