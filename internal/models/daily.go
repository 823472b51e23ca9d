// ABOUTME: DailyMetrics model: one record of HRV/RHR/sleep per calendar date.
// ABOUTME: Defines physiological validity bounds; invalid values are stored but not scored.
package models

import "time"

// Physiological validity bounds. Values outside these bounds are kept in
// the store as provided but treated as absent by the scoring engine.
const (
	MinValidHRV        = 10.0  // ms
	MinValidRHR        = 30.0  // bpm
	MaxValidRHR        = 200.0 // bpm
	MaxValidSleepHours = 24.0
)

// DailyMetrics holds the pre-aggregated biometric inputs for one calendar
// date. A zero value for a field means the metric was never recorded for
// that day. The store enforces at most one record per date.
type DailyMetrics struct {
	Date             Date
	HRV              float64 // ms
	RestingHeartRate float64 // bpm
	SleepHours       float64
	SleepQuality     float64 // 0-100
	UpdatedAt        time.Time
}

// HasValidHRV reports whether the HRV value is present and physiologically
// plausible.
func (m DailyMetrics) HasValidHRV() bool {
	return m.HRV >= MinValidHRV
}

// HasValidRHR reports whether the resting heart rate is present and within
// storage validity bounds.
func (m DailyMetrics) HasValidRHR() bool {
	return m.RestingHeartRate >= MinValidRHR && m.RestingHeartRate <= MaxValidRHR
}

// HasValidSleep reports whether sleep hours are present and plausible.
func (m DailyMetrics) HasValidSleep() bool {
	return m.SleepHours > 0 && m.SleepHours <= MaxValidSleepHours
}

// IsEmpty reports whether no metric at all was recorded for the day.
func (m DailyMetrics) IsEmpty() bool {
	return m.HRV == 0 && m.RestingHeartRate == 0 && m.SleepHours == 0 && m.SleepQuality == 0
}
