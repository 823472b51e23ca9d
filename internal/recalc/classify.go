// ABOUTME: Classifies a settings diff into the recalculation scope it requires.
// ABOUTME: Baseline-affecting fields invalidate history; sampling fields only affect today.
package recalc

import "github.com/harperreed/readiness/internal/models"

// Scope is the amount of recomputation a change requires.
type Scope int

const (
	// ScopeNone means no scores are affected.
	ScopeNone Scope = iota
	// ScopeToday redefines what counts as "today's" sample; only today
	// needs recomputing.
	ScopeToday
	// ScopeHistorical invalidates every past score's baseline; the
	// lookback range must be reset and replayed.
	ScopeHistorical
)

func (s Scope) String() string {
	switch s {
	case ScopeToday:
		return "today"
	case ScopeHistorical:
		return "historical"
	default:
		return "none"
	}
}

// historicalFields are the settings that feed every baseline.
var historicalFields = []models.SettingsField{
	models.FieldWindowLengthDays,
	models.FieldUseRHRAdjustment,
	models.FieldUseSleepAdjustment,
	models.FieldMinimumSamplesForBaseline,
}

// todayFields only change the definition of today's sampling window.
var todayFields = []models.SettingsField{
	models.FieldMode,
	models.FieldWindowEndHour,
}

// Classify maps a settings diff to the widest scope any changed field
// requires. Historical wins over today when a diff contains both kinds.
func Classify(diff models.SettingsDiff) Scope {
	for _, f := range historicalFields {
		if diff.Contains(f) {
			return ScopeHistorical
		}
	}
	for _, f := range todayFields {
		if diff.Contains(f) {
			return ScopeToday
		}
	}
	return ScopeNone
}
