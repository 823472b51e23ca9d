// ABOUTME: Scoring settings, sampling mode, and the typed settings diff.
// ABOUTME: The diff names exactly which fields changed so the coordinator can classify scope.
package models

import "fmt"

// Mode selects which time-of-day window counts as "today's" HRV sample.
type Mode string

const (
	// ModeMorning uses samples from midnight until WindowEndHour.
	ModeMorning Mode = "morning"
	// ModeFullDay uses samples from the whole calendar day.
	ModeFullDay Mode = "full_day"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeMorning, ModeFullDay:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (want morning or full_day)", s)
	}
}

// Allowed baseline window lengths in days.
var AllowedWindowLengths = []int{7, 14, 30}

// WindowEndHour bounds.
const (
	MinWindowEndHour = 9
	MaxWindowEndHour = 12
)

// Settings is the scoring configuration. It is owned by the settings
// store and read-only to the scoring engine; the coordinator snapshots it
// once at the start of each run.
type Settings struct {
	WindowLengthDays          int  `json:"window_length_days"`
	MinimumSamplesForBaseline int  `json:"minimum_samples_for_baseline"`
	UseRHRAdjustment          bool `json:"use_rhr_adjustment"`
	UseSleepAdjustment        bool `json:"use_sleep_adjustment"`
	Mode                      Mode `json:"mode"`
	WindowEndHour             int  `json:"window_end_hour"`
}

// DefaultSettings returns the out-of-box configuration.
func DefaultSettings() Settings {
	return Settings{
		WindowLengthDays:          14,
		MinimumSamplesForBaseline: 3,
		UseRHRAdjustment:          true,
		UseSleepAdjustment:        true,
		Mode:                      ModeMorning,
		WindowEndHour:             11,
	}
}

// Validate checks every field against its allowed bounds.
func (s Settings) Validate() error {
	validWindow := false
	for _, w := range AllowedWindowLengths {
		if s.WindowLengthDays == w {
			validWindow = true
			break
		}
	}
	if !validWindow {
		return fmt.Errorf("window_length_days must be one of %v, got %d", AllowedWindowLengths, s.WindowLengthDays)
	}
	if s.MinimumSamplesForBaseline < 1 {
		return fmt.Errorf("minimum_samples_for_baseline must be at least 1, got %d", s.MinimumSamplesForBaseline)
	}
	if _, err := ParseMode(string(s.Mode)); err != nil {
		return err
	}
	if s.WindowEndHour < MinWindowEndHour || s.WindowEndHour > MaxWindowEndHour {
		return fmt.Errorf("window_end_hour must be in [%d,%d], got %d", MinWindowEndHour, MaxWindowEndHour, s.WindowEndHour)
	}
	return nil
}

// SettingsField names a single settings field in a diff.
type SettingsField string

const (
	FieldWindowLengthDays          SettingsField = "window_length_days"
	FieldMinimumSamplesForBaseline SettingsField = "minimum_samples_for_baseline"
	FieldUseRHRAdjustment          SettingsField = "use_rhr_adjustment"
	FieldUseSleepAdjustment        SettingsField = "use_sleep_adjustment"
	FieldMode                      SettingsField = "mode"
	FieldWindowEndHour             SettingsField = "window_end_hour"
)

// SettingsDiff is the set of fields that changed in one settings update.
type SettingsDiff struct {
	Changed []SettingsField
}

// DiffSettings compares two settings values field by field.
func DiffSettings(old, updated Settings) SettingsDiff {
	var d SettingsDiff
	if old.WindowLengthDays != updated.WindowLengthDays {
		d.Changed = append(d.Changed, FieldWindowLengthDays)
	}
	if old.MinimumSamplesForBaseline != updated.MinimumSamplesForBaseline {
		d.Changed = append(d.Changed, FieldMinimumSamplesForBaseline)
	}
	if old.UseRHRAdjustment != updated.UseRHRAdjustment {
		d.Changed = append(d.Changed, FieldUseRHRAdjustment)
	}
	if old.UseSleepAdjustment != updated.UseSleepAdjustment {
		d.Changed = append(d.Changed, FieldUseSleepAdjustment)
	}
	if old.Mode != updated.Mode {
		d.Changed = append(d.Changed, FieldMode)
	}
	if old.WindowEndHour != updated.WindowEndHour {
		d.Changed = append(d.Changed, FieldWindowEndHour)
	}
	return d
}

// Contains reports whether the diff includes the given field.
func (d SettingsDiff) Contains(f SettingsField) bool {
	for _, c := range d.Changed {
		if c == f {
			return true
		}
	}
	return false
}

// Empty reports whether nothing changed.
func (d SettingsDiff) Empty() bool { return len(d.Changed) == 0 }
