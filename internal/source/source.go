// ABOUTME: BiometricDataSource contract and the mode-aware day window.
// ABOUTME: ErrNoData is the sentinel for "nothing recorded in this window".
package source

import (
	"context"
	"errors"
	"time"

	"github.com/harperreed/readiness/internal/models"
)

// ErrNoData is returned when a source has nothing for the requested
// window. The coordinator treats it as an absent value for optional
// metrics and as a per-day failure for HRV.
var ErrNoData = errors.New("no biometric data for window")

// SleepSample is the pre-aggregated sleep result for one night.
type SleepSample struct {
	Hours   float64
	Quality float64 // 0-100
}

// Window is the time span whose samples count as one calendar day's
// reading. The bounds depend on the configured mode.
type Window struct {
	Date  models.Date
	Start time.Time
	End   time.Time
}

// DayWindow builds the sampling window for a date under the given
// settings. Morning mode ends at WindowEndHour; full-day mode covers the
// whole calendar day.
func DayWindow(date models.Date, s models.Settings) Window {
	start := date.Time()
	end := start.AddDate(0, 0, 1)
	if s.Mode == models.ModeMorning {
		end = start.Add(time.Duration(s.WindowEndHour) * time.Hour)
	}
	return Window{Date: date, Start: start, End: end}
}

// DataSource provides pre-aggregated biometric values per window. All
// methods may return ErrNoData.
type DataSource interface {
	HRV(ctx context.Context, w Window) (float64, error)
	RestingHeartRate(ctx context.Context, w Window) (float64, error)
	Sleep(ctx context.Context, w Window) (SleepSample, error)
}
