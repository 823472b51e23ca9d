// ABOUTME: Error taxonomy for baseline and score calculation failures.
// ABOUTME: Every error carries an actionable recovery hint for the CLI/MCP layers.
package scoring

import (
	"fmt"
	"strings"

	"github.com/harperreed/readiness/internal/models"
)

// Hinter is implemented by errors that can suggest a recovery action to
// the user. Callers display Error() plus Hint() when available.
type Hinter interface {
	Hint() string
}

// BaselineUnavailableError means too few valid samples exist in the
// rolling window to compute a baseline.
type BaselineUnavailableError struct {
	DaysAvailable int
	DaysNeeded    int
}

func (e *BaselineUnavailableError) Error() string {
	return fmt.Sprintf("baseline unavailable: %d of %d required days of valid data", e.DaysAvailable, e.DaysNeeded)
}

func (e *BaselineUnavailableError) Hint() string {
	missing := e.DaysNeeded - e.DaysAvailable
	if missing < 1 {
		missing = 1
	}
	return fmt.Sprintf("record %d more day(s) of data to establish a baseline", missing)
}

// InsufficientDataError means a mandatory input for scoring was absent or
// out of physiological bounds.
type InsufficientDataError struct {
	Missing   []string
	Available []string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: missing %s", strings.Join(e.Missing, ", "))
}

func (e *InsufficientDataError) Hint() string {
	return fmt.Sprintf("record today's %s and try again", strings.Join(e.Missing, ", "))
}

// HistoricalDataMissingError means no biometric data exists at all for a
// date during a historical sweep.
type HistoricalDataMissingError struct {
	Date models.Date
}

func (e *HistoricalDataMissingError) Error() string {
	return fmt.Sprintf("no biometric data recorded for %s", e.Date)
}

func (e *HistoricalDataMissingError) Hint() string {
	return "days without data are skipped during recalculation"
}

// HistoricalDataIncompleteError reports a date that was scored from
// partial data (Partial true, informational) or could not be scored at
// all (Partial false).
type HistoricalDataIncompleteError struct {
	Date    models.Date
	Missing []string
	Partial bool
}

func (e *HistoricalDataIncompleteError) Error() string {
	if e.Partial {
		return fmt.Sprintf("scored %s without %s", e.Date, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("cannot score %s: missing %s", e.Date, strings.Join(e.Missing, ", "))
}

func (e *HistoricalDataIncompleteError) Hint() string {
	if e.Partial {
		return "the score for this day used the data that was available"
	}
	return fmt.Sprintf("record %s for %s to score this day", strings.Join(e.Missing, ", "), e.Date)
}

// DataProcessingError wraps an unexpected failure inside a named
// component of the pipeline.
type DataProcessingError struct {
	Component string
	Reason    string
	Err       error
}

func (e *DataProcessingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Component, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Component, e.Reason)
}

func (e *DataProcessingError) Unwrap() error { return e.Err }

func (e *DataProcessingError) Hint() string {
	return "retry the recalculation; if the failure persists, check the data store"
}
