// ABOUTME: Rolling-window baseline calculation for a single metric.
// ABOUTME: Pure function: filters samples to a valid range and averages them.
package scoring

import (
	"math"

	"github.com/harperreed/readiness/internal/models"
)

// Range bounds the values accepted into a baseline. Max may be +Inf for
// metrics with no upper bound.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the range (inclusive).
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Valid ranges for baseline inputs. The RHR baseline range is tighter
// than the storage validity bound; an elevated reading above 100 bpm is
// kept in the store but never averaged into a resting baseline.
var (
	HRVBaselineRange = Range{Min: models.MinValidHRV, Max: math.Inf(1)}
	RHRBaselineRange = Range{Min: 30, Max: 100}
)

// Sample is one dated metric value feeding a baseline.
type Sample struct {
	Date  models.Date
	Value float64
}

// ComputeBaseline returns the arithmetic mean of the samples whose value
// lies within valid. It fails with BaselineUnavailableError when fewer
// than minimumSamples values survive the filter. Deterministic for a
// given sample set; the caller is responsible for passing only days
// strictly before the day being scored.
func ComputeBaseline(samples []Sample, valid Range, minimumSamples int) (float64, error) {
	if minimumSamples < 1 {
		minimumSamples = 1
	}

	var sum float64
	var count int
	for _, s := range samples {
		if !valid.Contains(s.Value) {
			continue
		}
		sum += s.Value
		count++
	}

	if count < minimumSamples {
		return 0, &BaselineUnavailableError{DaysAvailable: count, DaysNeeded: minimumSamples}
	}
	return sum / float64(count), nil
}
