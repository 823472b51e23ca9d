// ABOUTME: ReadinessScore model and score category enum.
// ABOUTME: Category boundaries are inclusive at the lower edge (80.0 is Optimal).
package models

import "time"

// Category is the discrete readiness band derived from the final score.
type Category string

const (
	CategoryOptimal  Category = "optimal"  // [80,100]
	CategoryModerate Category = "moderate" // [50,80)
	CategoryLow      Category = "low"      // [30,50)
	CategoryFatigue  Category = "fatigue"  // [0,30)
	CategoryUnknown  Category = "unknown"  // no baseline available
)

// CategoryForScore maps a final score to its category. It is a pure
// function of the score; Unknown is never returned here because Unknown
// means no score could be computed at all.
func CategoryForScore(score float64) Category {
	switch {
	case score >= 80:
		return CategoryOptimal
	case score >= 50:
		return CategoryModerate
	case score >= 30:
		return CategoryLow
	default:
		return CategoryFatigue
	}
}

// ReadinessScore is the derived score record for one calendar date. It is
// created on the first successful calculation for a date and updated in
// place on every recalculation; the store enforces one record per date.
type ReadinessScore struct {
	Date                Date
	Score               float64 // 0-100
	Category            Category
	HRVBaseline         float64
	HRVDeviationPercent float64
	RHRAdjustment       float64
	SleepAdjustment     float64
	Mode                Mode
	WindowLengthDays    int
	CalculatedAt        time.Time
}
