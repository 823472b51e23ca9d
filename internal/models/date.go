// ABOUTME: Calendar date type used as the unique key for daily records.
// ABOUTME: Canonical form is YYYY-MM-DD; lexicographic order equals calendar order.
package models

import (
	"fmt"
	"time"
)

// DateLayout is the canonical storage form for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date in YYYY-MM-DD form. Because the form is
// fixed-width ISO, string comparison orders dates correctly, which lets
// the store key and sort records without parsing.
type Date string

// NewDate truncates a timestamp to its calendar date in local time.
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the current calendar date in local time.
func Today() Date {
	return NewDate(time.Now())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return NewDate(t), nil
}

// Time returns midnight local time on the date.
func (d Date) Time() time.Time {
	t, _ := time.ParseInLocation(DateLayout, string(d), time.Local)
	return t
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return NewDate(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool { return d < other }

// After reports whether d is later than other.
func (d Date) After(other Date) bool { return d > other }

func (d Date) String() string { return string(d) }

// DatesBetween returns every date from from to to inclusive, oldest first.
// Returns nil when from is after to.
func DatesBetween(from, to Date) []Date {
	if from.After(to) {
		return nil
	}
	var dates []Date
	for d := from; !d.After(to); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}
