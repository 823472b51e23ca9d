// ABOUTME: Tests for date arithmetic, validity bounds, categories, and settings diffs.
// ABOUTME: Validates calendar-date keys and the typed diff used for recalculation scope.
package models

import (
	"testing"
)

func TestDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2026-08-23")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.String() != "2026-08-23" {
		t.Errorf("String = %s, want 2026-08-23", d)
	}
	if got := NewDate(d.Time()); got != d {
		t.Errorf("NewDate(Time()) = %s, want %s", got, d)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "23-08-2026", "2026-8-3", "yesterday"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) succeeded, want error", s)
		}
	}
}

func TestDateAddDays(t *testing.T) {
	d, _ := ParseDate("2026-02-28")
	if got := d.AddDays(1); got != "2026-03-01" {
		t.Errorf("AddDays(1) = %s, want 2026-03-01", got)
	}
	if got := d.AddDays(-28); got != "2026-01-31" {
		t.Errorf("AddDays(-28) = %s, want 2026-01-31", got)
	}
}

func TestDateOrdering(t *testing.T) {
	a, _ := ParseDate("2026-01-09")
	b, _ := ParseDate("2026-01-10")
	if !a.Before(b) || b.Before(a) {
		t.Errorf("expected %s < %s", a, b)
	}
	if !b.After(a) {
		t.Errorf("expected %s > %s", b, a)
	}
}

func TestDatesBetween(t *testing.T) {
	from, _ := ParseDate("2026-03-30")
	to, _ := ParseDate("2026-04-02")

	dates := DatesBetween(from, to)
	want := []Date{"2026-03-30", "2026-03-31", "2026-04-01", "2026-04-02"}
	if len(dates) != len(want) {
		t.Fatalf("got %d dates, want %d", len(dates), len(want))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, dates[i], want[i])
		}
	}

	if got := DatesBetween(to, from); got != nil {
		t.Errorf("reversed range = %v, want nil", got)
	}
}

func TestDailyMetricsValidity(t *testing.T) {
	tests := []struct {
		name     string
		m        DailyMetrics
		hrv, rhr bool
		sleep    bool
	}{
		{"all valid", DailyMetrics{HRV: 48, RestingHeartRate: 52, SleepHours: 7.5}, true, true, true},
		{"hrv below floor", DailyMetrics{HRV: 9.9, RestingHeartRate: 52, SleepHours: 7.5}, false, true, true},
		{"rhr too low", DailyMetrics{HRV: 48, RestingHeartRate: 25, SleepHours: 7.5}, true, false, true},
		{"rhr too high", DailyMetrics{HRV: 48, RestingHeartRate: 210, SleepHours: 7.5}, true, false, true},
		{"sleep impossible", DailyMetrics{HRV: 48, RestingHeartRate: 52, SleepHours: 25}, true, true, false},
		{"all absent", DailyMetrics{}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.HasValidHRV(); got != tt.hrv {
				t.Errorf("HasValidHRV = %v, want %v", got, tt.hrv)
			}
			if got := tt.m.HasValidRHR(); got != tt.rhr {
				t.Errorf("HasValidRHR = %v, want %v", got, tt.rhr)
			}
			if got := tt.m.HasValidSleep(); got != tt.sleep {
				t.Errorf("HasValidSleep = %v, want %v", got, tt.sleep)
			}
		})
	}
}

func TestCategoryForScoreBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  Category
	}{
		{100, CategoryOptimal},
		{80, CategoryOptimal},
		{79.999, CategoryModerate},
		{50, CategoryModerate},
		{49.999, CategoryLow},
		{30, CategoryLow},
		{29.999, CategoryFatigue},
		{0, CategoryFatigue},
	}

	for _, tt := range tests {
		if got := CategoryForScore(tt.score); got != tt.want {
			t.Errorf("CategoryForScore(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestSettingsValidate(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}

	bad := []Settings{
		func() Settings { c := s; c.WindowLengthDays = 10; return c }(),
		func() Settings { c := s; c.MinimumSamplesForBaseline = 0; return c }(),
		func() Settings { c := s; c.Mode = "afternoon"; return c }(),
		func() Settings { c := s; c.WindowEndHour = 8; return c }(),
		func() Settings { c := s; c.WindowEndHour = 13; return c }(),
	}
	for i, b := range bad {
		if err := b.Validate(); err == nil {
			t.Errorf("case %d: Validate succeeded, want error", i)
		}
	}
}

func TestDiffSettings(t *testing.T) {
	old := DefaultSettings()
	updated := old
	updated.WindowLengthDays = 30
	updated.WindowEndHour = 10

	d := DiffSettings(old, updated)
	if d.Empty() {
		t.Fatal("expected non-empty diff")
	}
	if !d.Contains(FieldWindowLengthDays) || !d.Contains(FieldWindowEndHour) {
		t.Errorf("diff missing changed fields: %v", d.Changed)
	}
	if d.Contains(FieldMode) {
		t.Errorf("diff contains unchanged field: %v", d.Changed)
	}

	if !DiffSettings(old, old).Empty() {
		t.Error("identical settings produced a non-empty diff")
	}
}
