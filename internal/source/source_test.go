// ABOUTME: Tests for day windows, the store-backed source, and the badger cache.
// ABOUTME: The fake upstream counts calls to prove memoization.
package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/storage"
)

func TestDayWindowMorningMode(t *testing.T) {
	s := models.DefaultSettings()
	s.Mode = models.ModeMorning
	s.WindowEndHour = 11

	w := DayWindow("2026-08-20", s)
	if !w.Start.Equal(models.Date("2026-08-20").Time()) {
		t.Errorf("start = %v, want midnight", w.Start)
	}
	if got := w.End.Sub(w.Start); got != 11*time.Hour {
		t.Errorf("window length = %v, want 11h", got)
	}
}

func TestDayWindowFullDayMode(t *testing.T) {
	s := models.DefaultSettings()
	s.Mode = models.ModeFullDay

	w := DayWindow("2026-08-20", s)
	if !w.End.Equal(models.Date("2026-08-21").Time()) {
		t.Errorf("end = %v, want next midnight", w.End)
	}
}

func TestStoreSource(t *testing.T) {
	db, err := storage.Open(t.TempDir() + "/readiness.db")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	err = db.UpsertMetrics(ctx, models.DailyMetrics{
		Date: "2026-08-20", HRV: 48, SleepHours: 7.5, SleepQuality: 80,
	})
	if err != nil {
		t.Fatalf("UpsertMetrics failed: %v", err)
	}

	src := NewStoreSource(db)
	w := DayWindow("2026-08-20", models.DefaultSettings())

	hrv, err := src.HRV(ctx, w)
	if err != nil {
		t.Fatalf("HRV failed: %v", err)
	}
	if hrv != 48 {
		t.Errorf("hrv = %v, want 48", hrv)
	}

	// RHR was never logged for the day.
	if _, err := src.RestingHeartRate(ctx, w); !errors.Is(err, ErrNoData) {
		t.Errorf("RestingHeartRate err = %v, want ErrNoData", err)
	}

	sleep, err := src.Sleep(ctx, w)
	if err != nil {
		t.Fatalf("Sleep failed: %v", err)
	}
	if sleep.Hours != 7.5 || sleep.Quality != 80 {
		t.Errorf("sleep = %+v, want 7.5h/80", sleep)
	}

	// A date with no record at all.
	if _, err := src.HRV(ctx, DayWindow("2026-08-01", models.DefaultSettings())); !errors.Is(err, ErrNoData) {
		t.Errorf("missing day err = %v, want ErrNoData", err)
	}
}

// countingSource counts upstream calls per metric.
type countingSource struct {
	hrvCalls   int
	hrv        float64
	hrvMissing bool
}

func (c *countingSource) HRV(ctx context.Context, w Window) (float64, error) {
	c.hrvCalls++
	if c.hrvMissing {
		return 0, ErrNoData
	}
	return c.hrv, nil
}

func (c *countingSource) RestingHeartRate(ctx context.Context, w Window) (float64, error) {
	return 0, ErrNoData
}

func (c *countingSource) Sleep(ctx context.Context, w Window) (SleepSample, error) {
	return SleepSample{}, ErrNoData
}

func TestCachedSourceMemoizesPastDays(t *testing.T) {
	upstream := &countingSource{hrv: 51}
	cached, err := NewCachedSource(upstream, t.TempDir())
	if err != nil {
		t.Fatalf("NewCachedSource failed: %v", err)
	}
	defer cached.Close()

	ctx := context.Background()
	w := DayWindow(models.Today().AddDays(-3), models.DefaultSettings())

	for i := 0; i < 3; i++ {
		v, err := cached.HRV(ctx, w)
		if err != nil {
			t.Fatalf("HRV failed: %v", err)
		}
		if v != 51 {
			t.Errorf("hrv = %v, want 51", v)
		}
	}
	if upstream.hrvCalls != 1 {
		t.Errorf("upstream called %d times, want 1", upstream.hrvCalls)
	}
}

func TestCachedSourceCachesNoData(t *testing.T) {
	upstream := &countingSource{hrvMissing: true}
	cached, err := NewCachedSource(upstream, t.TempDir())
	if err != nil {
		t.Fatalf("NewCachedSource failed: %v", err)
	}
	defer cached.Close()

	ctx := context.Background()
	w := DayWindow(models.Today().AddDays(-5), models.DefaultSettings())

	for i := 0; i < 2; i++ {
		if _, err := cached.HRV(ctx, w); !errors.Is(err, ErrNoData) {
			t.Fatalf("err = %v, want ErrNoData", err)
		}
	}
	if upstream.hrvCalls != 1 {
		t.Errorf("upstream called %d times, want 1 (no-data cached)", upstream.hrvCalls)
	}
}

func TestCachedSourceNeverCachesToday(t *testing.T) {
	upstream := &countingSource{hrv: 47}
	cached, err := NewCachedSource(upstream, t.TempDir())
	if err != nil {
		t.Fatalf("NewCachedSource failed: %v", err)
	}
	defer cached.Close()

	ctx := context.Background()
	w := DayWindow(models.Today(), models.DefaultSettings())

	for i := 0; i < 2; i++ {
		if _, err := cached.HRV(ctx, w); err != nil {
			t.Fatalf("HRV failed: %v", err)
		}
	}
	if upstream.hrvCalls != 2 {
		t.Errorf("upstream called %d times, want 2 (today uncached)", upstream.hrvCalls)
	}
}
