// ABOUTME: DataSource backed by the day-record store.
// ABOUTME: Serves manually logged metrics; the default source for the CLI.
package source

import (
	"context"
	"fmt"

	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/storage"
)

// StoreSource reads samples from DailyMetrics records already in the
// store. It ignores the window's time-of-day bounds: manually logged
// values are already one-per-day aggregates.
type StoreSource struct {
	store storage.Store
}

// NewStoreSource wraps a day-record store as a data source.
func NewStoreSource(store storage.Store) *StoreSource {
	return &StoreSource{store: store}
}

func (s *StoreSource) day(ctx context.Context, date models.Date) (*models.DailyMetrics, error) {
	m, err := s.store.GetMetrics(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("read metrics for %s: %w", date, err)
	}
	if m == nil || m.IsEmpty() {
		return nil, ErrNoData
	}
	return m, nil
}

func (s *StoreSource) HRV(ctx context.Context, w Window) (float64, error) {
	m, err := s.day(ctx, w.Date)
	if err != nil {
		return 0, err
	}
	if m.HRV == 0 {
		return 0, ErrNoData
	}
	return m.HRV, nil
}

func (s *StoreSource) RestingHeartRate(ctx context.Context, w Window) (float64, error) {
	m, err := s.day(ctx, w.Date)
	if err != nil {
		return 0, err
	}
	if m.RestingHeartRate == 0 {
		return 0, ErrNoData
	}
	return m.RestingHeartRate, nil
}

func (s *StoreSource) Sleep(ctx context.Context, w Window) (SleepSample, error) {
	m, err := s.day(ctx, w.Date)
	if err != nil {
		return SleepSample{}, err
	}
	if m.SleepHours == 0 {
		return SleepSample{}, ErrNoData
	}
	return SleepSample{Hours: m.SleepHours, Quality: m.SleepQuality}, nil
}
