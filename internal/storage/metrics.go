// ABOUTME: Daily metric reads and the date-keyed metrics upsert.
// ABOUTME: Zero-valued fields in an upsert leave existing columns untouched.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/readiness/internal/models"
)

// GetMetrics returns the metrics record for a date, or nil when the date
// has no record.
func (d *DB) GetMetrics(ctx context.Context, date models.Date) (*models.DailyMetrics, error) {
	query := `
		SELECT date, hrv, resting_heart_rate, sleep_hours, sleep_quality, updated_at
		FROM daily_metrics
		WHERE date = ?
	`
	m, err := scanMetrics(d.db.QueryRowContext(ctx, query, string(date)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get metrics %s: %w", date, err)
	}
	return m, nil
}

// GetMetricsRange returns all metric records with from <= date <= to,
// ordered oldest first.
func (d *DB) GetMetricsRange(ctx context.Context, from, to models.Date) ([]models.DailyMetrics, error) {
	query := `
		SELECT date, hrv, resting_heart_rate, sleep_hours, sleep_quality, updated_at
		FROM daily_metrics
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`
	rows, err := d.db.QueryContext(ctx, query, string(from), string(to))
	if err != nil {
		return nil, fmt.Errorf("get metrics range: %w", err)
	}
	defer rows.Close()

	var out []models.DailyMetrics
	for rows.Next() {
		m, err := scanMetrics(rows)
		if err != nil {
			return nil, fmt.Errorf("scan metrics: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// UpsertMetrics writes a day's metrics in one atomic statement. On
// conflict with an existing date, zero-valued fields keep the stored
// value, so partial updates (say, logging only sleep) never erase the
// morning's HRV entry.
func (d *DB) UpsertMetrics(ctx context.Context, m models.DailyMetrics) error {
	if m.Date == "" {
		return fmt.Errorf("upsert metrics: date is required")
	}
	updatedAt := m.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	query := `
		INSERT INTO daily_metrics (date, hrv, resting_heart_rate, sleep_hours, sleep_quality, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			hrv = CASE WHEN excluded.hrv != 0 THEN excluded.hrv ELSE daily_metrics.hrv END,
			resting_heart_rate = CASE WHEN excluded.resting_heart_rate != 0 THEN excluded.resting_heart_rate ELSE daily_metrics.resting_heart_rate END,
			sleep_hours = CASE WHEN excluded.sleep_hours != 0 THEN excluded.sleep_hours ELSE daily_metrics.sleep_hours END,
			sleep_quality = CASE WHEN excluded.sleep_quality != 0 THEN excluded.sleep_quality ELSE daily_metrics.sleep_quality END,
			updated_at = excluded.updated_at
	`
	_, err := d.db.ExecContext(ctx, query,
		string(m.Date), m.HRV, m.RestingHeartRate, m.SleepHours, m.SleepQuality,
		updatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert metrics %s: %w", m.Date, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMetrics(row rowScanner) (*models.DailyMetrics, error) {
	var m models.DailyMetrics
	var date, updatedAt string

	err := row.Scan(&date, &m.HRV, &m.RestingHeartRate, &m.SleepHours, &m.SleepQuality, &updatedAt)
	if err != nil {
		return nil, err
	}

	m.Date = models.Date(date)
	m.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &m, nil
}
