// ABOUTME: Readiness score reads, the date-keyed score upsert, and retention cleanup.
// ABOUTME: Recomputing a date updates the row in place; duplicates cannot exist.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/readiness/internal/models"
)

const scoreColumns = `date, score, category, hrv_baseline, hrv_deviation_percent,
	rhr_adjustment, sleep_adjustment, mode, window_length_days, calculated_at`

// GetScore returns the score record for a date, or nil when the date has
// never been scored.
func (d *DB) GetScore(ctx context.Context, date models.Date) (*models.ReadinessScore, error) {
	query := `SELECT ` + scoreColumns + ` FROM readiness_scores WHERE date = ?`
	s, err := scanScore(d.db.QueryRowContext(ctx, query, string(date)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get score %s: %w", date, err)
	}
	return s, nil
}

// GetScoresRange returns all scores with from <= date <= to, oldest first.
func (d *DB) GetScoresRange(ctx context.Context, from, to models.Date) ([]models.ReadinessScore, error) {
	query := `SELECT ` + scoreColumns + ` FROM readiness_scores WHERE date >= ? AND date <= ? ORDER BY date ASC`
	rows, err := d.db.QueryContext(ctx, query, string(from), string(to))
	if err != nil {
		return nil, fmt.Errorf("get scores range: %w", err)
	}
	defer rows.Close()

	var out []models.ReadinessScore
	for rows.Next() {
		s, err := scanScore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// LatestScore returns the most recent score by date, or nil when no score
// exists yet.
func (d *DB) LatestScore(ctx context.Context) (*models.ReadinessScore, error) {
	query := `SELECT ` + scoreColumns + ` FROM readiness_scores ORDER BY date DESC LIMIT 1`
	s, err := scanScore(d.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest score: %w", err)
	}
	return s, nil
}

// UpsertScore writes a score record in one atomic statement keyed by date.
func (d *DB) UpsertScore(ctx context.Context, s models.ReadinessScore) error {
	if s.Date == "" {
		return fmt.Errorf("upsert score: date is required")
	}

	query := `
		INSERT INTO readiness_scores (` + scoreColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			score = excluded.score,
			category = excluded.category,
			hrv_baseline = excluded.hrv_baseline,
			hrv_deviation_percent = excluded.hrv_deviation_percent,
			rhr_adjustment = excluded.rhr_adjustment,
			sleep_adjustment = excluded.sleep_adjustment,
			mode = excluded.mode,
			window_length_days = excluded.window_length_days,
			calculated_at = excluded.calculated_at
	`
	_, err := d.db.ExecContext(ctx, query,
		string(s.Date), s.Score, string(s.Category), s.HRVBaseline, s.HRVDeviationPercent,
		s.RHRAdjustment, s.SleepAdjustment, string(s.Mode), s.WindowLengthDays,
		s.CalculatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert score %s: %w", s.Date, err)
	}
	return nil
}

// DeleteScores removes all scores with from <= date <= to. Used by the
// coordinator to reset a range before a historical replay.
func (d *DB) DeleteScores(ctx context.Context, from, to models.Date) error {
	_, err := d.db.ExecContext(ctx,
		`DELETE FROM readiness_scores WHERE date >= ? AND date <= ?`,
		string(from), string(to))
	if err != nil {
		return fmt.Errorf("delete scores: %w", err)
	}
	return nil
}

// DeleteOlderThan removes metrics and scores whose date is older than the
// given age, returning the number of rows removed. This is the retention
// cleanup policy; nothing else ever deletes score records.
func (d *DB) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := models.NewDate(time.Now().Add(-age))

	var total int64
	for _, table := range []string{"readiness_scores", "daily_metrics"} {
		res, err := d.db.ExecContext(ctx,
			`DELETE FROM `+table+` WHERE date < ?`, string(cutoff))
		if err != nil {
			return total, fmt.Errorf("delete from %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("rows affected: %w", err)
		}
		total += n
	}
	return total, nil
}

func scanScore(row rowScanner) (*models.ReadinessScore, error) {
	var s models.ReadinessScore
	var date, category, mode, calculatedAt string

	err := row.Scan(&date, &s.Score, &category, &s.HRVBaseline, &s.HRVDeviationPercent,
		&s.RHRAdjustment, &s.SleepAdjustment, &mode, &s.WindowLengthDays, &calculatedAt)
	if err != nil {
		return nil, err
	}

	s.Date = models.Date(date)
	s.Category = models.Category(category)
	s.Mode = models.Mode(mode)
	s.CalculatedAt, _ = time.Parse(time.RFC3339, calculatedAt)
	return &s, nil
}
