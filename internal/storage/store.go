// ABOUTME: Store interface: the day-record storage contract.
// ABOUTME: Everything is keyed by calendar date; upserts are atomic and uniqueness-enforcing.
package storage

import (
	"context"
	"time"

	"github.com/harperreed/readiness/internal/models"
)

// Store is the contract the recalculation pipeline drives. Implementations
// must key metrics and scores uniquely by calendar date and make each
// upsert a single atomic operation, so that recomputing a date updates the
// existing record rather than creating a duplicate.
type Store interface {
	// Daily metrics
	GetMetrics(ctx context.Context, date models.Date) (*models.DailyMetrics, error)
	GetMetricsRange(ctx context.Context, from, to models.Date) ([]models.DailyMetrics, error)
	UpsertMetrics(ctx context.Context, m models.DailyMetrics) error

	// Readiness scores
	GetScore(ctx context.Context, date models.Date) (*models.ReadinessScore, error)
	GetScoresRange(ctx context.Context, from, to models.Date) ([]models.ReadinessScore, error)
	LatestScore(ctx context.Context) (*models.ReadinessScore, error)
	UpsertScore(ctx context.Context, s models.ReadinessScore) error
	DeleteScores(ctx context.Context, from, to models.Date) error

	// Retention
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)

	// Lifecycle
	Close() error
}
