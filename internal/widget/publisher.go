// ABOUTME: WidgetPublisher contract and the published snapshot shape.
// ABOUTME: Publishing is best-effort; a publish failure never fails a calculation.
package widget

import (
	"context"
	"time"

	"github.com/harperreed/readiness/internal/models"
)

// HistoryLength is how many recent scores a snapshot carries.
const HistoryLength = 7

// Entry is one historical score in a snapshot.
type Entry struct {
	Date     models.Date     `json:"date"`
	Score    float64         `json:"score"`
	Category models.Category `json:"category"`
}

// Snapshot is the latest readiness state pushed to widget surfaces after
// every successful run.
type Snapshot struct {
	Score     float64         `json:"score"`
	Category  models.Category `json:"category"`
	UpdatedAt time.Time       `json:"updated_at"`
	History   []Entry         `json:"history,omitempty"`
}

// SnapshotFrom builds a snapshot from the latest score and recent history
// (newest first, truncated to HistoryLength).
func SnapshotFrom(latest models.ReadinessScore, recent []models.ReadinessScore) Snapshot {
	snap := Snapshot{
		Score:     latest.Score,
		Category:  latest.Category,
		UpdatedAt: latest.CalculatedAt,
	}
	for i := len(recent) - 1; i >= 0 && len(snap.History) < HistoryLength; i-- {
		s := recent[i]
		snap.History = append(snap.History, Entry{Date: s.Date, Score: s.Score, Category: s.Category})
	}
	return snap
}

// Publisher delivers snapshots to a widget surface.
type Publisher interface {
	Publish(ctx context.Context, snap Snapshot) error
}

// Multi fans a snapshot out to several publishers, returning the first
// error after attempting all of them.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, snap Snapshot) error {
	var firstErr error
	for _, p := range m {
		if err := p.Publish(ctx, snap); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
