// ABOUTME: Charm KV widget publisher: snapshots synced through Charm Cloud.
// ABOUTME: Data is E2E encrypted with the user's SSH key; remote widgets read the KV.
package widget

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/kv"
)

const (
	dbName    = "readiness"
	charmHost = "charm.2389.dev"

	latestKey = "widget:latest"
)

// CharmPublisher stores snapshots in Charm KV so phone and watch widgets
// on linked devices pick them up after sync.
type CharmPublisher struct {
	mu sync.Mutex
	kv *kv.KV
}

// NewCharmPublisher opens the Charm-backed KV database.
func NewCharmPublisher() (*CharmPublisher, error) {
	// Set server before opening KV
	if err := os.Setenv("CHARM_HOST", charmHost); err != nil {
		return nil, err
	}

	db, err := kv.OpenWithDefaultsFallback(dbName)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}
	return &CharmPublisher{kv: db}, nil
}

func (p *CharmPublisher) Publish(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode widget snapshot: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.kv.IsReadOnly() {
		// Another process holds the lock; the next publish will catch up.
		return nil
	}
	if err := p.kv.Set([]byte(latestKey), data); err != nil {
		return fmt.Errorf("write widget snapshot: %w", err)
	}
	// Cloud sync is best effort; local widgets read the KV directly.
	_ = p.kv.Sync()
	return nil
}

// Close closes the KV database connection.
func (p *CharmPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.kv != nil {
		return p.kv.Close()
	}
	return nil
}
