// ABOUTME: Badger-backed cache wrapping a DataSource.
// ABOUTME: A historical replay hits the upstream source at most once per day window.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v3"

	"github.com/harperreed/readiness/internal/models"
)

// cacheEntry is the stored result of one upstream call. NoData records a
// definitive "nothing for this window" so the upstream is not asked again.
type cacheEntry struct {
	Value   float64 `json:"value"`
	Quality float64 `json:"quality,omitempty"`
	NoData  bool    `json:"no_data,omitempty"`
}

// CachedSource memoizes upstream fetches in a local badger KV. Past days
// are immutable once fetched; today's window is never cached because its
// data may still be arriving.
type CachedSource struct {
	upstream DataSource
	db       *badger.DB
}

// NewCachedSource opens (or creates) the cache at dir and wraps upstream.
func NewCachedSource(upstream DataSource, dir string) (*CachedSource, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open sample cache: %w", err)
	}
	return &CachedSource{upstream: upstream, db: db}, nil
}

// Close closes the underlying badger database.
func (c *CachedSource) Close() error {
	return c.db.Close()
}

func (c *CachedSource) cacheable(date models.Date) bool {
	return date.Before(models.Today())
}

func (c *CachedSource) get(key string) (*cacheEntry, error) {
	var entry cacheEntry
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return json.Unmarshal(val, &entry)
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sample cache: %w", err)
	}
	return &entry, nil
}

func (c *CachedSource) put(key string, entry cacheEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	// Cache writes are best effort; a failed write just means a refetch.
	_ = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// fetch memoizes one upstream call under key. ErrNoData is cached as a
// negative entry; any other upstream error is returned uncached.
func (c *CachedSource) fetch(key string, cacheable bool, call func() (cacheEntry, error)) (cacheEntry, error) {
	if cacheable {
		if entry, err := c.get(key); err == nil && entry != nil {
			if entry.NoData {
				return cacheEntry{}, ErrNoData
			}
			return *entry, nil
		}
	}

	entry, err := call()
	if err != nil {
		if errors.Is(err, ErrNoData) && cacheable {
			c.put(key, cacheEntry{NoData: true})
		}
		return cacheEntry{}, err
	}
	if cacheable {
		c.put(key, entry)
	}
	return entry, nil
}

func (c *CachedSource) HRV(ctx context.Context, w Window) (float64, error) {
	entry, err := c.fetch("hrv:"+string(w.Date), c.cacheable(w.Date), func() (cacheEntry, error) {
		v, err := c.upstream.HRV(ctx, w)
		return cacheEntry{Value: v}, err
	})
	return entry.Value, err
}

func (c *CachedSource) RestingHeartRate(ctx context.Context, w Window) (float64, error) {
	entry, err := c.fetch("rhr:"+string(w.Date), c.cacheable(w.Date), func() (cacheEntry, error) {
		v, err := c.upstream.RestingHeartRate(ctx, w)
		return cacheEntry{Value: v}, err
	})
	return entry.Value, err
}

func (c *CachedSource) Sleep(ctx context.Context, w Window) (SleepSample, error) {
	entry, err := c.fetch("sleep:"+string(w.Date), c.cacheable(w.Date), func() (cacheEntry, error) {
		s, err := c.upstream.Sleep(ctx, w)
		return cacheEntry{Value: s.Hours, Quality: s.Quality}, err
	})
	return SleepSample{Hours: entry.Value, Quality: entry.Quality}, err
}
