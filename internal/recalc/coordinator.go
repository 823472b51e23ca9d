// ABOUTME: Recalculation coordinator: debounces triggers, classifies scope, drives replays.
// ABOUTME: One active run at a time; cancellation is cooperative and checked between days.
package recalc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/scoring"
	"github.com/harperreed/readiness/internal/source"
	"github.com/harperreed/readiness/internal/storage"
	"github.com/harperreed/readiness/internal/widget"
)

const (
	// HistoricalLookbackDays is the fixed replay range for a historical
	// recalculation.
	HistoricalLookbackDays = 90

	// DebounceInterval collapses rapid repeated triggers into one run.
	DebounceInterval = time.Second
)

// Progress reports replay advancement after each day.
type Progress struct {
	Fraction float64
	Status   string
}

// ProgressFunc receives progress updates during a historical run.
type ProgressFunc func(Progress)

// DayFailure records one date that could not be scored during a sweep.
type DayFailure struct {
	Date models.Date
	Err  error
}

// Result summarizes one completed run.
type Result struct {
	RunID    uuid.UUID
	From, To models.Date
	Days     int
	Scored   int
	Failures []DayFailure
	// Warnings lists days scored from partial data
	// (HistoricalDataIncompleteError with Partial set).
	Warnings []DayFailure
}

// SettingsProvider supplies the settings snapshot taken at run start.
type SettingsProvider interface {
	Current() models.Settings
}

// Coordinator reacts to settings diffs and manual triggers. Today-only
// changes recompute synchronously for fast feedback; baseline-affecting
// changes reset and replay the lookback range on a background goroutine.
type Coordinator struct {
	store      storage.Store
	src        source.DataSource
	settings   SettingsProvider
	publisher  widget.Publisher
	logger     *log.Logger
	onProgress ProgressFunc
	debounceIn time.Duration

	// runMu serializes runs: a single active recomputation at a time,
	// which also serializes writes per date.
	runMu sync.Mutex

	mu       sync.Mutex // guards debounce and cancel
	debounce *time.Timer
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithPublisher sets the widget publisher notified after successful runs.
func WithPublisher(p widget.Publisher) Option {
	return func(c *Coordinator) { c.publisher = p }
}

// WithLogger sets the coordinator's logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithProgress sets the progress callback for historical runs.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Coordinator) { c.onProgress = fn }
}

// WithDebounce overrides the debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) { c.debounceIn = d }
}

// New wires a coordinator. All collaborators are injected; the
// coordinator holds no ambient global state.
func New(store storage.Store, src source.DataSource, settings SettingsProvider, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:      store,
		src:        src,
		settings:   settings,
		logger:     log.NewWithOptions(os.Stderr, log.Options{Prefix: "recalc"}),
		debounceIn: DebounceInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HandleSettingsChange is the settings-store listener. Today-only
// changes recompute synchronously; historical changes recompute today
// first for immediate feedback, then schedule the background sweep.
func (c *Coordinator) HandleSettingsChange(diff models.SettingsDiff, updated models.Settings) {
	scope := Classify(diff)
	c.logger.Info("settings changed", "fields", diff.Changed, "scope", scope.String())

	switch scope {
	case ScopeToday:
		if _, err := c.RecomputeToday(context.Background()); err != nil {
			c.logger.Warn("today recompute failed", "err", err)
		}
	case ScopeHistorical:
		if _, err := c.RecomputeToday(context.Background()); err != nil {
			c.logger.Warn("today recompute failed", "err", err)
		}
		c.ScheduleHistorical(HistoricalLookbackDays)
	}
}

// ScheduleHistorical debounces a background historical run over the
// given lookback. A new trigger supersedes both a pending debounce and
// an in-flight run.
func (c *Coordinator) ScheduleHistorical(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.debounce != nil {
		c.debounce.Stop()
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.debounce = time.AfterFunc(c.debounceIn, func() { c.startHistorical(days) })
}

func (c *Coordinator) startHistorical(days int) {
	c.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		res, err := c.RunHistorical(ctx, days)
		switch {
		case errors.Is(err, context.Canceled):
			c.logger.Info("historical run cancelled", "scored", res.Scored)
		case err != nil:
			c.logger.Error("historical run failed", "err", err)
		default:
			c.logger.Info("historical run complete",
				"run_id", res.RunID, "scored", res.Scored, "skipped", len(res.Failures))
		}
	}()
}

// Cancel stops a pending debounce and cancels any in-flight run.
// Already-written days remain valid.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Close cancels outstanding work and waits for background runs to exit.
func (c *Coordinator) Close() error {
	c.Cancel()
	c.wg.Wait()
	return nil
}

// RecomputeToday computes and upserts today's score synchronously.
func (c *Coordinator) RecomputeToday(ctx context.Context) (*models.ReadinessScore, error) {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	snap := c.settings.Current()
	date := models.Today()

	rec, warn, err := c.computeDay(ctx, date, snap, false)
	if err != nil {
		return nil, err
	}
	if err := c.store.UpsertScore(ctx, *rec); err != nil {
		return nil, &scoring.DataProcessingError{Component: "store", Reason: "upsert score", Err: err}
	}
	if warn != nil {
		c.logger.Debug("scored from partial data", "date", date, "warn", warn)
	}
	c.publishSnapshot(ctx)
	return rec, nil
}

// RunHistorical resets all scores in the lookback range and replays it
// day by day, oldest to newest. Each day's baseline uses up to
// windowLengthDays of data strictly before that day, so replay order
// never changes results. Per-day failures are recorded and skipped; the
// run fails only when every day fails, surfacing the last error.
// Cancellation is checked between days and never rolls back completed
// days.
func (c *Coordinator) RunHistorical(ctx context.Context, days int) (*Result, error) {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	if days < 1 {
		return &Result{}, fmt.Errorf("historical run needs at least one day, got %d", days)
	}

	snap := c.settings.Current()
	to := models.Today()
	from := to.AddDays(-(days - 1))
	dates := models.DatesBetween(from, to)

	res := &Result{RunID: uuid.New(), From: from, To: to, Days: len(dates)}
	c.logger.Info("historical run start", "run_id", res.RunID, "from", from, "to", to)

	if err := c.store.DeleteScores(ctx, from, to); err != nil {
		return res, &scoring.DataProcessingError{Component: "store", Reason: "reset scores", Err: err}
	}

	var lastErr error
	for i, date := range dates {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		rec, warn, err := c.computeDay(ctx, date, snap, true)
		if err == nil {
			err = c.store.UpsertScore(ctx, *rec)
			if err != nil {
				err = &scoring.DataProcessingError{Component: "store", Reason: "upsert score", Err: err}
			}
		}
		if err != nil {
			res.Failures = append(res.Failures, DayFailure{Date: date, Err: err})
			lastErr = err
			c.logger.Debug("day skipped", "date", date, "err", err)
		} else {
			res.Scored++
			if warn != nil {
				res.Warnings = append(res.Warnings, DayFailure{Date: date, Err: warn})
			}
		}

		c.reportProgress(float64(i+1)/float64(len(dates)),
			fmt.Sprintf("Recalculated %s (%d/%d)", date, i+1, len(dates)))
	}

	if res.Scored == 0 {
		return res, lastErr
	}
	c.publishSnapshot(ctx)
	return res, nil
}

// computeDay loads a day's metrics (store first, then the biometric
// source for anything missing), computes baselines from the prior
// window, and scores the day. The returned warn is a Partial
// HistoricalDataIncompleteError when an enabled optional input was
// absent but a score was still produced.
func (c *Coordinator) computeDay(ctx context.Context, date models.Date, snap models.Settings, historical bool) (*models.ReadinessScore, error, error) {
	m, err := c.loadDay(ctx, date, snap)
	if err != nil {
		// The quick path reports missing data in caller-facing terms.
		var noData *scoring.HistoricalDataMissingError
		if !historical && errors.As(err, &noData) {
			return nil, nil, &scoring.InsufficientDataError{Missing: []string{"hrv"}}
		}
		return nil, nil, err
	}

	if !m.HasValidHRV() {
		if historical {
			return nil, nil, &scoring.HistoricalDataIncompleteError{Date: date, Missing: []string{"hrv"}, Partial: false}
		}
		return nil, nil, &scoring.InsufficientDataError{Missing: []string{"hrv"}}
	}

	prior, err := c.store.GetMetricsRange(ctx, date.AddDays(-snap.WindowLengthDays), date.AddDays(-1))
	if err != nil {
		return nil, nil, &scoring.DataProcessingError{Component: "store", Reason: "read baseline window", Err: err}
	}

	var hrvSamples, rhrSamples []scoring.Sample
	for _, p := range prior {
		hrvSamples = append(hrvSamples, scoring.Sample{Date: p.Date, Value: p.HRV})
		rhrSamples = append(rhrSamples, scoring.Sample{Date: p.Date, Value: p.RestingHeartRate})
	}

	hrvBaseline, err := scoring.ComputeBaseline(hrvSamples, scoring.HRVBaselineRange, snap.MinimumSamplesForBaseline)
	if err != nil {
		return nil, nil, err
	}

	var rhrBaseline *float64
	if snap.UseRHRAdjustment {
		if b, err := scoring.ComputeBaseline(rhrSamples, scoring.RHRBaselineRange, snap.MinimumSamplesForBaseline); err == nil {
			rhrBaseline = &b
		}
	}

	result, err := scoring.ComputeScore(*m, hrvBaseline, rhrBaseline, snap)
	if err != nil {
		return nil, nil, err
	}

	var warn error
	var missing []string
	if snap.UseRHRAdjustment && !m.HasValidRHR() {
		missing = append(missing, "resting_heart_rate")
	}
	if snap.UseSleepAdjustment && !m.HasValidSleep() {
		missing = append(missing, "sleep")
	}
	if len(missing) > 0 {
		warn = &scoring.HistoricalDataIncompleteError{Date: date, Missing: missing, Partial: true}
	}

	rec := result.ScoreRecord(date, snap, time.Now())
	return &rec, warn, nil
}

// loadDay merges the stored metrics for a date with anything the
// biometric source can supply. No data at all is a
// HistoricalDataMissingError; a missing optional metric is simply left
// absent.
func (c *Coordinator) loadDay(ctx context.Context, date models.Date, snap models.Settings) (*models.DailyMetrics, error) {
	stored, err := c.store.GetMetrics(ctx, date)
	if err != nil {
		return nil, &scoring.DataProcessingError{Component: "store", Reason: "read metrics", Err: err}
	}

	merged := models.DailyMetrics{Date: date}
	if stored != nil {
		merged = *stored
	}

	w := source.DayWindow(date, snap)
	fetched := false

	if !merged.HasValidHRV() {
		v, err := c.src.HRV(ctx, w)
		switch {
		case err == nil:
			merged.HRV = v
			fetched = true
		case errors.Is(err, source.ErrNoData):
			// leave absent
		default:
			return nil, &scoring.DataProcessingError{Component: "source", Reason: "fetch hrv", Err: err}
		}
	}

	if snap.UseRHRAdjustment && !merged.HasValidRHR() {
		v, err := c.src.RestingHeartRate(ctx, w)
		if err == nil {
			merged.RestingHeartRate = v
			fetched = true
		} else if !errors.Is(err, source.ErrNoData) {
			// Optional metric: a source failure must not block scoring.
			c.logger.Warn("rhr fetch failed", "date", date, "err", err)
		}
	}

	if snap.UseSleepAdjustment && !merged.HasValidSleep() {
		s, err := c.src.Sleep(ctx, w)
		if err == nil {
			merged.SleepHours = s.Hours
			merged.SleepQuality = s.Quality
			fetched = true
		} else if !errors.Is(err, source.ErrNoData) {
			c.logger.Warn("sleep fetch failed", "date", date, "err", err)
		}
	}

	if merged.IsEmpty() {
		return nil, &scoring.HistoricalDataMissingError{Date: date}
	}

	if fetched {
		if err := c.store.UpsertMetrics(ctx, merged); err != nil {
			return nil, &scoring.DataProcessingError{Component: "store", Reason: "upsert metrics", Err: err}
		}
	}
	return &merged, nil
}

func (c *Coordinator) reportProgress(fraction float64, status string) {
	if c.onProgress != nil {
		c.onProgress(Progress{Fraction: fraction, Status: status})
	}
}

// publishSnapshot pushes the latest score to widget surfaces. Failures
// are logged and swallowed; publishing never fails a calculation.
func (c *Coordinator) publishSnapshot(ctx context.Context) {
	if c.publisher == nil {
		return
	}
	latest, err := c.store.LatestScore(ctx)
	if err != nil || latest == nil {
		return
	}
	recent, err := c.store.GetScoresRange(ctx, latest.Date.AddDays(-(widget.HistoryLength-1)), latest.Date)
	if err != nil {
		recent = nil
	}
	if err := c.publisher.Publish(ctx, widget.SnapshotFrom(*latest, recent)); err != nil {
		c.logger.Warn("widget publish failed", "err", err)
	}
}
