// Package retention removes stored uploads once they pass a maximum age.
package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"gamelog-gateway/internal/shared/metrics"
	"gamelog-gateway/internal/shared/storage/object"
	"gamelog-gateway/internal/shared/telemetry"
)

// Result summarizes one sweep.
type Result struct {
	Scanned int
	Deleted int
	Failed  int
}

// Sweeper deletes store entries older than MaxAge on a cron schedule.
type Sweeper struct {
	store    object.ObjectStore
	maxAge   time.Duration
	schedule string
	now      func() time.Time
	cron     *cron.Cron
}

// New returns a Sweeper, or nil when maxAge disables retention.
func New(store object.ObjectStore, maxAge time.Duration, schedule string) (*Sweeper, error) {
	if maxAge <= 0 {
		return nil, nil
	}
	if schedule == "" {
		schedule = "@hourly"
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("parse retention schedule %q: %w", schedule, err)
	}
	return &Sweeper{
		store:    store,
		maxAge:   maxAge,
		schedule: schedule,
		now:      time.Now,
	}, nil
}

// Start schedules the sweep. Calling Start on a nil Sweeper is a no-op.
func (s *Sweeper) Start() error {
	if s == nil {
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc(s.schedule, func() {
		if _, err := s.Sweep(context.Background()); err != nil {
			telemetry.Error("retention.sweep.failed", map[string]any{"err": err})
		}
	})
	if err != nil {
		return fmt.Errorf("schedule retention: %w", err)
	}
	s.cron = c
	c.Start()
	telemetry.Info("retention.started", map[string]any{
		"schedule": s.schedule,
		"max_age":  s.maxAge.String(),
	})
	return nil
}

// Stop halts scheduling. A sweep already running is not waited for.
func (s *Sweeper) Stop() {
	if s == nil || s.cron == nil {
		return
	}
	s.cron.Stop()
}

// Sweep deletes every entry whose modification time is older than MaxAge.
func (s *Sweeper) Sweep(ctx context.Context) (Result, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list store: %w", err)
	}

	cutoff := s.now().Add(-s.maxAge)
	res := Result{Scanned: len(entries)}
	for _, e := range entries {
		if !e.ModTime.Before(cutoff) {
			continue
		}
		if err := s.store.Delete(ctx, e.Key); err != nil {
			res.Failed++
			telemetry.Warn("retention.delete.failed", map[string]any{"key": e.Key, "err": err})
			continue
		}
		res.Deleted++
	}

	metrics.AddRetentionPurged(res.Deleted)
	telemetry.Info("retention.sweep", map[string]any{
		"scanned": res.Scanned,
		"deleted": res.Deleted,
		"failed":  res.Failed,
	})
	return res, nil
}
