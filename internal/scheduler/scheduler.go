// Package scheduler owns the reconciliation triggers: a daily tick and a
// manual trigger, both funneled through the single-flight guard.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go-screening-backend/internal/domain"
	"go-screening-backend/pkg/logger"
	"go-screening-backend/pkg/singleflight"
)

type Scheduler struct {
	engine  domain.ReconciliationUsecase
	guard   singleflight.Guard
	hour    int
	timeout time.Duration

	// Last-pass state, overwritten atomically at the end of each pass and
	// readable concurrently without blocking new passes.
	lastResult atomic.Pointer[domain.SyncResult]
	lastSyncAt atomic.Pointer[time.Time]

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// New creates the scheduler. hour is the local hour of day (0-23) the
// daily pass fires at; timeout bounds each pass so a stuck external
// dependency cannot hold the guard open indefinitely (0 disables it).
func New(engine domain.ReconciliationUsecase, guard singleflight.Guard, hour int, timeout time.Duration) *Scheduler {
	return &Scheduler{
		engine:  engine,
		guard:   guard,
		hour:    hour,
		timeout: timeout,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the daily trigger loop in its own goroutine
func (s *Scheduler) Start() {
	go s.loop()
	logger.Log.Info("Reconciliation scheduler started", "hour", s.hour)
}

// Stop terminates the daily loop and waits for it to exit. A pass already
// in flight keeps running until it finishes or hits its timeout.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	<-s.done
}

func (s *Scheduler) loop() {
	defer close(s.done)
	for {
		timer := time.NewTimer(untilNextRun(time.Now(), s.hour))
		select {
		case <-timer.C:
			s.runScheduled()
		case <-s.stop:
			timer.Stop()
			return
		}
	}
}

func (s *Scheduler) runScheduled() {
	outcome := s.TriggerNow(context.Background())
	switch outcome.State {
	case domain.TriggerAlreadyRunning:
		// Another trigger beat us to it; wait for the next tick.
		logger.Log.Info("Scheduled reconciliation skipped, pass already running")
	case domain.TriggerFailed:
		logger.Log.Error("Scheduled reconciliation failed", "error", outcome.Err)
	case domain.TriggerRan:
		logger.Log.Info("Scheduled reconciliation finished",
			"added", outcome.Result.Added,
			"removed", outcome.Result.Removed,
			"duplicates_collapsed", outcome.Result.DuplicatesCollapsed,
			"failures", len(outcome.Result.Failures),
			"success", outcome.Result.Success)
	}
}

// TriggerNow runs one reconciliation attempt synchronously on the
// caller's goroutine; user-facing callers should invoke it off their
// request path. The outcome is always one of three explicit states, so
// "skipped because busy" is never mistaken for "ran and failed".
func (s *Scheduler) TriggerNow(ctx context.Context) domain.TriggerOutcome {
	ok, err := s.guard.TryEnter(ctx)
	if err != nil {
		return domain.TriggerOutcome{State: domain.TriggerFailed, Err: err}
	}
	if !ok {
		return domain.TriggerOutcome{State: domain.TriggerAlreadyRunning}
	}
	// Release even when the engine fails or ctx is already cancelled.
	defer s.guard.Exit(context.WithoutCancel(ctx))

	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.engine.Run(runCtx)
	if err != nil {
		return domain.TriggerOutcome{State: domain.TriggerFailed, Err: err}
	}

	now := time.Now()
	s.lastResult.Store(result)
	s.lastSyncAt.Store(&now)
	return domain.TriggerOutcome{State: domain.TriggerRan, Result: result}
}

// LastResult returns the most recent pass result, or nil if none has
// completed since startup
func (s *Scheduler) LastResult() *domain.SyncResult {
	return s.lastResult.Load()
}

// LastSyncAt returns when the most recent pass completed
func (s *Scheduler) LastSyncAt() (time.Time, bool) {
	t := s.lastSyncAt.Load()
	if t == nil {
		return time.Time{}, false
	}
	return *t, true
}

// untilNextRun computes the wait until the next daily run at the given
// hour, in now's location
func untilNextRun(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
