// Package singleflight guards the reconciliation engine so at most one
// pass executes at a time. Callers that lose the race get false back
// immediately; they never block or queue.
package singleflight

import (
	"context"
	"sync/atomic"
)

// Guard is an exclusive, non-blocking entry gate. TryEnter is a single
// atomic test-and-set: exactly one concurrent caller wins. Exit resets
// the gate unconditionally and must run in a deferred path so a failed
// pass never wedges future attempts.
type Guard interface {
	TryEnter(ctx context.Context) (bool, error)
	Exit(ctx context.Context)
}

// LocalGuard is the in-process implementation, suitable for
// single-instance deployments. Multi-instance deployments need the
// Redis-backed guard instead, since this flag is process-wide state.
type LocalGuard struct {
	running atomic.Bool
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{}
}

func (g *LocalGuard) TryEnter(_ context.Context) (bool, error) {
	return g.running.CompareAndSwap(false, true), nil
}

func (g *LocalGuard) Exit(_ context.Context) {
	g.running.Store(false)
}
