package utils

import (
	"context"
	"sync/atomic"
	"time"
)

// Keeps track of the time that passes between `Stopwatch.Resume()`
// and `Stopwatch.Pause()` calls.
//
// Once the summary running time reaches the budget, `onExceed` is
// called, exactly once, from its own goroutine. A zero budget never
// runs out.
//
// Stopwatch is not thread safe.
type Stopwatch struct {
	budget   time.Duration
	elapsed  time.Duration
	resumed  time.Time
	running  bool
	closed   bool
	timer    *time.Timer
	fired    atomic.Bool
	onExceed func()
}

// Creates Stopwatch with given budget and onExceed callback.
//
// Created Stopwatch is in PAUSED state.
func NewStopwatch(budget time.Duration, onExceed func()) *Stopwatch {
	return &Stopwatch{
		budget:   budget,
		onExceed: onExceed,
	}
}

func (s *Stopwatch) fire() {
	if !s.fired.Swap(true) {
		s.onExceed()
	}
}

func (s *Stopwatch) Resume() {
	if s.running {
		return
	}

	s.running = true
	s.resumed = time.Now()

	if s.budget > 0 && !s.closed {
		s.timer = time.AfterFunc(max(s.budget-s.elapsed, 0), s.fire)
	}
}

func (s *Stopwatch) Pause() {
	if !s.running {
		return
	}

	s.running = false
	s.elapsed += time.Since(s.resumed)

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Summary running time, including the current run if any.
func (s *Stopwatch) Elapsed() time.Duration {
	if s.running {
		return s.elapsed + time.Since(s.resumed)
	}
	return s.elapsed
}

// Whether `onExceed` was called.
func (s *Stopwatch) Exceeded() bool {
	return s.fired.Load()
}

// Disarms the stopwatch. Time is still measured afterwards, but
// `onExceed` is never called. Close is idempotent.
func (s *Stopwatch) Close() {
	s.closed = true

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Creates context and stopwatch bounded together.
//
// When stopwatch summary reaches `budget`, context is cancelled
// with `cause` cause.
//
// The returned cancel func closes the stopwatch and releases the
// context, and must be called once the stopwatch is no longer needed.
func NewStopwatchContext(parent context.Context, budget time.Duration, cause error) (context.Context, *Stopwatch, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)

	sw := NewStopwatch(budget, func() {
		cancel(cause)
	})

	return ctx, sw, func() {
		sw.Close()
		cancel(nil)
	}
}
