package app

import (
	"sync"
	"time"
)

// Scheduler schedules a callback after a delay and hands back a cancel
// function. Cancelling a task that already fired (or was cancelled) is a no-op.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// ClockScheduler is the wall-clock Scheduler used outside of tests.
type ClockScheduler struct{}

func (ClockScheduler) AfterFunc(d time.Duration, fn func()) func() {
	timer := time.AfterFunc(d, fn)
	return func() { timer.Stop() }
}

// RoundTimer is the cooperative per-round countdown: one tick per time
// unit decrements the remaining budget; at zero the expiry callback runs.
// The controlling process stays free to handle interaction between ticks.
type RoundTimer struct {
	sched    Scheduler
	interval time.Duration
	onTick   func(remaining int)
	onExpire func()

	mu        sync.Mutex
	remaining int
	cancel    func()
	stopped   bool
}

// NewRoundTimer builds a countdown of budget ticks spaced by interval.
// onTick may be nil; onExpire runs exactly once unless Stop wins the race.
func NewRoundTimer(sched Scheduler, interval time.Duration, budget int, onTick func(remaining int), onExpire func()) *RoundTimer {
	return &RoundTimer{
		sched:     sched,
		interval:  interval,
		onTick:    onTick,
		onExpire:  onExpire,
		remaining: budget,
	}
}

// Start begins the countdown. A timer is started at most once.
func (t *RoundTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.cancel != nil {
		return
	}
	t.cancel = t.sched.AfterFunc(t.interval, t.tick)
}

func (t *RoundTimer) tick() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.remaining--
	remaining := t.remaining
	expired := remaining <= 0
	if expired {
		t.stopped = true
		t.cancel = nil
	} else {
		t.cancel = t.sched.AfterFunc(t.interval, t.tick)
	}
	t.mu.Unlock()

	if t.onTick != nil {
		t.onTick(remaining)
	}
	if expired && t.onExpire != nil {
		t.onExpire()
	}
}

// Remaining reports the ticks left in the budget.
func (t *RoundTimer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Stop cancels any pending tick. Stopping an expired or already stopped
// timer is a no-op, so callers can stop unconditionally on round transitions.
func (t *RoundTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
