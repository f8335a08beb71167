package app_test

import (
	"sync"
	"testing"
	"time"

	"quiz-app/internal/app"
)

// manualScheduler queues callbacks and fires them on demand, giving
// tests full control over time.
type manualScheduler struct {
	mu    sync.Mutex
	queue []func()
}

func (s *manualScheduler) AfterFunc(_ time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := len(s.queue)
	s.queue = append(s.queue, fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.queue[idx] = nil
	}
}

// fire runs the oldest pending callback, if any, and reports whether one ran.
func (s *manualScheduler) fire() bool {
	s.mu.Lock()
	var fn func()
	for i, f := range s.queue {
		if f != nil {
			fn = f
			s.queue[i] = nil
			break
		}
	}
	s.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

func (s *manualScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, f := range s.queue {
		if f != nil {
			n++
		}
	}
	return n
}

func TestRoundTimerCountsDownAndExpires(t *testing.T) {
	sched := &manualScheduler{}
	var ticks []int
	expired := 0
	timer := app.NewRoundTimer(sched, time.Second, 3,
		func(remaining int) { ticks = append(ticks, remaining) },
		func() { expired++ },
	)
	timer.Start()

	for sched.fire() {
	}

	if expired != 1 {
		t.Fatalf("expected exactly one expiry, got %d", expired)
	}
	if len(ticks) != 3 || ticks[0] != 2 || ticks[1] != 1 || ticks[2] != 0 {
		t.Fatalf("unexpected tick sequence: %v", ticks)
	}
}

func TestRoundTimerStopIsIdempotent(t *testing.T) {
	sched := &manualScheduler{}
	expired := 0
	timer := app.NewRoundTimer(sched, time.Second, 5, nil, func() { expired++ })
	timer.Start()

	if !sched.fire() {
		t.Fatalf("expected a pending tick")
	}
	timer.Stop()
	timer.Stop() // no-op

	if sched.fire() {
		t.Fatalf("expected no pending tick after stop")
	}
	if expired != 0 {
		t.Fatalf("stopped timer must not expire, got %d expiries", expired)
	}
	if timer.Remaining() != 4 {
		t.Fatalf("expected 4 remaining, got %d", timer.Remaining())
	}
}

func TestRoundTimerStopAfterExpiryIsNoOp(t *testing.T) {
	sched := &manualScheduler{}
	timer := app.NewRoundTimer(sched, time.Second, 1, nil, func() {})
	timer.Start()
	for sched.fire() {
	}
	timer.Stop() // must not panic or reschedule
	if sched.pending() != 0 {
		t.Fatalf("expected empty schedule after expiry")
	}
}
